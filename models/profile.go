package models

import "time"

// UserProfile is the per-user document read when a session starts.
type UserProfile struct {
	ID            string    `bson:"id" json:"id" firestore:"-"`
	DisplayName   string    `bson:"displayName" json:"displayName" firestore:"displayName"`
	Email         string    `bson:"email" json:"email" firestore:"email"`
	Location      string    `bson:"location" json:"location" firestore:"location"`
	APICredential string    `bson:"apiKey,omitempty" json:"-" firestore:"apiKey,omitempty"` // sealed at rest
	FCMToken      string    `bson:"fcmToken,omitempty" json:"-" firestore:"fcmToken,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt" firestore:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt" firestore:"updatedAt"`
}

// Identity is the authenticated caller resolved from a bearer token.
type Identity struct {
	UserID      string
	DisplayName string
	Email       string
}

// CredentialRequest stores a personal generation API key.
type CredentialRequest struct {
	APIKey string `json:"apiKey" binding:"required"`
}
