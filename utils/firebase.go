package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trailmate/config"
	"trailmate/models"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var (
	FirebaseApp     *firebase.App
	FCMClient       *messaging.Client
	AuthClient      *auth.Client
	FirestoreClient *firestore.Client
)

// FirebaseInit initializes the Firebase App and the clients the configuration asks for.
func FirebaseInit(ctx context.Context) error {
	credentialsFile, projectID := config.FirebaseOptions()

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	var fbCfg *firebase.Config
	if projectID != "" {
		fbCfg = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return fmt.Errorf("firebase: error initializing app: %w", err)
	}
	FirebaseApp = app

	if config.AppConfig.AuthMode == "firebase" {
		if AuthClient, err = app.Auth(ctx); err != nil {
			return fmt.Errorf("firebase: error getting Auth client: %w", err)
		}
	}
	if config.AppConfig.PushEnabled {
		if FCMClient, err = app.Messaging(ctx); err != nil {
			return fmt.Errorf("firebase: error getting Messaging client: %w", err)
		}
	}
	if config.AppConfig.StorageBackend == "firestore" {
		if FirestoreClient, err = app.Firestore(ctx); err != nil {
			return fmt.Errorf("firebase: error getting Firestore client: %w", err)
		}
	}
	return nil
}

// FirebaseTokenVerifier resolves Firebase ID tokens issued to the mobile app.
type FirebaseTokenVerifier struct {
	client *auth.Client
}

func NewFirebaseTokenVerifier(client *auth.Client) *FirebaseTokenVerifier {
	return &FirebaseTokenVerifier{client: client}
}

func (v *FirebaseTokenVerifier) Verify(ctx context.Context, idToken string) (*models.Identity, error) {
	if v.client == nil {
		return nil, errors.New("firebase auth client not initialized")
	}
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	id := &models.Identity{UserID: token.UID}
	if name, ok := token.Claims["name"].(string); ok {
		id.DisplayName = strings.TrimSpace(name)
	}
	if email, ok := token.Claims["email"].(string); ok {
		id.Email = email
	}
	return id, nil
}
