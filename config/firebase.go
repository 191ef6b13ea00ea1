package config

// FirebaseOptions returns the credentials file and project used to build the Firebase app.
func FirebaseOptions() (credentialsFile, projectID string) {
	return AppConfig.FirebaseCredentialsFile, AppConfig.FirebaseProjectID
}

// FirebaseRequired reports whether any configured component needs a Firebase app.
func FirebaseRequired() bool {
	return AppConfig.AuthMode == "firebase" || AppConfig.StorageBackend == "firestore" || AppConfig.PushEnabled
}
