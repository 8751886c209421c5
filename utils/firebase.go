package utils

import (
	"context"
	"fmt"

	"poojaseva/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var FCMClient *messaging.Client

// FirebaseInit initializes the Firebase app and messaging client. Without a
// credentials path FCMClient stays nil and pushes are skipped.
func FirebaseInit(ctx context.Context) error {
	path := config.AppConfig.FirebaseCredentialsPath
	if path == "" {
		GetLogger().Warn("firebase: no credentials configured, push notifications disabled")
		return nil
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(path))
	if err != nil {
		return fmt.Errorf("firebase: error initializing app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("firebase: error getting messaging client: %w", err)
	}
	FCMClient = client
	return nil
}
