package main

import (
	"context"
	"time"

	"github.com/koxtuichi/photo-upload-s3-app/internal/config"
	"github.com/koxtuichi/photo-upload-s3-app/internal/logging"
	"github.com/koxtuichi/photo-upload-s3-app/internal/notify"
	"github.com/koxtuichi/photo-upload-s3-app/internal/storage"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
)

// Restore notification Lambda: consumes S3 restore-completed events
// and emails the owning user presigned download links.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("configuration error: %v", err)
	}

	ctx := context.Background()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3.Region))
	if err != nil {
		logging.Fatal("failed to load AWS config: %v", err)
	}

	store, err := storage.New(ctx, cfg.S3)
	if err != nil {
		logging.Fatal("failed to initialize storage: %v", err)
	}

	notifier := notify.New(
		store,
		notify.NewDynamoUserDirectory(awsCfg, cfg.Notify.DynamoDBTable),
		notify.NewSESMailer(awsCfg, cfg.Notify.SenderEmail),
		time.Duration(cfg.Notify.PresignExpirySec)*time.Second,
	)

	logging.Info("restore notifier ready (table %s, sender %s)", cfg.Notify.DynamoDBTable, cfg.Notify.SenderEmail)
	lambda.Start(notifier.HandleRestoreEvent)
}
