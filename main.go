package main

import (
	"context"

	"github.com/koxtuichi/photo-upload-s3-app/internal/config"
	"github.com/koxtuichi/photo-upload-s3-app/internal/handler"
	"github.com/koxtuichi/photo-upload-s3-app/internal/logging"
	"github.com/koxtuichi/photo-upload-s3-app/internal/media"
	"github.com/koxtuichi/photo-upload-s3-app/internal/pipeline"
	"github.com/koxtuichi/photo-upload-s3-app/internal/storage"

	"github.com/aws/aws-lambda-go/lambda"
)

// Thumbnail derivation Lambda: consumes S3 object-created events and
// writes bounded-size JPEG thumbnails next to the uploads.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("configuration error: %v", err)
	}

	// RAW decoding degrades to the placeholder strategy when libvips
	// cannot start, so a failure here is not fatal.
	if err := media.InitVips(); err != nil {
		logging.Warn("libvips unavailable, RAW decode disabled: %v", err)
	}

	store, err := storage.New(context.Background(), cfg.S3)
	if err != nil {
		logging.Fatal("failed to initialize storage: %v", err)
	}

	h := handler.New(store, pipeline.New(cfg.Pipeline.FontPath))

	logging.Info("thumbnail handler ready (bucket %s)", cfg.S3.Bucket)
	lambda.Start(h.HandleS3Event)
}
