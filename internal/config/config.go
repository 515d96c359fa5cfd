package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime settings. It is populated once at startup
// from environment variables and is read-only afterwards.
type Config struct {
	S3       S3Config
	Notify   NotifyConfig
	Pipeline PipelineConfig
	Server   ServerConfig
}

// S3Config configures the object storage client. Endpoint and static
// credentials are only needed against S3-compatible local stacks; on
// AWS the default credential chain is used.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// NotifyConfig configures the restore-completion notifier.
type NotifyConfig struct {
	SenderEmail      string
	DynamoDBTable    string
	PresignExpirySec int
}

// PipelineConfig configures the thumbnail derivation pipeline.
type PipelineConfig struct {
	FontPath string
}

// ServerConfig configures the local development server.
type ServerConfig struct {
	Port string
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	viper.SetDefault("S3_BUCKET", "photo-upload-s3-app")
	viper.SetDefault("S3_REGION", "")
	viper.SetDefault("S3_ENDPOINT", "")
	viper.SetDefault("S3_ACCESS_KEY_ID", "")
	viper.SetDefault("S3_SECRET_ACCESS_KEY", "")
	viper.SetDefault("SENDER_EMAIL", "noreply@example.com")
	viper.SetDefault("DYNAMODB_TABLE", "user-emails")
	viper.SetDefault("PRESIGNED_URL_EXPIRY", 86400) // 24h in seconds
	viper.SetDefault("PLACEHOLDER_FONT_PATH", "")
	viper.SetDefault("PORT", "8080")

	viper.AutomaticEnv()

	cfg := &Config{
		S3: S3Config{
			Bucket:          viper.GetString("S3_BUCKET"),
			Region:          viper.GetString("S3_REGION"),
			Endpoint:        viper.GetString("S3_ENDPOINT"),
			AccessKeyID:     viper.GetString("S3_ACCESS_KEY_ID"),
			SecretAccessKey: viper.GetString("S3_SECRET_ACCESS_KEY"),
		},
		Notify: NotifyConfig{
			SenderEmail:      viper.GetString("SENDER_EMAIL"),
			DynamoDBTable:    viper.GetString("DYNAMODB_TABLE"),
			PresignExpirySec: viper.GetInt("PRESIGNED_URL_EXPIRY"),
		},
		Pipeline: PipelineConfig{
			FontPath: viper.GetString("PLACEHOLDER_FONT_PATH"),
		},
		Server: ServerConfig{
			Port: viper.GetString("PORT"),
		},
	}

	return cfg, nil
}
