package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.S3.Bucket == "" {
		t.Error("S3.Bucket should have a default")
	}
	if cfg.Notify.DynamoDBTable != "user-emails" {
		t.Errorf("DynamoDBTable = %s, want user-emails", cfg.Notify.DynamoDBTable)
	}
	if cfg.Notify.PresignExpirySec != 86400 {
		t.Errorf("PresignExpirySec = %d, want 86400", cfg.Notify.PresignExpirySec)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Server.Port)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("S3_BUCKET", "my-photos")
	t.Setenv("SENDER_EMAIL", "photos@example.org")
	t.Setenv("PRESIGNED_URL_EXPIRY", "3600")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.S3.Bucket != "my-photos" {
		t.Errorf("S3.Bucket = %s, want my-photos", cfg.S3.Bucket)
	}
	if cfg.Notify.SenderEmail != "photos@example.org" {
		t.Errorf("SenderEmail = %s, want photos@example.org", cfg.Notify.SenderEmail)
	}
	if cfg.Notify.PresignExpirySec != 3600 {
		t.Errorf("PresignExpirySec = %d, want 3600", cfg.Notify.PresignExpirySec)
	}
}
