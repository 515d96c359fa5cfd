package notify

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/koxtuichi/photo-upload-s3-app/internal/keys"
	"github.com/koxtuichi/photo-upload-s3-app/internal/logging"
	"github.com/koxtuichi/photo-upload-s3-app/internal/metrics"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
)

// ObjectStore is the storage surface the notifier needs: fetching
// restored objects, parking the bundled archive, and presigning
// download links.
type ObjectStore interface {
	Download(ctx context.Context, key string) ([]byte, string, error)
	Upload(ctx context.Context, key string, data []byte, contentType string, metadata map[string]string) error
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// UserDirectory resolves an upload owner to a notification address.
type UserDirectory interface {
	Email(ctx context.Context, userID string) (string, error)
}

// EmailSender delivers a multipart notification.
type EmailSender interface {
	Send(ctx context.Context, to, subject, textBody, htmlBody string) error
}

// Response mirrors the proxy-style Lambda return shape.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Notifier emails users when their archived photos finish restoring,
// with per-file download links and, for multi-file restores, a bundled
// zip parked under a temp/ prefix.
type Notifier struct {
	store  ObjectStore
	users  UserDirectory
	mailer EmailSender
	expiry time.Duration

	now   func() time.Time
	newID func() string
}

// New wires a notifier. expiry bounds both the presigned links and the
// advertised lifetime of the temp archive.
func New(store ObjectStore, users UserDirectory, mailer EmailSender, expiry time.Duration) *Notifier {
	return &Notifier{
		store:  store,
		users:  users,
		mailer: mailer,
		expiry: expiry,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

// HandleRestoreEvent collects restore-completed records from the batch
// and sends one notification email covering all of them. A batch with
// no such records is a successful no-op.
func (n *Notifier) HandleRestoreEvent(ctx context.Context, event events.S3Event) (Response, error) {
	restored := restoredKeys(event)
	if len(restored) == 0 {
		logging.Info("no restore completed events in batch of %d record(s)", len(event.Records))
		return jsonResponse(200, "No restore completed events found"), nil
	}
	logging.Info("restore completed for %d object(s)", len(restored))

	userID, ok := keys.UserIDFromKey(restored[0])
	if !ok {
		logging.Error("no user id in restored key %q", restored[0])
		metrics.NotificationsTotal.WithLabelValues("bad_key").Inc()
		return jsonResponse(400, "User ID not found in object key"), nil
	}

	email, err := n.users.Email(ctx, userID)
	if err != nil {
		logging.Error("email lookup failed for user %s: %v", userID, err)
		metrics.NotificationsTotal.WithLabelValues("no_email").Inc()
		return jsonResponse(400, "User email not found"), nil
	}

	urls := make([]string, 0, len(restored)+1)
	for _, key := range restored {
		u, err := n.store.PresignGet(ctx, key, n.expiry)
		if err != nil {
			logging.Error("presign failed for %s: %v", key, err)
			continue
		}
		urls = append(urls, u)
	}
	if len(urls) == 0 {
		metrics.NotificationsTotal.WithLabelValues("presign_failed").Inc()
		return jsonResponse(400, "Failed to generate presigned URLs"), nil
	}

	zipURL := ""
	if len(restored) > 1 {
		if u, err := n.archiveURL(ctx, userID, restored); err != nil {
			// The individual links still work; the bundle is a bonus.
			logging.Warn("zip archive not created: %v", err)
		} else {
			zipURL = u
		}
	}

	subject, textBody, htmlBody := composeEmail(restored, urls, zipURL, n.expiry)
	if err := n.mailer.Send(ctx, email, subject, textBody, htmlBody); err != nil {
		logging.Error("notification email to %s failed: %v", email, err)
		metrics.NotificationsTotal.WithLabelValues("send_failed").Inc()
		return jsonResponse(500, "Failed to send notification email"), nil
	}

	logging.Info("notification email sent to user %s", userID)
	metrics.NotificationsTotal.WithLabelValues("sent").Inc()
	return jsonResponse(200, fmt.Sprintf("Notification email sent to %s", email)), nil
}

// archiveURL bundles the restored objects into an in-memory zip,
// parks it under temp/ with auto-delete metadata, and presigns it.
func (n *Notifier) archiveURL(ctx context.Context, userID string, objectKeys []string) (string, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	added := 0
	for _, key := range objectKeys {
		data, _, err := n.store.Download(ctx, key)
		if err != nil {
			logging.Warn("skipping %s in archive: %v", key, err)
			continue
		}
		w, err := zw.Create(path.Base(key))
		if err != nil {
			zw.Close()
			return "", fmt.Errorf("add %s to archive: %w", key, err)
		}
		if _, err := w.Write(data); err != nil {
			zw.Close()
			return "", fmt.Errorf("write %s to archive: %w", key, err)
		}
		added++
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("finalize archive: %w", err)
	}
	if added == 0 {
		return "", fmt.Errorf("no objects could be added to the archive")
	}

	zipKey := fmt.Sprintf("temp/%s/%s_download.zip", userID, n.newID())
	metadata := map[string]string{
		"auto-delete": "true",
		"ttl":         strconv.FormatInt(n.now().Add(n.expiry).Unix(), 10),
	}
	if err := n.store.Upload(ctx, zipKey, buf.Bytes(), "application/zip", metadata); err != nil {
		return "", err
	}

	metrics.ArchiveBytes.Observe(float64(buf.Len()))
	logging.Debug("archive %s parked (%d bytes, %d files)", zipKey, buf.Len(), added)

	return n.store.PresignGet(ctx, zipKey, n.expiry)
}

// restoredKeys filters the batch down to decoded keys of restore
// completion records.
func restoredKeys(event events.S3Event) []string {
	var out []string
	for _, record := range event.Records {
		if record.EventSource != "aws:s3" {
			continue
		}
		if !strings.Contains(record.EventName, "ObjectRestore:Completed") {
			continue
		}
		raw := record.S3.Object.Key
		if raw == "" {
			continue
		}
		// Query-style decoding: '+' means space in S3 event keys.
		key, err := url.QueryUnescape(raw)
		if err != nil {
			logging.Warn("could not unescape key %q, using raw value: %v", raw, err)
			key = raw
		}
		out = append(out, key)
	}
	return out
}

func jsonResponse(status int, message string) Response {
	body, err := json.Marshal(message)
	if err != nil {
		return Response{StatusCode: 500, Body: `"internal error"`}
	}
	return Response{StatusCode: status, Body: string(body)}
}
