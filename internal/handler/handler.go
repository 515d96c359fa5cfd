package handler

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/koxtuichi/photo-upload-s3-app/internal/logging"
	"github.com/koxtuichi/photo-upload-s3-app/internal/metrics"
	"github.com/koxtuichi/photo-upload-s3-app/internal/pipeline"

	"github.com/aws/aws-lambda-go/events"
)

// ObjectStore is the subset of the storage client the handler needs.
type ObjectStore interface {
	Download(ctx context.Context, key string) ([]byte, string, error)
	Upload(ctx context.Context, key string, data []byte, contentType string, metadata map[string]string) error
}

// Response mirrors the classic proxy-style Lambda return shape.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

type responseBody struct {
	Message   string `json:"message"`
	Processed int    `json:"processed"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
}

// Handler processes S3 object-created events into thumbnails.
type Handler struct {
	store    ObjectStore
	pipeline *pipeline.Pipeline
}

// New wires a handler.
func New(store ObjectStore, p *pipeline.Pipeline) *Handler {
	return &Handler{store: store, pipeline: p}
}

// HandleS3Event processes every record in the batch sequentially. One
// bad record never aborts the rest; the response status reflects the
// worst outcome in the batch (500 for transfer or internal failures,
// 400 for malformed keys, 200 otherwise).
func (h *Handler) HandleS3Event(ctx context.Context, event events.S3Event) (Response, error) {
	logging.Info("received batch of %d record(s)", len(event.Records))

	results := make([]pipeline.Result, 0, len(event.Records))
	for _, record := range event.Records {
		res := h.handleRecord(ctx, record)
		results = append(results, res)
		metrics.RecordsTotal.WithLabelValues(res.Kind.String()).Inc()
	}

	resp := buildResponse(results)
	metrics.BatchesTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}

func (h *Handler) handleRecord(ctx context.Context, record events.S3EventRecord) pipeline.Result {
	if !isObjectCreated(record) {
		logging.Debug("skipping record %s/%s", record.EventSource, record.EventName)
		return pipeline.Result{Kind: pipeline.KindSkipped}
	}

	// S3 event keys arrive percent-encoded.
	key, err := url.PathUnescape(record.S3.Object.Key)
	if err != nil {
		key = record.S3.Object.Key
		logging.Warn("could not unescape key %q, using raw value: %v", key, err)
	}

	// Vet the key before fetching anything: our own thumbnail uploads
	// re-trigger this function, and rejecting them (or malformed and
	// unsupported keys) here avoids downloading objects just to drop
	// them.
	if res, ok := h.pipeline.Classify(key); !ok {
		if res.Kind == pipeline.KindSkipped {
			logging.Debug("skipping %s", key)
		} else {
			logging.Warn("record %s rejected (%s): %v", key, res.Kind, res.Err)
		}
		return res
	}

	start := time.Now()

	data, _, err := h.store.Download(ctx, key)
	if err != nil {
		logging.Error("download failed for %s: %v", key, err)
		return pipeline.Result{SourceKey: key, Kind: pipeline.KindTransfer, Err: err}
	}

	res := h.pipeline.Process(key, data)
	if res.Kind != pipeline.KindOK {
		logging.Warn("record %s failed (%s): %v", key, res.Kind, res.Err)
		return res
	}

	metadata := map[string]string{
		"source-key":      key,
		"processing-date": time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.store.Upload(ctx, res.DestinationKey, res.Artifact.Data, res.Artifact.ContentType, metadata); err != nil {
		logging.Error("upload failed for %s: %v", res.DestinationKey, err)
		res.Kind = pipeline.KindTransfer
		res.Err = err
		return res
	}

	elapsed := time.Since(start)
	metrics.RecordDuration.WithLabelValues(categoryOf(key)).Observe(elapsed.Seconds())
	logging.Info("thumbnail %s (%dx%d, %d bytes, %s) in %s",
		res.DestinationKey, res.Artifact.Width, res.Artifact.Height,
		res.Artifact.SizeBytes, res.Provenance, elapsed.Round(time.Millisecond))

	return res
}

func isObjectCreated(record events.S3EventRecord) bool {
	return record.EventSource == "aws:s3" && strings.HasPrefix(record.EventName, "ObjectCreated")
}

func categoryOf(key string) string {
	parts := strings.SplitN(key, "/", 4)
	if len(parts) >= 3 {
		return parts[2]
	}
	return "unknown"
}

func buildResponse(results []pipeline.Result) Response {
	var body responseBody
	status := 200
	for _, res := range results {
		switch res.Kind {
		case pipeline.KindOK:
			body.Processed++
		case pipeline.KindSkipped, pipeline.KindUnsupported:
			// Unsupported files are a silent skip: nothing to retry,
			// nothing to alarm on.
			body.Skipped++
		case pipeline.KindTransfer, pipeline.KindInternal:
			body.Failed++
			status = 500
		case pipeline.KindPathFormat:
			body.Failed++
			if status < 500 {
				status = 400
			}
		default:
			// Decode failures are logged and counted but do not fail
			// the batch; retrying them cannot succeed.
			body.Failed++
		}
	}

	switch {
	case status == 200 && body.Failed == 0:
		body.Message = "thumbnail processing complete"
	case status == 200:
		body.Message = "thumbnail processing completed with unprocessable records"
	default:
		body.Message = "thumbnail processing failed for some records"
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return Response{StatusCode: 500, Body: `{"message":"internal error"}`}
	}
	return Response{StatusCode: status, Body: string(encoded)}
}
