package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/koxtuichi/photo-upload-s3-app/internal/config"
	"github.com/koxtuichi/photo-upload-s3-app/internal/logging"
	"github.com/koxtuichi/photo-upload-s3-app/internal/media"
	"github.com/koxtuichi/photo-upload-s3-app/internal/pipeline"
	"github.com/koxtuichi/photo-upload-s3-app/internal/storage"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Maximum accepted upload; RAW files from modern cameras run large.
const maxBodyBytes = 256 << 20

// Local development server: exercises the thumbnail pipeline over HTTP
// without any AWS plumbing, and exposes the Prometheus metrics.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("configuration error: %v", err)
	}

	if err := media.InitVips(); err != nil {
		logging.Warn("libvips unavailable, RAW decode disabled: %v", err)
	}
	defer media.ShutdownVips()

	s := &server{pipeline: pipeline.New(cfg.Pipeline.FontPath)}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/thumbnail", s.thumbnail).Methods("POST")

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go handleShutdown(srv)

	logging.Info("devserver listening on :%s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logging.Fatal("server error: %v", err)
	}
}

type server struct {
	pipeline *pipeline.Pipeline
}

func (s *server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"vips":   media.IsVipsAvailable(),
	})
}

// thumbnail runs one payload through the pipeline. The key query
// parameter supplies the storage key the object would have, e.g.
// /thumbnail?key=user/u1/raw/2023/04/05/IMG_01.CR2
func (s *server) thumbnail(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "missing key query parameter", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	logging.Debug("devserver: %s (%d bytes, %s)", key, len(data), storage.DetectContentType(data))

	res := s.pipeline.Process(key, data)
	switch res.Kind {
	case pipeline.KindOK:
	case pipeline.KindSkipped:
		http.Error(w, "object is already a thumbnail", http.StatusUnprocessableEntity)
		return
	case pipeline.KindPathFormat, pipeline.KindUnsupported:
		http.Error(w, res.Err.Error(), http.StatusBadRequest)
		return
	case pipeline.KindDecode:
		http.Error(w, res.Err.Error(), http.StatusUnprocessableEntity)
		return
	default:
		http.Error(w, res.Err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", res.Artifact.ContentType)
	w.Header().Set("X-Destination-Key", res.DestinationKey)
	w.Header().Set("X-Provenance", string(res.Provenance))
	w.Write(res.Artifact.Data)
}

func handleShutdown(srv *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logging.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("shutdown error: %v", err)
	}
}
