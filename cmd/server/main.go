package main

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tokenquote/internal/config"
	"tokenquote/internal/engine"
	"tokenquote/internal/httpx"
	"tokenquote/internal/logging"
	"tokenquote/internal/provider"
	"tokenquote/internal/query"
	"tokenquote/internal/resolve"
)

// Resolver is the part of the engine the HTTP handlers need.
type Resolver interface {
	Resolve(ctx context.Context, raw string) (resolve.Quote, error)
}

type priceResponse struct {
	Quote   resolve.Quote   `json:"quote"`
	Display resolve.Display `json:"display"`
	Partial bool            `json:"partial"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		logrus.WithError(err).Fatal("logger")
	}

	hc := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
	eng := engine.New(cfg, hc, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	refresher := eng.StartBackgroundRefresh(ctx)
	defer refresher.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           withJSONHeaders(withGzip(withRequestID(recoverPanic(log, newMux(eng, log))))),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server")
		}
	}()

	// graceful shutdown
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func newMux(r Resolver, log logrus.FieldLogger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("/api/price", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			writeError(w, req, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		handlePrice(w, req, r, log)
	})
	return mux
}

func handlePrice(w http.ResponseWriter, req *http.Request, r Resolver, log logrus.FieldLogger) {
	raw := req.URL.Query().Get("symbol")
	log = log.WithFields(logrus.Fields{"request_id": requestID(req.Context()), "symbol": raw})

	q, err := r.Resolve(req.Context(), raw)
	if err != nil {
		status, msg := classify(err)
		if status >= http.StatusInternalServerError {
			log.WithError(err).Warn("resolve failed")
		} else {
			log.WithError(err).Debug("resolve miss")
		}
		writeError(w, req, status, msg)
		return
	}

	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(priceResponse{Quote: q, Display: q.Display(), Partial: q.Partial()})
}

func classify(err error) (int, string) {
	var ve *query.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, "Enter a symbol"
	case errors.Is(err, resolve.ErrNotFound):
		return http.StatusNotFound, "Coin not found"
	case provider.IsUnavailable(err):
		return http.StatusBadGateway, "price providers unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func writeError(w http.ResponseWriter, req *http.Request, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg, RequestID: requestID(req.Context())})
}

type ctxKey struct{}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// withRequestID tags every request with an id, reusing X-Request-ID when the
// caller sent one.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func withJSONHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		// Basic CORS for browser usage; adjust as needed.
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type,X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withGzip compresses response when client supports gzip.
func withGzip(next http.Handler) http.Handler {
	var gzPool = sync.Pool{New: func() any {
		w, _ := gzip.NewWriterLevel(io.Discard, gzip.BestSpeed)
		return w
	}}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}
		gz := gzPool.Get().(*gzip.Writer)
		gz.Reset(w)
		defer func() {
			_ = gz.Close()
			gz.Reset(io.Discard)
			gzPool.Put(gz)
		}()
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Add("Vary", "Accept-Encoding")
		next.ServeHTTP(gzipResponseWriter{ResponseWriter: w, Writer: gz}, r)
	})
}

type gzipResponseWriter struct {
	http.ResponseWriter
	Writer io.Writer
}

func (g gzipResponseWriter) Write(b []byte) (int, error) {
	return g.Writer.Write(b)
}

// recoverPanic protects handlers from panics.
func recoverPanic(log logrus.FieldLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.WithFields(logrus.Fields{"request_id": requestID(r.Context()), "panic": rec}).Error("handler panic")
				writeError(w, r, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
