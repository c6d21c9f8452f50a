package webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tracker-tv/phi-guard/internal/metrics"
	"github.com/tracker-tv/phi-guard/models"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	headerEvent     = "X-GitHub-Event"
	headerSignature = "X-Hub-Signature-256"
	headerDelivery  = "X-GitHub-Delivery"

	// GitHub caps webhook payloads at 25 MB.
	maxBodyBytes = 25 << 20
)

// Submitter runs an audit in the background. A non-nil error means the run
// was not accepted.
type Submitter interface {
	Submit(req models.AuditRequest) error
}

type Handler struct {
	secret    []byte
	submitter Submitter
	metrics   *metrics.Metrics
	log       *zap.Logger
}

func NewHandler(secret string, submitter Submitter, m *metrics.Metrics, log *zap.Logger) *Handler {
	return &Handler{
		secret:    []byte(secret),
		submitter: submitter,
		metrics:   m,
		log:       log,
	}
}

// ServeHTTP authenticates and decodes the delivery synchronously, then hands
// the audit to the submitter and answers 202 without waiting for it.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	delivery := r.Header.Get(headerDelivery)
	event := r.Header.Get(headerEvent)
	log := h.log.With(zap.String("delivery", delivery), zap.String("event", event))

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.reject(w, log, http.StatusBadRequest, "malformed", err)
		return
	}

	if err := VerifySignature(body, r.Header.Get(headerSignature), h.secret); err != nil {
		h.reject(w, log, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	req, err := DecodeEvent(event, body)
	switch {
	case errors.Is(err, ErrIgnored):
		log.Debug("delivery ignored", zap.Error(err))
		h.metrics.WebhookRequests.WithLabelValues("ignored").Inc()
		w.WriteHeader(http.StatusAccepted)
		return
	case err != nil:
		h.reject(w, log, http.StatusBadRequest, "malformed", err)
		return
	}
	req.DeliveryID = delivery

	if err := h.submitter.Submit(*req); err != nil {
		h.reject(w, log, http.StatusServiceUnavailable, "unavailable", err)
		return
	}

	log.Info("audit accepted",
		zap.String("repo", req.FullName()),
		zap.Int("pr", req.Number),
		zap.String("action", req.Action),
	)
	h.metrics.WebhookRequests.WithLabelValues("accepted").Inc()
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) reject(w http.ResponseWriter, log *zap.Logger, status int, outcome string, err error) {
	log.Warn("delivery rejected", zap.Int("status", status), zap.Error(err))
	h.metrics.WebhookRequests.WithLabelValues(outcome).Inc()
	http.Error(w, http.StatusText(status), status)
}

// RateLimit answers 429 once limiter runs out of tokens. A nil limiter
// disables the check.
func RateLimit(limiter *rate.Limiter, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				m.WebhookRequests.WithLabelValues("rate_limited").Inc()
				w.Header().Set("Retry-After", "1")
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NewRouter mounts the webhook, health and metrics endpoints.
func NewRouter(h *Handler, limiter *rate.Limiter, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.With(RateLimit(limiter, h.metrics)).Post("/webhook", h.ServeHTTP)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return r
}
