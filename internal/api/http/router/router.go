package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dtroode/passkeeper/internal/api/http/handler"
	"github.com/dtroode/passkeeper/internal/api/http/middleware"
	"github.com/dtroode/passkeeper/internal/logger"
	"github.com/dtroode/passkeeper/internal/metrics"
)

const (
	rateLimiterCleanupInterval = 5 * time.Minute
	timeoutMessage             = `{"message":"request timed out"}`

	apiPrefix    = "/api"
	recordPrefix = apiPrefix + "/password"
)

// Options configures the middleware chain.
type Options struct {
	Version        string
	RequestTimeout time.Duration
	RateLimitRPS   int
	RateLimitBurst int
}

// Router wires record handlers and middleware into a gorilla/mux router.
type Router struct {
	recordService handler.RecordService
	metrics       *metrics.Metrics
	logger        *logger.Logger
	opts          Options
}

// New creates new HTTP Router instance.
func New(
	recordService handler.RecordService,
	metrics *metrics.Metrics,
	logger *logger.Logger,
	opts Options,
) *Router {
	return &Router{
		recordService: recordService,
		metrics:       metrics,
		logger:        logger,
		opts:          opts,
	}
}

// Register builds the handler tree. Background work started for the rate
// limiter stops when ctx is done.
//
// Routes are registered on the root router with full paths. Routes of a mux
// subrouter inherit its prefix matchers, and a later sibling matching that
// prefix clears an earlier method mismatch, turning 405 into 404.
func (r *Router) Register(ctx context.Context) http.Handler {
	m := mux.NewRouter()
	m.NotFoundHandler = http.HandlerFunc(handler.NotFound)
	m.MethodNotAllowedHandler = http.HandlerFunc(handler.MethodNotAllowed)

	logging := middleware.NewLogging(r.logger)
	m.Use(logging.Handle, middleware.Metrics(r.metrics))

	if r.opts.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(r.opts.RateLimitRPS, r.opts.RateLimitBurst, r.logger)
		limiter.StartCleanup(ctx, rateLimiterCleanupInterval)
		m.Use(limiter.Handle)
	}

	// Innermost, so logging and metrics see the 503 of a timed out request.
	if r.opts.RequestTimeout > 0 {
		m.Use(timeout(r.opts.RequestTimeout))
	}

	m.Handle("/metrics", r.metrics.Handler()).Methods(http.MethodGet)
	r.registerStatusRoutes(m)
	r.registerRecordRoutes(m)

	return m
}

func timeout(d time.Duration) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, timeoutMessage)
	}
}

func (r *Router) registerStatusRoutes(m *mux.Router) {
	status := handler.NewStatus(r.opts.Version)
	m.HandleFunc(apiPrefix+"/status", status.Status).Methods(http.MethodGet)
}

func (r *Router) registerRecordRoutes(m *mux.Router) {
	records := handler.NewRecord(r.recordService, r.logger)
	m.HandleFunc(recordPrefix+"/create", records.Create).Methods(http.MethodPost)
	m.HandleFunc(recordPrefix+"/delete", records.Delete).Methods(http.MethodPost)
	m.HandleFunc(recordPrefix+"/get", records.Get).Methods(http.MethodGet)
	m.HandleFunc(recordPrefix+"/search", records.Search).Methods(http.MethodGet)
	m.HandleFunc(recordPrefix+"/passwords", records.Sort).Methods(http.MethodGet)
}
