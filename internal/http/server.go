package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"diario/internal/config"
	"diario/internal/core"
	applog "diario/internal/log"
	"diario/internal/metrics"
	"diario/internal/middleware/ratelimit"
	"diario/internal/middleware/security"
	"diario/internal/middleware/trace"
	"diario/internal/services"
	appweb "diario/web"
)

type Server struct {
	http.Server
	templates *template.Template
	expenses  *services.ExpenseService
	metrics   *metrics.Metrics
	limiter   *ratelimit.Limiter
	detector  *security.Detector
	logger    *applog.Logger
}

// NewServer configures routes, middleware and templates, returning a
// ready-to-run http.Server.
func NewServer(cfg *config.Config, expenses *services.ExpenseService, logger *applog.Logger) (*Server, error) {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentHTTP)
	m := metrics.New()

	detector, err := security.NewDetector(cfg.TrustedProxies, func(reason string) {
		m.SuspiciousRequests.WithLabelValues(reason).Inc()
	})
	if err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	s := &Server{
		expenses: expenses,
		metrics:  m,
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerWindow: cfg.RateLimitPerMinute,
			Window:            time.Minute,
		}),
		detector: detector,
		logger:   logger,
	}

	// Parse embedded templates at startup.
	t, err := template.New("").Funcs(templateFuncs).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.WarnContext(context.Background(), "Failed parsing templates", applog.FieldError, err)
	} else {
		s.templates = t
	}

	mux := http.NewServeMux()

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		logger.WarnContext(context.Background(), "Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /download/month", s.handleDownloadMonth)
	mux.HandleFunc("POST /add", s.handleAddExpense)
	mux.HandleFunc("POST /delete/{item_id}", s.handleDeleteExpense)
	mux.HandleFunc("GET /api/expenses", s.handleAPIExpenses)
	mux.HandleFunc("GET /api/total", s.handleAPITotal)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", m.Handler())

	var handler http.Handler = mux
	handler = s.limiter.Middleware(detector.ExtractClientIP, m.RateLimited.Inc)(handler)
	handler = detector.Middleware(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = trace.NewMiddleware(detector.ExtractClientIP, m).Middleware(handler)
	handler = applog.Middleware(logger)(handler)

	s.Server = http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

// Metrics exposes the server's collectors.
func (s *Server) Metrics() *metrics.Metrics {
	return s.metrics
}

var templateFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"plain": core.FormatPlain,
	"dict":  dict,
}

// dict builds a map from alternating keys and values for sub-templates.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}
