package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/horsepowerelectrical/contact-api/internal/config"
	"github.com/horsepowerelectrical/contact-api/internal/http/middleware"
	"github.com/horsepowerelectrical/contact-api/internal/metrics"
	"github.com/horsepowerelectrical/contact-api/internal/model"
	"github.com/horsepowerelectrical/contact-api/internal/util"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type SubmissionService interface {
	Submit(ctx context.Context, draft model.SubmissionDraft) (*model.Submission, error)
	List(ctx context.Context) ([]model.Submission, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Stats(ctx context.Context) (model.DashboardStats, error)
}

type Authenticator interface {
	Authenticate(email, password string) (model.AdminIdentity, error)
}

type Deps struct {
	Submissions SubmissionService
	Auth        Authenticator
	// Registry receives the app collectors and backs /metrics. Nil disables both.
	Registry *prometheus.Registry
	Logger   *zap.Logger
}

type Server struct {
	e   *echo.Echo
	log *zap.Logger
}

func NewServer(cfg config.Config, d Deps) *Server {
	lg := d.Logger
	if lg == nil {
		lg = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(echoLogLevel(cfg.Log.Level))
	e.HTTPErrorHandler = httpErrorHandler(lg)
	e.Pre(echoMid.RemoveTrailingSlash())

	e.Use(
		echoMid.RequestIDWithConfig(echoMid.RequestIDConfig{Generator: util.NewRequestID}),
		middleware.Metrics(),
		middleware.RequestLogger(lg),
		echoMid.Recover(),
		echoMid.SecureWithConfig(echoMid.SecureConfig{
			XSSProtection:         "0",
			ContentTypeNosniff:    "nosniff",
			XFrameOptions:         "SAMEORIGIN",
			HSTSMaxAge:            15552000,
			ContentSecurityPolicy: "default-src 'self'",
			ReferrerPolicy:        "no-referrer",
		}),
		echoMid.CORSWithConfig(echoMid.CORSConfig{
			AllowOrigins:     []string{cfg.HTTP.CORSOrigin},
			AllowCredentials: true,
			AllowMethods:     []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPatch, http.MethodOptions},
			AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, echo.HeaderAccept},
		}),
	)
	if cfg.HTTP.BodyLimit != "" {
		e.Use(echoMid.BodyLimit(cfg.HTTP.BodyLimit))
	}

	if d.Registry != nil && cfg.Metrics.Enabled {
		metrics.MustRegister(d.Registry)
		e.GET(cfg.Metrics.Path, echo.WrapHandler(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}

	api := e.Group("/api")
	api.GET("/health", healthHandler(time.Now))
	api.HEAD("/health", healthHandler(time.Now))
	api.POST("/contact", contactHandler(d.Submissions))

	// TODO: require a server-validated session or signed token on every
	// /api/admin/* route; login currently issues nothing the routes could check.
	lg.Warn("admin routes are not protected server-side",
		zap.Strings("routes", []string{
			"GET /api/admin/submissions",
			"GET /api/admin/stats",
			"PATCH /api/admin/submissions/:id/status",
		}),
	)
	admin := api.Group("/admin")
	admin.POST("/login", loginHandler(d.Auth))
	admin.GET("/submissions", listSubmissionsHandler(d.Submissions))
	admin.GET("/stats", statsHandler(d.Submissions))
	admin.PATCH("/submissions/:id/status", updateStatusHandler(d.Submissions))

	return &Server{e: e, log: lg}
}

func echoLogLevel(level string) log.Lvl {
	switch level {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.e.ServeHTTP(w, r) }

// Start blocks until the listener fails or Shutdown is called. A clean
// shutdown returns nil.
func (s *Server) Start(addr string) error {
	s.log.Info("http: listening", zap.String("addr", addr))
	if err := s.e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }
