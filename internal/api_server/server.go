package apiserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kubev2v/qpcr-planner/internal/config"
	handlers "github.com/kubev2v/qpcr-planner/internal/handlers/v1alpha1"
	"github.com/kubev2v/qpcr-planner/internal/service"
	"github.com/kubev2v/qpcr-planner/pkg/metrics"
	"github.com/kubev2v/qpcr-planner/pkg/middleware"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg        *config.Config
	listener   net.Listener
	plannerSrv *service.PlannerService
	registerer prometheus.Registerer
}

// New returns a new instance of the qPCR planner API server.
func New(
	cfg *config.Config,
	listener net.Listener,
	plannerSrv *service.PlannerService,
	registerer prometheus.Registerer,
) *Server {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	return &Server{
		cfg:        cfg,
		listener:   listener,
		plannerSrv: plannerSrv,
		registerer: registerer,
	}
}

// Handler builds the API router.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	metricMiddleware := metrics.NewMiddleware("api_server", s.cfg.Service.LatencyBuckets)
	metricMiddleware.MustRegister(s.registerer)

	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.Service.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"*"},
			ExposedHeaders: []string{"X-Request-Id", "Content-Disposition"},
			MaxAge:         300,
		}),
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
	)

	handlers.NewServiceHandler(s.plannerSrv, s.cfg.Service.MaxBodyBytes).Routes(router)

	return router
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	srv := http.Server{Addr: s.cfg.Service.Address, Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
