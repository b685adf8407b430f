package v1alpha1

import (
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	api "github.com/kubev2v/qpcr-planner/api/v1alpha1"
	"github.com/kubev2v/qpcr-planner/internal/service"
	"github.com/kubev2v/qpcr-planner/pkg/metrics"
	"github.com/kubev2v/qpcr-planner/pkg/middleware"
	"github.com/kubev2v/qpcr-planner/pkg/requestid"
)

const defaultMaxBodyBytes int64 = 1 << 20

type ServiceHandler struct {
	plannerSrv   *service.PlannerService
	maxBodyBytes int64
}

func NewServiceHandler(plannerSrv *service.PlannerService, maxBodyBytes int64) *ServiceHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &ServiceHandler{
		plannerSrv:   plannerSrv,
		maxBodyBytes: maxBodyBytes,
	}
}

// Routes mounts the v1 API on r.
func (h *ServiceHandler) Routes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/calculations", h.CalculateVolumes)
		r.Get("/greeting", h.Greeting)
		r.Get("/info", h.GetInfo)
	})
}

// (GET /health)
func (h *ServiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *ServiceHandler) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, api.Error{Message: message, RequestId: requestid.FromContextPtr(r.Context())})
}

func recordVisit(r *http.Request) {
	visitor := middleware.ClientIP(r)
	if host, _, err := net.SplitHostPort(visitor); err == nil {
		visitor = host
	}
	metrics.UniqueVisitsPerWeek.IncreaseTotalUniqueVisit(visitor)
}
