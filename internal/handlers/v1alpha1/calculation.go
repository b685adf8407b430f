package v1alpha1

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"

	"go.uber.org/zap"

	"github.com/kubev2v/qpcr-planner/internal/service"
	"github.com/kubev2v/qpcr-planner/pkg/requestid"
)

// (POST /api/v1/calculations)
func (h *ServiceHandler) CalculateVolumes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zap.S().Named("calculation_handler").With("request_id", requestid.FromContext(ctx))

	recordVisit(r)

	format := service.ReportFormatJSON
	if f := r.URL.Query().Get("format"); f != "" {
		format = service.ReportFormat(f)
	}
	if !slices.Contains(h.plannerSrv.Formats(), format) {
		h.handleError(w, r, logger, service.NewErrUnsupportedFormat(format))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, r, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		logger.Errorw("failed to read request body", "error", err)
		h.writeError(w, r, http.StatusBadRequest, "failed to read request body")
		return
	}

	cfg, err := service.ParseConfiguration(body)
	if err != nil {
		h.handleError(w, r, logger, err)
		return
	}

	plan, err := h.plannerSrv.Plan(ctx, cfg)
	if err != nil {
		h.handleError(w, r, logger, err)
		return
	}

	out, err := h.plannerSrv.Render(plan, format)
	if err != nil {
		h.handleError(w, r, logger, err)
		return
	}

	logger.Debugw("calculation rendered", "format", format, "total_reactions", plan.Result.TotalReactions)

	w.Header().Set("Content-Type", format.ContentType())
	if format.Binary() {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=qpcr-plan.%s", format))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (h *ServiceHandler) handleError(w http.ResponseWriter, r *http.Request, logger *zap.SugaredLogger, err error) {
	if service.IsBadRequest(err) {
		logger.Debugw("rejected calculation request", "error", err)
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	logger.Errorw("failed to calculate volumes", "error", err)
	h.writeError(w, r, http.StatusInternalServerError, "failed to calculate volumes")
}
