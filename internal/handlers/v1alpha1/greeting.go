package v1alpha1

import (
	"net/http"
	"strings"

	"github.com/go-chi/render"

	api "github.com/kubev2v/qpcr-planner/api/v1alpha1"
	"github.com/kubev2v/qpcr-planner/internal/greeting"
)

// (GET /api/v1/greeting)
func (h *ServiceHandler) Greeting(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		h.writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}

	render.JSON(w, r, api.Greeting{Message: greeting.Greet(name)})
}
