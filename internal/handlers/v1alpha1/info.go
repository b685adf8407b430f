package v1alpha1

import (
	"net/http"

	"github.com/go-chi/render"

	api "github.com/kubev2v/qpcr-planner/api/v1alpha1"
	"github.com/kubev2v/qpcr-planner/pkg/version"
)

// (GET /api/v1/info)
func (h *ServiceHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	versionInfo := version.Get()

	render.JSON(w, r, api.Info{
		GitCommit:   versionInfo.GitCommit,
		VersionName: versionInfo.GitVersion,
	})
}
