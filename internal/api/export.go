package api

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"smart-fuel-crm/internal/auth"
	"smart-fuel-crm/internal/dataset"
	"smart-fuel-crm/internal/repository"
)

type ExportHandler struct {
	repos *repository.Repositories
}

func NewExportHandler(repos *repository.Repositories) *ExportHandler {
	return &ExportHandler{repos: repos}
}

// Export streams /export/:dataset?format=csv|xlsx as an attachment. The file is
// built in memory first so that errors still produce a JSON response.
func (h *ExportHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	file, err := dataset.Export(c.Request.Context(), h.repos, auth.UserID(c), c.Param("dataset"), c.Query("format"), &buf)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	c.Data(http.StatusOK, file.ContentType, buf.Bytes())
}
