package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"seogen/internal/domain"
	"seogen/internal/service"
)

// WorkspaceHandler handles the tab and lane state endpoints.
type WorkspaceHandler struct {
	ws     *service.Workspace
	logger *zap.Logger
}

// NewWorkspaceHandler creates a new WorkspaceHandler.
func NewWorkspaceHandler(ws *service.Workspace, logger *zap.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{ws: ws, logger: logger.Named("handler.workspace")}
}

// State handles GET /api/v1/workspace
// @Summary Workspace state
// @Description Status, error message and record count of every vertical, plus the active tab
// @Tags workspace
// @Produce json
// @Success 200 {object} Response{data=service.WorkspaceState}
// @Router /workspace [get]
func (h *WorkspaceHandler) State(c *gin.Context) {
	RespondOK(c, h.ws.State())
}

// Switch handles POST /api/v1/workspace/tabs/:vertical
// @Summary Switch tab
// @Description Make a vertical the active tab; every lane goes back to idle and running batches are detached
// @Tags workspace
// @Produce json
// @Param vertical path string true "Vertical" Enums(offres, entreprises, ecoles, conseils)
// @Success 200 {object} Response{data=service.WorkspaceState}
// @Failure 404 {object} ErrorResponseBody "Unknown vertical"
// @Router /workspace/tabs/{vertical} [post]
func (h *WorkspaceHandler) Switch(c *gin.Context) {
	v, err := domain.ParseVertical(c.Param("vertical"))
	if err == nil {
		err = h.ws.Switch(v)
	}
	if err != nil {
		HandleError(c, h.logger, err, domain.Messages{})
		return
	}
	RespondOK(c, h.ws.State())
}

// Reload handles POST /api/v1/workspace/reload
// @Summary Reload records
// @Description Replace every in-memory list with the store contents
// @Tags workspace
// @Produce json
// @Success 200 {object} Response{data=service.WorkspaceState}
// @Router /workspace/reload [post]
func (h *WorkspaceHandler) Reload(c *gin.Context) {
	if err := h.ws.ReloadAll(c.Request.Context()); err != nil {
		HandleError(c, h.logger, err, domain.Messages{})
		return
	}
	RespondOK(c, h.ws.State())
}

// Connection handles GET /api/v1/workspace/connection
// @Summary Test store connection
// @Description Counts the job offers table to check that the record store answers
// @Tags workspace
// @Produce json
// @Success 200 {object} Response{data=ConnectionResult}
// @Router /workspace/connection [get]
func (h *WorkspaceHandler) Connection(c *gin.Context) {
	ok := h.ws.TestConnection(c.Request.Context())
	RespondOK(c, ConnectionResult{Connected: ok, Message: ConnectionMessage(ok)})
}

// ConnectionMessage is the banner text of a connection test.
func ConnectionMessage(ok bool) string {
	if ok {
		return "Connexion à la base de données réussie."
	}
	return "Échec de la connexion à la base de données. Vérifiez la configuration."
}
