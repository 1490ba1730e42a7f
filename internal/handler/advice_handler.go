package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"seogen/internal/catalog"
	"seogen/internal/domain"
	"seogen/internal/service"
)

// AdviceHandler handles advice article generation.
type AdviceHandler struct {
	ws     *service.Workspace
	logger *zap.Logger
}

// NewAdviceHandler creates a new AdviceHandler.
func NewAdviceHandler(ws *service.Workspace, logger *zap.Logger) *AdviceHandler {
	return &AdviceHandler{ws: ws, logger: logger.Named("handler.conseils")}
}

// Generate handles POST /api/v1/conseils
// @Summary Generate an advice article
// @Description Write a long-form article from a title and a theme. Runs in the background (202) unless wait=true (201).
// @Tags conseils
// @Accept json
// @Produce json
// @Param request body GenerateAdviceRequest true "Article seed"
// @Param wait query bool false "Block until the article is written"
// @Success 201 {object} Response{data=domain.AdviceArticle} "Article generated"
// @Success 202 {object} Response{data=service.LaneState} "Generation started"
// @Failure 400 {object} ErrorResponseBody "Missing title"
// @Failure 409 {object} ErrorResponseBody "A generation is already running"
// @Failure 502 {object} ErrorResponseBody "Model error"
// @Failure 503 {object} ErrorResponseBody "API key not configured"
// @Router /conseils [post]
func (h *AdviceHandler) Generate(c *gin.Context) {
	var req GenerateAdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Corps de requête invalide.")
		return
	}

	model, err := domain.ParseModel(req.Model)
	if err != nil {
		HandleError(c, h.logger, err, catalog.Conseils.Messages)
		return
	}

	if wait, _ := strconv.ParseBool(c.Query("wait")); wait {
		article, err := h.ws.GenerateAdvice(c.Request.Context(), req.Titre, req.Thematique, model)
		if err != nil {
			HandleError(c, h.logger, err, catalog.Conseils.Messages)
			return
		}
		RespondCreated(c, article)
		return
	}

	if err := h.ws.StartAdvice(c.Request.Context(), req.Titre, req.Thematique, model); err != nil {
		HandleError(c, h.logger, err, catalog.Conseils.Messages)
		return
	}
	tab, _ := h.ws.Tab(domain.VerticalConseils)
	RespondAccepted(c, tab.State())
}
