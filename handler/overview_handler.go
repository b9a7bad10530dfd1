package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hametuha/hamelp-be/middleware"
	"github.com/hametuha/hamelp-be/service"
	"github.com/hametuha/hamelp-be/types"
)

type OverviewHandler struct {
	overview  service.OverviewService
	admission service.AdmissionService
}

// NewOverviewHandler wires the AI overview endpoint. overview may be nil
// when no AI provider is configured; requests then get ai_unavailable.
func NewOverviewHandler(overview service.OverviewService, admission service.AdmissionService) *OverviewHandler {
	return &OverviewHandler{
		overview:  overview,
		admission: admission,
	}
}

func (h *OverviewHandler) HandleOverview(c *gin.Context) {
	var req types.OverviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "The query parameter is required.",
		})
		return
	}

	if h.overview == nil {
		h.sendAPIError(c, types.NewAIUnavailableError())
		return
	}

	viewer := middleware.Viewer(c)
	ip := service.ClientIP(c.Request.Header, c.Request.RemoteAddr)

	if apiErr := h.admission.Check(c.Request.Context(), viewer, ip); apiErr != nil {
		h.sendAPIError(c, apiErr)
		return
	}

	result, err := h.overview.GenerateOverview(c.Request.Context(), req.Query, viewer)
	if err != nil {
		// Generation errors pass through untouched; retry policy belongs
		// to the AI client, not here.
		h.sendAPIError(c, types.NewGenerationError(err))
		return
	}

	// Quota is charged only for completed generations, so a failed call
	// or a canned answer never costs the user a request.
	if result.Generated {
		if err := h.admission.Record(c.Request.Context(), ip); err != nil {
			log.Printf("failed to record rate counters: %v", err)
		}
	}

	c.JSON(http.StatusOK, result)
}

func (h *OverviewHandler) sendAPIError(c *gin.Context, apiErr *types.APIError) {
	c.JSON(apiErr.Status, gin.H{
		"code":    apiErr.Code,
		"message": apiErr.Message,
	})
}
