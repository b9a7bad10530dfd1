package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hametuha/hamelp-be/service"
	"github.com/hametuha/hamelp-be/types"
)

type FaqHandler struct {
	faqService service.FaqService
}

func NewFaqHandler(faqService service.FaqService) *FaqHandler {
	return &FaqHandler{
		faqService: faqService,
	}
}

func (h *FaqHandler) HandleCreateFaq(c *gin.Context) {
	var req types.CreateFaqRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Invalid request body",
		})
		return
	}

	faq := &types.FaqDocument{
		Title:    req.Title,
		Slug:     req.Slug,
		Body:     req.Body,
		Category: req.Category,
		Access:   req.Access,
		Status:   req.Status,
	}
	if err := h.faqService.CreateFaq(c.Request.Context(), faq); err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data:   faq,
	})
}

func (h *FaqHandler) HandleListFaqs(c *gin.Context) {
	faqs, err := h.faqService.ListPublished(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data:   faqs,
	})
}

func (h *FaqHandler) HandleUpdateFaq(c *gin.Context) {
	var req types.UpdateFaqRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Invalid request body",
		})
		return
	}

	faq := &types.FaqDocument{
		Title:    req.Title,
		Slug:     req.Slug,
		Body:     req.Body,
		Category: req.Category,
		Access:   req.Access,
		Status:   req.Status,
	}
	if err := h.faqService.UpdateFaq(c.Request.Context(), req.ID, faq); err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
	})
}

func (h *FaqHandler) HandleDeleteFaq(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "The id parameter is required.",
		})
		return
	}

	if err := h.faqService.DeleteFaq(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
	})
}
