package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hametuha/hamelp-be/middleware"
	"github.com/hametuha/hamelp-be/types"
	"github.com/hametuha/hamelp-be/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOverviewService struct {
	result *types.AnswerResult
	err    error
	calls  int
}

func (s *stubOverviewService) GenerateOverview(ctx context.Context, query string, viewer *utils.UserClaims) (*types.AnswerResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubAdmissionService struct {
	checkErr *types.APIError
	recorded int
}

func (s *stubAdmissionService) Check(ctx context.Context, viewer *utils.UserClaims, ip string) *types.APIError {
	return s.checkErr
}

func (s *stubAdmissionService) Record(ctx context.Context, ip string) error {
	s.recorded++
	return nil
}

func overviewRouter(h *OverviewHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/hamelp/v1")
	group.Use(middleware.OptionalAuth)
	group.POST("/ai-overview", h.HandleOverview)
	return router
}

func postOverview(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/hamelp/v1/ai-overview", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleOverviewSuccess(t *testing.T) {
	overview := &stubOverviewService{
		result: &types.AnswerResult{
			Answer: "Use the reset link [ID:42].",
			Sources: []types.Source{
				{ID: "42", Title: "Password reset", URL: "https://example.com/faq/reset"},
			},
			Generated: true,
		},
	}
	admission := &stubAdmissionService{}
	router := overviewRouter(NewOverviewHandler(overview, admission))

	w := postOverview(router, `{"query":"how do I reset my password?"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result types.AnswerResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "Use the reset link [ID:42].", result.Answer)
	require.Len(t, result.Sources, 1)
	assert.Equal(t, "42", result.Sources[0].ID)

	assert.Equal(t, 1, overview.calls)
	assert.Equal(t, 1, admission.recorded, "successful generation charges the quota once")
}

func TestHandleOverviewMissingQuery(t *testing.T) {
	router := overviewRouter(NewOverviewHandler(&stubOverviewService{}, &stubAdmissionService{}))

	w := postOverview(router, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleOverviewAIUnavailable(t *testing.T) {
	router := overviewRouter(NewOverviewHandler(nil, &stubAdmissionService{}))

	w := postOverview(router, `{"query":"hello"}`)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, types.ERROR_AI_UNAVAILABLE, body["code"])
}

func TestHandleOverviewForbidden(t *testing.T) {
	admission := &stubAdmissionService{checkErr: types.NewForbiddenError("login required")}
	overview := &stubOverviewService{result: &types.AnswerResult{}}
	router := overviewRouter(NewOverviewHandler(overview, admission))

	w := postOverview(router, `{"query":"hello"}`)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, overview.calls)
	assert.Equal(t, 0, admission.recorded)
}

func TestHandleOverviewRateLimited(t *testing.T) {
	admission := &stubAdmissionService{checkErr: types.NewRateLimitError("slow down")}
	router := overviewRouter(NewOverviewHandler(&stubOverviewService{}, admission))

	w := postOverview(router, `{"query":"hello"}`)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, types.ERROR_RATE_LIMITED, body["code"])
}

func TestHandleOverviewCannedAnswerNotCharged(t *testing.T) {
	overview := &stubOverviewService{
		result: &types.AnswerResult{
			Answer:    "no content yet",
			Sources:   []types.Source{},
			Generated: false,
		},
	}
	admission := &stubAdmissionService{}
	router := overviewRouter(NewOverviewHandler(overview, admission))

	w := postOverview(router, `{"query":"hello"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, admission.recorded, "canned answers must not consume quota")
}

func TestHandleOverviewGenerationErrorNotCharged(t *testing.T) {
	overview := &stubOverviewService{err: errors.New("model timeout")}
	admission := &stubAdmissionService{}
	router := overviewRouter(NewOverviewHandler(overview, admission))

	w := postOverview(router, `{"query":"hello"}`)
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, 0, admission.recorded, "failed generation must not consume quota")
}
