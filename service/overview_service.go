package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hametuha/hamelp-be/config"
	"github.com/hametuha/hamelp-be/types"
	"github.com/hametuha/hamelp-be/utils"
)

const overviewTemperature = 0.3

const defaultSystemPrompt = `You are a FAQ support assistant. Answer user questions based on the provided FAQ content.

IMPORTANT RULES:
- When you reference a FAQ, cite it inline within your answer text using its ID marker, like [ID:xxx].
- DO NOT include a separate "Related FAQ" section at the end of your answer. The system displays FAQ links separately, so inline citations are enough.
- Respond with strict JSON containing exactly two fields: "answer" (string) and "cited_ids" (array of the FAQ IDs you actually referenced, empty array if none).
- If no relevant FAQ is found, provide a helpful answer based on general knowledge and leave "cited_ids" empty.
- Keep your response concise and helpful.
- Respond in the same language as the user question.`

const noContentAnswer = "Sorry, there are no FAQ entries available yet. Please check back later."

// UserContextFunc renders the viewer context block of the system prompt.
// Integrators can replace it to inject or suppress fields.
type UserContextFunc func(viewer *utils.UserClaims) string

type OverviewService interface {
	GenerateOverview(ctx context.Context, query string, viewer *utils.UserClaims) (*types.AnswerResult, error)
}

type overviewService struct {
	catalog     CatalogService
	ai          AIService
	cfg         config.ContextConfig
	threshold   int
	userContext UserContextFunc
}

func NewOverviewService(catalog CatalogService, ai AIService, cfg config.ContextConfig, threshold int, userContext UserContextFunc) OverviewService {
	if userContext == nil {
		userContext = DefaultUserContext
	}
	return &overviewService{
		catalog:     catalog,
		ai:          ai,
		cfg:         cfg,
		threshold:   threshold,
		userContext: userContext,
	}
}

func (s *overviewService) GenerateOverview(ctx context.Context, query string, viewer *utils.UserClaims) (*types.AnswerResult, error) {
	role := ""
	if viewer != nil {
		role = viewer.Role
	}
	catalog, err := s.catalog.GetAccessibleCatalog(ctx, role)
	if err != nil {
		return nil, err
	}

	// An empty corpus is an expected state, not a fault. Answer without
	// spending an AI call.
	if len(catalog.Entries) == 0 {
		return &types.AnswerResult{
			Answer:    noContentAnswer,
			Sources:   []types.Source{},
			Generated: false,
		}, nil
	}

	systemPrompt := s.buildSystemPrompt(catalog, viewer)

	response, err := s.ai.GenerateText(ctx, TextRequest{
		SystemInstruction: systemPrompt,
		Prompt:            query,
		Temperature:       overviewTemperature,
		Format:            FORMAT_JSON,
	})
	if err != nil {
		return nil, err
	}

	answer, citedIDs := parseModelAnswer(response)
	return &types.AnswerResult{
		Answer:    answer,
		Sources:   resolveSources(catalog, citedIDs),
		Generated: true,
	}, nil
}

// buildSystemPrompt concatenates the task description, the operator's
// site context, the viewer context for logged-in users, and the FAQ
// context chosen by corpus size.
func (s *overviewService) buildSystemPrompt(catalog *types.Catalog, viewer *utils.UserClaims) string {
	var blocks []string

	base := s.cfg.SystemPrompt
	if base == "" {
		base = defaultSystemPrompt
	}
	blocks = append(blocks, base)

	if site := s.siteContext(); site != "" {
		blocks = append(blocks, site)
	}
	if s.cfg.IncludeUserContext && viewer != nil {
		if userBlock := s.userContext(viewer); userBlock != "" {
			blocks = append(blocks, userBlock)
		}
	}

	blocks = append(blocks, s.buildContext(catalog))
	return strings.Join(blocks, "\n\n")
}

func (s *overviewService) siteContext() string {
	var lines []string
	if s.cfg.Description != "" {
		lines = append(lines, "About this site: "+s.cfg.Description)
	}
	if s.cfg.Audience != "" {
		lines = append(lines, "Audience: "+s.cfg.Audience)
	}
	if s.cfg.Tone != "" {
		lines = append(lines, "Tone: "+s.cfg.Tone)
	}
	if s.cfg.Notes != "" {
		lines = append(lines, "Notes: "+s.cfg.Notes)
	}
	return strings.Join(lines, "\n")
}

// DefaultUserContext is the stock viewer block: display name, role and
// registration date.
func DefaultUserContext(viewer *utils.UserClaims) string {
	lines := []string{"User information:"}
	if viewer.DisplayName != "" {
		lines = append(lines, "- Name: "+viewer.DisplayName)
	}
	if viewer.Role != "" {
		lines = append(lines, "- Role: "+viewer.Role)
	}
	if viewer.RegisteredAt > 0 {
		registered := time.Unix(viewer.RegisteredAt, 0).UTC().Format("2006-01-02")
		lines = append(lines, "- Registered: "+registered)
	}
	if len(lines) == 1 {
		return ""
	}
	return strings.Join(lines, "\n")
}

// buildContext renders the catalog as LLM context. Small corpora get the
// full truncated content of every entry; past the threshold each entry
// degrades to its excerpt so the prompt stays bounded as the corpus grows.
func (s *overviewService) buildContext(catalog *types.Catalog) string {
	fullDump := len(catalog.Entries) <= s.threshold

	var sb strings.Builder
	if fullDump {
		sb.WriteString("FAQ content:\n\n")
	} else {
		sb.WriteString("FAQ catalog (summaries):\n\n")
	}

	for _, entry := range catalog.Entries {
		header := fmt.Sprintf("[ID:%s] %s", entry.ID, entry.Title)
		if entry.Category != "" {
			header += fmt.Sprintf(" (Category: %s)", entry.Category)
		}
		sb.WriteString(header)
		sb.WriteByte('\n')
		if fullDump {
			sb.WriteString(entry.Content)
		} else {
			sb.WriteString(entry.Excerpt)
		}
		sb.WriteString("\n\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// parseModelAnswer decodes the two-field JSON the model was asked for.
// Models sometimes ignore the format, so a failed parse degrades to the
// raw text as the answer with no citations.
func parseModelAnswer(response string) (string, []string) {
	cleaned := stripCodeFence(response)

	var parsed types.ModelAnswer
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil || parsed.Answer == "" {
		return response, nil
	}
	return parsed.Answer, parsed.CitedIDs
}

func stripCodeFence(response string) string {
	trimmed := strings.TrimSpace(response)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// resolveSources intersects the cited IDs with the catalog, preserving
// catalog order. IDs no longer present are dropped silently.
func resolveSources(catalog *types.Catalog, citedIDs []string) []types.Source {
	cited := make(map[string]bool, len(citedIDs))
	for _, id := range citedIDs {
		cited[id] = true
	}

	sources := []types.Source{}
	for _, entry := range catalog.Entries {
		if cited[entry.ID] {
			sources = append(sources, types.Source{
				ID:    entry.ID,
				Title: entry.Title,
				URL:   entry.URL,
			})
		}
	}
	return sources
}
