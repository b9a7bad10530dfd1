package service

import (
	"context"
	"fmt"

	"github.com/hametuha/hamelp-be/config"
)

const (
	FORMAT_TEXT = "text"
	FORMAT_JSON = "json"
)

// TextRequest is a single-shot generation request. Format hints the
// provider to force structured output where it supports doing so.
type TextRequest struct {
	SystemInstruction string
	Prompt            string
	Temperature       float32
	Format            string
}

type AIService interface {
	GenerateText(ctx context.Context, req TextRequest) (string, error)
}

// NewAIService builds the configured provider. A nil service with nil
// error means AI is intentionally disabled; callers surface that as
// ai_unavailable instead of failing startup.
func NewAIService(cfg *config.Config) (AIService, error) {
	switch cfg.AIProvider {
	case "":
		return nil, nil
	case "openai":
		if cfg.OpenAIAPIKey == "" && cfg.AIEndpoint == "" {
			return nil, nil
		}
		return NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, nil
		}
		return NewGeminiService(cfg.GeminiAPIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown ai provider: %s", cfg.AIProvider)
	}
}
