package service

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
)

type OpenAIService struct {
	client *openai.Client
	model  string
}

// NewOpenAIService works against api.openai.com or any OpenAI-compatible
// endpoint when baseURL is set.
func NewOpenAIService(baseURL, apiKey, model string) *OpenAIService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	client := openai.NewClientWithConfig(config)
	return &OpenAIService{
		client: client,
		model:  model,
	}
}

func (s *OpenAIService) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemInstruction,
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: req.Prompt,
		},
	}

	request := openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: req.Temperature,
	}
	if req.Format == FORMAT_JSON {
		request.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := s.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no response generated")
	}

	return resp.Choices[0].Message.Content, nil
}
