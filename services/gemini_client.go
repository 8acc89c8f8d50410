package services

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"mrmelo_sanctuary/config"
)

// GeminiGenerator 基于 google.golang.org/genai 的 Generator 实现
type GeminiGenerator struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGeminiGenerator 使用配置中的API Key创建客户端
func NewGeminiGenerator(ctx context.Context, cfg *config.Config) (*GeminiGenerator, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, errors.New("gemini api key is not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiGenerator{
		client:      client,
		model:       cfg.Gemini.Model,
		temperature: cfg.Gemini.Temperature,
	}, nil
}

// GenerateJSON 以 application/json 和 ResponseSchema 约束输出
func (g *GeminiGenerator) GenerateJSON(ctx context.Context, prompt Prompt) (string, error) {
	genConfig := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](g.temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   prompt.Schema,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt.Text), genConfig)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("empty response from gemini")
	}
	return text, nil
}
