package services

import (
	"context"
	"fmt"
	"strings"

	"jobportal_backend/internal/models"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// Enricher is the language-model text service the job layer consumes. Kept
// as an interface so the rest of the code never depends on a concrete
// provider.
type Enricher interface {
	EnrichJobDescription(ctx context.Context, job *models.Job) (string, error)
}

type GeminiEnricher struct {
	client llms.Model
}

// NewGeminiEnricher builds an enricher backed by Gemini. apiKey must be
// non-empty; model falls back to gemini-2.5-flash.
func NewGeminiEnricher(ctx context.Context, apiKey, model string) (*GeminiEnricher, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiEnricher{client: client}, nil
}

const enrichPromptTemplate = `Rewrite the following job posting description as two or three clear,
professional paragraphs. Keep every factual detail, remove filler, and do not
invent information. Respond with plain text only.

Job title: %s
Company: %s
Designation: %s

Description:
%s`

func (e *GeminiEnricher) EnrichJobDescription(ctx context.Context, job *models.Job) (string, error) {
	description := job.Description
	if len(description) > 20000 {
		description = description[:20000]
	}

	prompt := fmt.Sprintf(enrichPromptTemplate, job.Title, job.CompanyName, job.Designation, description)
	resp, err := llms.GenerateFromSinglePrompt(ctx, e.client, prompt)
	if err != nil {
		return "", err
	}

	resp = strings.TrimSpace(resp)
	if resp == "" {
		return "", fmt.Errorf("model returned an empty description")
	}
	return resp, nil
}
