package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	services "estatedocs/internal/domain/services"
)

const systemPrompt = `You are a reviewer of Ontario estate-planning documents (wills and powers of attorney).
Review the document for compliance problems under Ontario law: missing executors or attorneys,
fewer than two witnesses, unfilled bracketed placeholder fields, and unclear distribution clauses.
Respond with JSON only, no prose, in this exact shape:
{"compliance_score": 0.0, "issues": ["..."], "suggestions": ["..."]}
compliance_score is between 0 and 1.`

// Provider implements the AnalysisProvider interface using Claude models.
type Provider struct {
	client *anthropic.Client
}

// NewProvider creates an Anthropic analysis provider with the given API key.
func NewProvider(apiKey string) (*Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &Provider{
		client: &client,
	}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "anthropic"
}

// Analyze sends the document to Claude and parses the structured review.
func (p *Provider) Analyze(ctx context.Context, req *services.AnalysisRequest) (*services.AnalysisResult, error) {
	prompt := fmt.Sprintf("Document type: %s\n\n%s", req.DocumentType, req.DocumentText)

	message, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Type: "text", Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API call failed: %w", err)
	}

	var text string
	for _, content := range message.Content {
		if content.Type == "text" {
			text += content.Text
		}
	}

	result, err := parseResult(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}

	return result, nil
}

// parseResult extracts the JSON review from the model's reply, tolerating
// code fences around the payload.
func parseResult(text string) (*services.AnalysisResult, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var result services.AnalysisResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, err
	}

	if result.ComplianceScore < 0 {
		result.ComplianceScore = 0
	}
	if result.ComplianceScore > 1 {
		result.ComplianceScore = 1
	}

	return &result, nil
}
