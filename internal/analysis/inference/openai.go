// Package inference is the generic model-backed analysis backend. It
// serves both capabilities through OpenAI's Responses API and is used
// whenever no local backend takes precedence.
package inference

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
)

const (
	baseMaxOutputTokens  int64 = 512
	limitMaxOutputTokens int64 = 2048

	summarizePrompt = `Summarize the document text in a short paragraph.

Rules:
- ≤80 words.
- Keep critical context: parties, dates, amounts, obligations.
- Neutral tone, no lists.
- Output plain text in the same language as the input.`

	entitiesPrompt = `Extract named entities from the document text.

Rules:
- Return a JSON array only, no prose, no code fences.
- Each element: {"text": "<span>", "label": "<PER|ORG|LOC|DATE|MONEY|MISC>", "score": <0..1>}.
- Use the exact spans as they appear in the input.
- Return [] when there are none.`
)

// Provider calls OpenAI's Responses API for both capabilities.
type Provider struct {
	client openai.Client
}

func New(apiKey string) (*Provider, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("API key is empty")
	}

	return &Provider{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
	}, nil
}

func (p *Provider) Name() string {
	return "openai"
}

// Summarize produces a summary for one chunk of document text.
func (p *Provider) Summarize(ctx context.Context, text string) (string, error) {
	output, err := p.respond(ctx, summarizePrompt, text)
	if err != nil {
		return "", err
	}

	return output, nil
}

// respond runs one Responses API call, retrying with a doubled output
// budget while the response is cut off at max_output_tokens.
func (p *Provider) respond(ctx context.Context, instructions string, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("input is empty")
	}

	maxOutputTokens := baseMaxOutputTokens
	for {
		resp, err := p.client.Responses.New(ctx, responses.ResponseNewParams{
			Model:           openai.ChatModelGPT5Mini2025_08_07,
			ServiceTier:     responses.ResponseNewParamsServiceTierFlex,
			MaxOutputTokens: openai.Int(maxOutputTokens),
			Reasoning: responses.ReasoningParam{
				Effort: openai.ReasoningEffortLow,
			},
			Instructions: openai.String(instructions),
			Input: responses.ResponseNewParamsInputUnion{
				OfString: openai.String(text),
			},
		})
		if err != nil {
			return "", fmt.Errorf("do request: %w", err)
		}

		if resp.Status == "incomplete" {
			if resp.IncompleteDetails.Reason == "max_output_tokens" && maxOutputTokens < limitMaxOutputTokens {
				maxOutputTokens *= 2
				if maxOutputTokens > limitMaxOutputTokens {
					maxOutputTokens = limitMaxOutputTokens
				}
				continue
			}
			return "", fmt.Errorf(
				"response is incomplete (reason = %s, maxOutputTokens = %d)",
				resp.IncompleteDetails.Reason,
				maxOutputTokens,
			)
		}

		output := strings.TrimSpace(resp.OutputText())
		if output == "" {
			return "", fmt.Errorf("output text is missing (status = %s)", resp.Status)
		}
		return output, nil
	}
}
