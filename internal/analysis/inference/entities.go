package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"doclens/internal/models"
)

// ExtractEntities runs one grouped-entity request over the full text and
// decodes the model's JSON answer.
func (p *Provider) ExtractEntities(ctx context.Context, text string) ([]models.Entity, error) {
	output, err := p.respond(ctx, entitiesPrompt, text)
	if err != nil {
		return nil, err
	}

	entities, err := parseEntities(output)
	if err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}

	return entities, nil
}

type entityPayload struct {
	Text  string  `json:"text"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// parseEntities decodes the JSON entity array, tolerating the code
// fences some models insist on wrapping it in.
func parseEntities(output string) ([]models.Entity, error) {
	output = strings.TrimSpace(output)
	output = strings.TrimPrefix(output, "```json")
	output = strings.TrimPrefix(output, "```")
	output = strings.TrimSuffix(output, "```")
	output = strings.TrimSpace(output)

	var payload []entityPayload
	if err := json.Unmarshal([]byte(output), &payload); err != nil {
		return nil, fmt.Errorf("unmarshal entities: %w", err)
	}

	entities := make([]models.Entity, 0, len(payload))
	for _, e := range payload {
		text := strings.TrimSpace(e.Text)
		if text == "" {
			continue
		}

		label := strings.ToUpper(strings.TrimSpace(e.Label))
		if label == "" {
			label = "MISC"
		}

		entities = append(entities, models.Entity{
			Text:  text,
			Label: label,
			Score: e.Score,
		})
	}

	return entities, nil
}
