package local

import (
	"context"
	"regexp"
	"strings"

	"mvdan.cc/xurls/v2"

	"doclens/internal/models"
)

const (
	maxEntities = 100

	patternScore   = 0.95
	heuristicScore = 0.6
)

var (
	dateRe = regexp.MustCompile(
		`(?i)\b(?:(?:Jan|Febr)uary|March|April|May|June|July|August|` +
			`(?:Septem|Octo|Novem|Decem)ber)\s+\d{1,2},?\s+\d{4}\b` +
			`|\b\d{4}-\d{2}-\d{2}\b` +
			`|\b\d{1,2}/\d{1,2}/\d{2,4}\b`,
	)

	moneyRe = regexp.MustCompile(
		`[$€£]\s?\d[\d,]*(?:\.\d+)?(?:\s?(?:thousand|million|billion))?` +
			`|\b\d[\d,]*(?:\.\d+)?\s?(?:USD|EUR|GBP)\b`,
	)

	emailRe = regexp.MustCompile(`\b[\w.+-]+@[\w-]+\.[\w.-]*\w\b`)

	// Two or more adjacent capitalized words. Single capitalized words are
	// skipped as too noisy (sentence starts).
	properNounRe = regexp.MustCompile(
		`\b[A-Z][\w&.-]*(?:\s+(?:of|the|for|and)\s+|\s+)(?:[A-Z][\w&.-]*)(?:\s+[A-Z][\w&.-]*)*`,
	)

	urlRe = xurls.Relaxed()
)

//nolint:gochecknoglobals // Lookup table meant to be immutable.
var orgMarkers = func() map[string]struct{} {
	markers := []string{
		"inc", "llc", "ltd", "corp", "corporation", "company", "co",
		"gmbh", "plc", "group", "university", "institute", "bank",
		"court", "agency", "ministry", "department", "association",
	}

	m := make(map[string]struct{}, len(markers))
	for _, marker := range markers {
		m[marker] = struct{}{}
	}
	return m
}()

// ExtractEntities scans the whole text with fixed patterns: dates, money,
// emails, URLs, and capitalized name sequences classified as ORG or PER.
func (p *Provider) ExtractEntities(_ context.Context, text string) ([]models.Entity, error) {
	var entities []models.Entity
	seen := make(map[string]struct{})

	add := func(span string, label string, score float64) {
		span = strings.TrimSpace(span)
		if span == "" || len(entities) >= maxEntities {
			return
		}

		key := strings.ToLower(span) + "|" + label
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}

		entities = append(entities, models.Entity{
			Text:  span,
			Label: label,
			Score: score,
		})
	}

	for _, m := range dateRe.FindAllString(text, -1) {
		add(m, "DATE", patternScore)
	}

	for _, m := range moneyRe.FindAllString(text, -1) {
		add(m, "MONEY", patternScore)
	}

	for _, m := range emailRe.FindAllString(text, -1) {
		add(m, "EMAIL", patternScore)
	}

	for _, m := range urlRe.FindAllString(text, -1) {
		if strings.Contains(m, "@") {
			continue
		}

		add(m, "URL", patternScore)
	}

	for _, m := range properNounRe.FindAllString(text, -1) {
		add(m, classifyProperNoun(m), heuristicScore)
	}

	return entities, nil
}

func classifyProperNoun(span string) string {
	for _, field := range strings.Fields(span) {
		term := strings.ToLower(strings.Trim(field, ".,"))
		if _, ok := orgMarkers[term]; ok {
			return "ORG"
		}
	}

	return "PER"
}
