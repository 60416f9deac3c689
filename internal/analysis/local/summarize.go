package local

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"strings"
)

const maxSummarySentences = 5

var sentenceEndRe = regexp.MustCompile(`[.!?]+[\s\n]+`)

//nolint:gochecknoglobals // Lookup table meant to be immutable.
var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "and", "are", "as", "at", "be", "but", "by", "for",
		"from", "has", "have", "he", "her", "his", "if", "in", "is", "it",
		"its", "not", "of", "on", "or", "shall", "she", "that", "the",
		"their", "they", "this", "to", "was", "were", "which", "will",
		"with",
	}

	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()

// Summarize picks the highest-scoring sentences by term frequency and
// returns them in original order. The whole text is handled in one pass,
// so input length is unbounded.
func (p *Provider) Summarize(_ context.Context, text string) (string, error) {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return "", errors.New("input is empty")
	}

	if len(sentences) <= maxSummarySentences {
		return strings.Join(sentences, " "), nil
	}

	freq := termFrequencies(sentences)

	type scored struct {
		index int
		score float64
	}

	ranked := make([]scored, 0, len(sentences))
	for i, sentence := range sentences {
		terms := tokenize(sentence)
		if len(terms) == 0 {
			continue
		}

		var sum float64
		for _, term := range terms {
			sum += freq[term]
		}

		ranked = append(ranked, scored{index: i, score: sum / float64(len(terms))})
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		default:
			return 0
		}
	})

	if len(ranked) > maxSummarySentences {
		ranked = ranked[:maxSummarySentences]
	}

	slices.SortFunc(ranked, func(a, b scored) int { return a.index - b.index })

	picked := make([]string, 0, len(ranked))
	for _, s := range ranked {
		picked = append(picked, sentences[s.index])
	}

	return strings.Join(picked, " "), nil
}

func splitSentences(text string) []string {
	var sentences []string

	for _, raw := range sentenceEndRe.Split(text, -1) {
		sentence := strings.Join(strings.Fields(raw), " ")
		if sentence == "" {
			continue
		}

		sentences = append(sentences, sentence)
	}

	return sentences
}

func termFrequencies(sentences []string) map[string]float64 {
	freq := make(map[string]float64)
	for _, sentence := range sentences {
		for _, term := range tokenize(sentence) {
			freq[term]++
		}
	}

	return freq
}

func tokenize(sentence string) []string {
	var terms []string

	for _, field := range strings.Fields(sentence) {
		term := strings.ToLower(strings.Trim(field, `.,;:!?"'()[]{}`))
		if term == "" {
			continue
		}
		if _, ok := stopwords[term]; ok {
			continue
		}

		terms = append(terms, term)
	}

	return terms
}
