package analysis

// MaxChunkChars is the largest piece of text handed to the inference
// backend in one summarization call.
const MaxChunkChars = 1000

// splitChunks cuts text into fixed-size contiguous chunks, in original
// order, without overlap. Counted in runes so multi-byte characters are
// never split.
func splitChunks(text string, maxChars int) []string {
	if text == "" || maxChars <= 0 {
		return nil
	}

	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+maxChars-1)/maxChars)

	for start := 0; start < len(runes); start += maxChars {
		end := min(start+maxChars, len(runes))
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks
}
