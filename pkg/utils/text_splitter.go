package utils

// SplitText splits a long string into overlapping windows of 'chunkSize'
// characters. Window i starts at i*(chunkSize-overlap); the last window may
// be shorter. This is a simple character-based splitter. Ideally, use a
// tokenizer-aware splitter.
func SplitText(text string, chunkSize int, overlap int) []string {
	if len(text) == 0 {
		return nil
	}
	if len(text) <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	var chunks []string
	runes := []rune(text)
	totalLen := len(runes)

	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}

	return chunks
}
