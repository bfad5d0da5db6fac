package extract

import "strings"

// AverageConfidence averages the non-negative per-word confidences of a
// recognition result. It returns nil when no usable confidence values exist,
// which the decision engine treats as zero confidence.
func AverageConfidence(words []Word) *float64 {
	var sum float64
	var n int
	for _, w := range words {
		if w.Confidence == nil || *w.Confidence < 0 {
			continue
		}
		sum += *w.Confidence
		n++
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

// WordCount counts recognized tokens with non-blank text.
func WordCount(words []Word) int {
	var n int
	for _, w := range words {
		if strings.TrimSpace(w.Text) != "" {
			n++
		}
	}
	return n
}
