package matcher

import (
	"math"
	"slices"
	"strings"
)

// KeywordScore counts the input words found as substrings of question and
// divides by the question's token count (at least 1). Repeated input words
// are counted each time, so the score can exceed 1.
func KeywordScore(inputWords []string, question string) float64 {
	return keywordScore(inputWords, question, len(Tokenize(question)))
}

func keywordScore(inputWords []string, question string, questionTokens int) float64 {
	var hits float64
	for _, w := range inputWords {
		if strings.Contains(question, w) {
			hits++
		}
	}
	return hits / float64(max(1, questionTokens))
}

// Cosine returns the cosine similarity of the term-frequency vectors of a
// and b. It is 0 when either side has no tokens.
func Cosine(a, b string) float64 {
	return cosineTokens(Tokenize(a), Tokenize(b))
}

func cosineTokens(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	ca, cb := termCounts(a), termCounts(b)

	vocab := make([]string, 0, len(ca)+len(cb))
	for w := range ca {
		vocab = append(vocab, w)
	}
	for w := range cb {
		if _, ok := ca[w]; !ok {
			vocab = append(vocab, w)
		}
	}
	slices.Sort(vocab)

	var dot, magA, magB float64
	for _, w := range vocab {
		x, y := float64(ca[w]), float64(cb[w])
		dot += x * y
		magA += x * x
		magB += y * y
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

func termCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	return counts
}
