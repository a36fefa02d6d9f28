package matcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeywordScore(t *testing.T) {
	q := "how do i reset my password"

	require.InDelta(t, 1.0/6, KeywordScore([]string{"password"}, q), 1e-9)
	// Substring containment, not token equality.
	require.InDelta(t, 2.0/6, KeywordScore([]string{"reset", "pass"}, q), 1e-9)
	require.Zero(t, KeywordScore([]string{"xyz"}, q))
	require.Zero(t, KeywordScore(nil, q))
}

func TestKeywordScore_CanExceedOne(t *testing.T) {
	require.InDelta(t, 3.0, KeywordScore([]string{"a", "a", "a"}, "ab"), 1e-9)
}

func TestKeywordScore_EmptyQuestionFloorsDenominator(t *testing.T) {
	require.Zero(t, KeywordScore([]string{"a"}, ""))
}

func TestCosine(t *testing.T) {
	require.InDelta(t, 1.0, Cosine("reset password", "password reset"), 1e-9)
	require.Zero(t, Cosine("alpha beta", "gamma delta"))
	require.Zero(t, Cosine("", "anything"))
	require.Zero(t, Cosine("anything", "   "))

	// {my, xyzzy, qwerty} against six distinct tokens sharing only "my".
	require.InDelta(t, 1/math.Sqrt(18), Cosine("my xyzzy qwerty", "how do i reset my password"), 1e-9)
}

func TestCosine_UsesTermFrequency(t *testing.T) {
	// a = (2), b = (1, 1) over {go, rust}: dot 2, |a| 2, |b| sqrt(2).
	require.InDelta(t, 1/math.Sqrt2, Cosine("go go", "go rust"), 1e-9)
}
