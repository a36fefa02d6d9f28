package matcher

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLexicon_Classify(t *testing.T) {
	lex := DefaultLexicon()
	cases := map[string]Intent{
		"hi":            IntentGreeting,
		"good morning":  IntentGreeting,
		"whats up":      IntentGreeting,
		"see ya":        IntentFarewell,
		"clear":         IntentFarewell,
		"thank you":     IntentThanks,
		"salamat":       IntentThanks,
		"k":             IntentAffirmative,
		"okay":          IntentAffirmative,
		"not really":    IntentNegative,
		"naw":           IntentNegative,
		"hi there":      IntentUnclassified,
		"good morning!": IntentUnclassified,
		"password":      IntentUnclassified,
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			require.Equal(t, want, lex.Classify(in))
		})
	}
}

func TestLexicon_MatchesWholeMessageOnly(t *testing.T) {
	lex := DefaultLexicon()
	require.Equal(t, IntentUnclassified, lex.Classify("hello how do i reset my password"))
	require.Equal(t, IntentUnclassified, lex.Classify("bye bye"))
}

func TestIntent_String(t *testing.T) {
	require.Equal(t, "farewell", IntentFarewell.String())
	require.Equal(t, "unclassified", Intent(42).String())
}
