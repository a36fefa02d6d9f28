package matcher

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "   \t\n ", want: ""},
		{in: "  Hello World  ", want: "hello world"},
		{in: "GOOD Morning", want: "good morning"},
		{in: "ÉCOLE Privée", want: "école privée"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestTokenize_DropsEmptyEntries(t *testing.T) {
	require.Equal(t, []string{"reset", "my", "password"}, Tokenize("  reset   my\tpassword "))
	require.Empty(t, Tokenize("   "))
}
