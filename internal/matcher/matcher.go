// Package matcher scores free-text questions against an FAQ catalog.
package matcher

import (
	"slices"
	"strings"

	"faq-bot/internal/domain"
)

const (
	DefaultDirectThreshold  = 0.2
	DefaultSuggestThreshold = 0.1
)

// Kind is the outcome of a match.
type Kind int

const (
	NoMatch Kind = iota
	DirectAnswer
	Suggestion
)

// Stage names the step of the pipeline that produced a result.
type Stage string

const (
	StageNone    Stage = ""
	StageKeyword Stage = "keyword"
	StageOneWord Stage = "one_word"
	StageCosine  Stage = "cosine"
)

// Result is the outcome of Match. FAQ and Score are zero for NoMatch.
type Result struct {
	Kind  Kind
	Stage Stage
	FAQ   domain.FAQ
	Score float64
}

// Thresholds holds the minimum scores for a direct answer (inclusive) and
// for a suggestion (exclusive).
type Thresholds struct {
	Direct  float64
	Suggest float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{Direct: DefaultDirectThreshold, Suggest: DefaultSuggestThreshold}
}

type entry struct {
	faq      domain.FAQ
	question string
	tokens   []string
}

type scored struct {
	index int
	score float64
}

// Matcher is an immutable snapshot of a catalog. It is safe for concurrent use.
type Matcher struct {
	entries    []entry
	thresholds Thresholds
}

// New builds a Matcher over faqs, keeping catalog order. A zero Thresholds
// value selects the defaults.
func New(faqs []domain.FAQ, th Thresholds) *Matcher {
	if th == (Thresholds{}) {
		th = DefaultThresholds()
	}
	entries := make([]entry, len(faqs))
	for i, f := range faqs {
		q := Normalize(f.Question)
		entries[i] = entry{faq: f, question: q, tokens: Tokenize(q)}
	}
	return &Matcher{entries: entries, thresholds: th}
}

// Len returns the number of catalog entries.
func (m *Matcher) Len() int {
	return len(m.entries)
}

// Thresholds returns the thresholds the matcher was built with.
func (m *Matcher) Thresholds() Thresholds {
	return m.thresholds
}

// Match runs direct keyword matching, then the single-word shortcut, then
// cosine suggestion. The first step that produces a result wins.
func (m *Matcher) Match(normalized string) Result {
	words := Tokenize(normalized)
	if len(words) == 0 || len(m.entries) == 0 {
		return Result{Kind: NoMatch}
	}

	if best, ok := m.bestKeyword(words); ok {
		return m.result(DirectAnswer, StageKeyword, best)
	}
	if len(words) == 1 {
		if idx := m.firstContaining(words[0]); idx >= 0 {
			return m.result(DirectAnswer, StageOneWord, scored{index: idx, score: 1})
		}
	}
	if best, ok := m.bestSuggestion(words); ok {
		return m.result(Suggestion, StageCosine, best)
	}
	return Result{Kind: NoMatch}
}

func (m *Matcher) bestKeyword(words []string) (scored, bool) {
	scores := make([]scored, len(m.entries))
	for i, e := range m.entries {
		scores[i] = scored{index: i, score: keywordScore(words, e.question, len(e.tokens))}
	}
	top, ok := highest(scores)
	if !ok || top.score < m.thresholds.Direct {
		return scored{}, false
	}
	return top, true
}

func (m *Matcher) firstContaining(word string) int {
	return slices.IndexFunc(m.entries, func(e entry) bool {
		return strings.Contains(e.question, word)
	})
}

func (m *Matcher) bestSuggestion(words []string) (scored, bool) {
	scores := make([]scored, 0, len(m.entries))
	for i, e := range m.entries {
		s := cosineTokens(words, e.tokens)
		if s > m.thresholds.Suggest {
			scores = append(scores, scored{index: i, score: s})
		}
	}
	return highest(scores)
}

// highest orders scores descending with a stable sort so ties keep catalog
// order, and returns the first.
func highest(scores []scored) (scored, bool) {
	if len(scores) == 0 {
		return scored{}, false
	}
	slices.SortStableFunc(scores, func(a, b scored) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		default:
			return 0
		}
	})
	return scores[0], true
}

func (m *Matcher) result(kind Kind, stage Stage, s scored) Result {
	return Result{Kind: kind, Stage: stage, FAQ: m.entries[s.index].faq, Score: s.score}
}
