package matcher

// Intent is the conversational category of a whole normalized message.
type Intent int

const (
	IntentUnclassified Intent = iota
	IntentGreeting
	IntentFarewell
	IntentThanks
	IntentAffirmative
	IntentNegative
)

func (i Intent) String() string {
	switch i {
	case IntentGreeting:
		return "greeting"
	case IntentFarewell:
		return "farewell"
	case IntentThanks:
		return "thanks"
	case IntentAffirmative:
		return "affirmative"
	case IntentNegative:
		return "negative"
	default:
		return "unclassified"
	}
}

var (
	greetings    = []string{"hi", "hello", "hey", "yo", "hii", "hola", "sup", "good morning", "good evening", "whats up"}
	farewells    = []string{"bye", "goodbye", "cya", "see ya", "later", "ttyl", "farewell", "exit", "clear"}
	thanks       = []string{"thanks", "thank you", "thx", "ty", "salamat"}
	affirmatives = []string{"yes", "yep", "yeah", "sure", "ok", "okay", "k"}
	negatives    = []string{"no", "nope", "nah", "not really", "naw"}
)

// Lexicon maps whole-message phrases to intents. Matching is exact string
// equality against the normalized message, never per token.
type Lexicon struct {
	phrases map[string]Intent
}

// DefaultLexicon returns the built-in phrase sets.
func DefaultLexicon() *Lexicon {
	l := &Lexicon{phrases: make(map[string]Intent)}
	l.add(IntentGreeting, greetings)
	l.add(IntentFarewell, farewells)
	l.add(IntentThanks, thanks)
	l.add(IntentAffirmative, affirmatives)
	l.add(IntentNegative, negatives)
	return l
}

func (l *Lexicon) add(intent Intent, words []string) {
	for _, w := range words {
		if _, exists := l.phrases[w]; !exists {
			l.phrases[w] = intent
		}
	}
}

// Classify returns the intent of an already normalized message.
func (l *Lexicon) Classify(normalized string) Intent {
	if intent, ok := l.phrases[normalized]; ok {
		return intent
	}
	return IntentUnclassified
}
