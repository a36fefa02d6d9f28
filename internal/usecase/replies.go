package usecase

import "fmt"

const (
	ReplyEmptyMessage   = "Please send a message."
	ReplyGreeting       = "Hello! How can I help you today?"
	ReplyConfirmClose   = "Do you want to close the chat?"
	ReplyClosing        = "Okay, closing chat now. Feel free to start a new conversation anytime!"
	ReplyResume         = "Alright, how else can I help you?"
	ReplyYesOrNo        = "Please say yes or no."
	ReplyFallback       = "I am not sure about that yet. Try asking about accounts, support, settings, or help."
	suggestionReplyForm = "Did you mean: %s?"
)

// Outcome classifies how a reply was produced.
type Outcome string

const (
	OutcomeEmpty           Outcome = "empty"
	OutcomeGreeting        Outcome = "greeting"
	OutcomeClosePrompt     Outcome = "close_prompt"
	OutcomeClosed          Outcome = "closed"
	OutcomeResumed         Outcome = "resumed"
	OutcomeConfirmReprompt Outcome = "confirm_reprompt"
	OutcomeDirect          Outcome = "direct"
	OutcomeOneWord         Outcome = "one_word"
	OutcomeSuggestion      Outcome = "suggestion"
	OutcomeFallback        Outcome = "fallback"
)

func suggestionReply(question string) string {
	return fmt.Sprintf(suggestionReplyForm, question)
}
