package usecase

import (
	"strings"

	"faq-bot/internal/domain"
	"faq-bot/internal/matcher"
)

// turn is the decision for one message: the reply and the state that follows.
// end means the conversation record is removed.
type turn struct {
	reply    string
	outcome  Outcome
	awaiting bool
	end      bool
}

func (s *ChatService) step(conv domain.Conversation, msg string) turn {
	intent := s.lexicon.Classify(msg)

	if conv.AwaitingCloseConfirm {
		switch intent {
		case matcher.IntentAffirmative:
			return turn{reply: ReplyClosing, outcome: OutcomeClosed, end: true}
		case matcher.IntentNegative:
			return turn{reply: ReplyResume, outcome: OutcomeResumed}
		default:
			return turn{reply: ReplyYesOrNo, outcome: OutcomeConfirmReprompt, awaiting: true}
		}
	}

	switch intent {
	case matcher.IntentGreeting:
		return turn{reply: ReplyGreeting, outcome: OutcomeGreeting}
	case matcher.IntentFarewell, matcher.IntentThanks:
		return turn{reply: ReplyConfirmClose, outcome: OutcomeClosePrompt, awaiting: true}
	}

	return answer(s.matcher.Load().Match(msg))
}

func answer(res matcher.Result) turn {
	switch res.Kind {
	case matcher.DirectAnswer:
		if strings.TrimSpace(res.FAQ.Answer) == "" {
			break
		}
		outcome := OutcomeDirect
		if res.Stage == matcher.StageOneWord {
			outcome = OutcomeOneWord
		}
		return turn{reply: res.FAQ.Answer, outcome: outcome}
	case matcher.Suggestion:
		return turn{reply: suggestionReply(res.FAQ.Question), outcome: OutcomeSuggestion}
	}
	return turn{reply: ReplyFallback, outcome: OutcomeFallback}
}
