package usecase

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"faq-bot/internal/domain"
	"faq-bot/internal/matcher"
)

// StateStore persists per-conversation state. Implementations need not
// serialize access per key; ChatService does that itself.
type StateStore interface {
	Get(ctx context.Context, conversationID string) (domain.Conversation, bool, error)
	Save(ctx context.Context, conv domain.Conversation) error
	Delete(ctx context.Context, conversationID string) error
}

// OutcomeRecorder receives the outcome of every reply.
type OutcomeRecorder interface {
	RecordOutcome(outcome string)
}

type ChatInput struct {
	Message        string
	ConversationID string
}

type ChatOutput struct {
	Response       string
	ConversationID string
	Outcome        Outcome
}

// ChatService answers messages from an FAQ catalog and tracks the
// close-confirmation state of each conversation.
type ChatService struct {
	state    StateStore
	lexicon  *matcher.Lexicon
	matcher  atomic.Pointer[matcher.Matcher]
	locks    *keyLocker
	recorder OutcomeRecorder
	now      func() time.Time
}

type Option func(*ChatService)

func WithRecorder(r OutcomeRecorder) Option {
	return func(s *ChatService) {
		s.recorder = r
	}
}

func WithLexicon(l *matcher.Lexicon) Option {
	return func(s *ChatService) {
		if l != nil {
			s.lexicon = l
		}
	}
}

func NewChatService(m *matcher.Matcher, state StateStore, opts ...Option) (*ChatService, error) {
	if m == nil {
		return nil, errors.New("usecase: matcher must not be nil")
	}
	if state == nil {
		return nil, errors.New("usecase: state store must not be nil")
	}
	s := &ChatService{
		state:   state,
		lexicon: matcher.DefaultLexicon(),
		locks:   newKeyLocker(),
		now:     time.Now,
	}
	s.matcher.Store(m)
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SwapMatcher replaces the catalog snapshot used by subsequent messages.
func (s *ChatService) SwapMatcher(m *matcher.Matcher) {
	if m != nil {
		s.matcher.Store(m)
	}
}

// Respond produces the reply for one message. A blank ConversationID starts
// a new conversation. Errors are returned only when the state store fails.
func (s *ChatService) Respond(ctx context.Context, in ChatInput) (ChatOutput, error) {
	convID := strings.TrimSpace(in.ConversationID)
	if convID == "" {
		convID = newUUID()
	}

	msg := matcher.Normalize(in.Message)
	if msg == "" {
		return s.output(convID, turn{reply: ReplyEmptyMessage, outcome: OutcomeEmpty}), nil
	}

	unlock := s.locks.Lock(convID)
	defer unlock()

	conv, found, err := s.state.Get(ctx, convID)
	if err != nil {
		return ChatOutput{}, newError(ErrorInternal, "state_read_error", err)
	}
	if !found {
		conv = domain.Conversation{ID: convID}
	}

	t := s.step(conv, msg)

	if t.end {
		if err := s.state.Delete(ctx, convID); err != nil {
			return ChatOutput{}, newError(ErrorInternal, "state_delete_error", err)
		}
		return s.output(convID, t), nil
	}

	conv.AwaitingCloseConfirm = t.awaiting
	conv.LastActivity = s.now().UTC()
	if err := s.state.Save(ctx, conv); err != nil {
		return ChatOutput{}, newError(ErrorInternal, "state_write_error", err)
	}
	return s.output(convID, t), nil
}

func (s *ChatService) output(convID string, t turn) ChatOutput {
	if s.recorder != nil {
		s.recorder.RecordOutcome(string(t.outcome))
	}
	return ChatOutput{Response: t.reply, ConversationID: convID, Outcome: t.outcome}
}

var newUUID = func() string {
	return uuid.NewString()
}
