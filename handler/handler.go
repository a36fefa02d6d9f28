package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"faq-bot/internal/usecase"
)

const (
	correlationHeader   = "X-Correlation-Id"
	defaultMaxMessage   = 500
	genericFailureReply = "The bot encountered an error."
)

// ChatResponder is the engine entry point consumed by the handler.
type ChatResponder interface {
	Respond(ctx context.Context, in usecase.ChatInput) (usecase.ChatOutput, error)
}

// StatusRecorder receives the status code of every response.
type StatusRecorder interface {
	RecordHTTPStatus(status int)
}

type chatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId"`
}

type chatResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversationId"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Handler adapts API Gateway proxy requests to the chat engine.
type Handler struct {
	uc            ChatResponder
	logger        *slog.Logger
	maxMessageLen int
	statuses      StatusRecorder
}

type Option func(*Handler)

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithMaxMessageLength caps the message length in runes. Non-positive values keep the default.
func WithMaxMessageLength(n int) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxMessageLen = n
		}
	}
}

func WithStatusRecorder(r StatusRecorder) Option {
	return func(h *Handler) {
		h.statuses = r
	}
}

func NewHandler(uc ChatResponder, opts ...Option) (*Handler, error) {
	if uc == nil {
		return nil, errors.New("handler: chat responder must not be nil")
	}
	h := &Handler{
		uc:            uc,
		logger:        slog.Default(),
		maxMessageLen: defaultMaxMessage,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Handle serves POST /chat. It never returns an error to the Lambda runtime;
// failures, including panics in the engine, become JSON error responses.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, err error) {
	corrID := correlationID(req.Headers)

	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("chat request panicked", "correlation_id", corrID, "panic", r, "stack", string(debug.Stack()))
			resp = jsonResponse(corrID, http.StatusInternalServerError, errorResponse{
				Error:   string(usecase.ErrorInternal),
				Message: genericFailureReply,
				Detail:  fmt.Sprint(r),
			})
			err = nil
		}
		if h.statuses != nil {
			h.statuses.RecordHTTPStatus(resp.StatusCode)
		}
	}()

	body := req.Body
	if req.IsBase64Encoded {
		decoded, decErr := base64.StdEncoding.DecodeString(body)
		if decErr != nil {
			return h.invalidInput(corrID, "invalid_body"), nil
		}
		body = string(decoded)
	}

	var in chatRequest
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		return h.invalidInput(corrID, "invalid_body"), nil
	}
	if utf8.RuneCountInString(in.Message) > h.maxMessageLen {
		return h.invalidInput(corrID, "message_too_long"), nil
	}

	out, err := h.uc.Respond(ctx, usecase.ChatInput{Message: in.Message, ConversationID: in.ConversationID})
	if err != nil {
		return h.failure(corrID, err), nil
	}

	h.logger.Info("chat reply",
		"correlation_id", corrID,
		"conversation_id", out.ConversationID,
		"outcome", string(out.Outcome),
	)
	return jsonResponse(corrID, http.StatusOK, chatResponse{
		Response:       out.Response,
		ConversationID: out.ConversationID,
	}), nil
}

func (h *Handler) invalidInput(corrID, reason string) events.APIGatewayProxyResponse {
	h.logger.Warn("rejected chat request", "correlation_id", corrID, "reason", reason)
	return jsonResponse(corrID, http.StatusBadRequest, errorResponse{Error: string(usecase.ErrorInvalidInput), Detail: reason})
}

func (h *Handler) failure(corrID string, err error) events.APIGatewayProxyResponse {
	var ucErr *usecase.Error
	if errors.As(err, &ucErr) && ucErr.Code == usecase.ErrorInvalidInput {
		h.logger.Warn("rejected chat request", "correlation_id", corrID, "reason", ucErr.Reason, "err", err)
		return jsonResponse(corrID, http.StatusBadRequest, errorResponse{Error: string(ucErr.Code), Detail: ucErr.Reason})
	}

	detail := "unexpected_error"
	if ucErr != nil {
		detail = ucErr.Reason
	}
	h.logger.Error("chat request failed", "correlation_id", corrID, "reason", detail, "err", err)
	return jsonResponse(corrID, http.StatusInternalServerError, errorResponse{
		Error:   string(usecase.ErrorInternal),
		Message: genericFailureReply,
		Detail:  detail,
	})
}

func jsonResponse(corrID string, status int, payload any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"INTERNAL_ERROR"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":    "application/json",
			correlationHeader: corrID,
		},
		Body: string(body),
	}
}

// correlationID returns the caller's correlation id (header names are
// matched case-insensitively) or a new one.
func correlationID(headers map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, correlationHeader) && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return uuid.NewString()
}
