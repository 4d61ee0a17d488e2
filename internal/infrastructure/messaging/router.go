package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/bnema/legible/internal/logging"
)

var (
	// ErrUnknownAction is returned for an envelope whose action has no handler.
	ErrUnknownAction = errors.New("unknown action")
	// ErrMalformedMessage is returned for an envelope that cannot be decoded.
	ErrMalformedMessage = errors.New("malformed message")
	// ErrInternalPage is returned when a site command targets a page that is
	// never styled, such as about:blank.
	ErrInternalPage = errors.New("internal page")
)

// MessageHandler handles one decoded envelope. The raw message includes the
// action field.
type MessageHandler interface {
	Handle(ctx context.Context, raw json.RawMessage) (any, error)
}

// MessageHandlerFunc adapts a function to the MessageHandler interface.
type MessageHandlerFunc func(ctx context.Context, raw json.RawMessage) (any, error)

// Handle calls f(ctx, raw).
func (f MessageHandlerFunc) Handle(ctx context.Context, raw json.RawMessage) (any, error) {
	return f(ctx, raw)
}

// Router dispatches action envelopes to registered handlers.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]MessageHandler
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{handlers: make(map[string]MessageHandler)}
}

// RegisterHandler registers a handler for an action.
func (r *Router) RegisterHandler(action string, handler MessageHandler) error {
	if action == "" {
		return errors.New("action cannot be empty")
	}
	if handler == nil {
		return errors.New("message handler cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[action] = handler
	return nil
}

// Actions returns the registered actions, sorted.
func (r *Router) Actions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	actions := make([]string, 0, len(r.handlers))
	for a := range r.handlers {
		actions = append(actions, a)
	}
	slices.Sort(actions)
	return actions
}

// Dispatch routes raw to the handler registered for its action.
func (r *Router) Dispatch(ctx context.Context, raw []byte) (any, error) {
	log := logging.FromContext(ctx)

	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedMessage)
	}
	action := gjson.GetBytes(raw, "action")
	if action.Type != gjson.String || action.Str == "" {
		return nil, fmt.Errorf("%w: missing action", ErrMalformedMessage)
	}

	r.mu.RLock()
	handler, ok := r.handlers[action.Str]
	r.mu.RUnlock()
	if !ok {
		log.Warn().Str("action", action.Str).Msg("no handler registered for action")
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, action.Str)
	}

	log.Debug().Str("action", action.Str).Int("payload_len", len(raw)).Msg("received message")

	resp, err := handler.Handle(ctx, raw)
	if err != nil {
		log.Debug().Err(err).Str("action", action.Str).Msg("message handler returned error")
		return nil, err
	}
	return resp, nil
}

// decode unmarshals raw into T, reporting failures as ErrMalformedMessage.
func decode[T any](raw json.RawMessage) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	return v, nil
}
