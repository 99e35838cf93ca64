// Package messaging dispatches action-tagged messages between the page layer
// and the checker.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dtnitsch/clickbait-detector/models"
)

// ErrUnknownAction is returned for messages no handler is registered for.
var ErrUnknownAction = errors.New("unknown action")

// ErrBadMessage is returned when a message lacks a field its action needs.
var ErrBadMessage = errors.New("bad message")

// Handler answers one message. Check failures are reported inside the
// Response; a returned error means the message itself was invalid.
type Handler func(ctx context.Context, msg models.Message) (models.Response, error)

type Router struct {
	mu       sync.RWMutex
	handlers map[models.Action]Handler
	logger   *slog.Logger
}

func NewRouter(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		handlers: make(map[models.Action]Handler),
		logger:   logger,
	}
}

// Handle registers h for action, replacing any previous handler.
func (r *Router) Handle(action models.Action, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[action] = h
}

// Actions lists the registered actions.
func (r *Router) Actions() []models.Action {
	r.mu.RLock()
	defer r.mu.RUnlock()

	actions := make([]models.Action, 0, len(r.handlers))
	for a := range r.handlers {
		actions = append(actions, a)
	}
	return actions
}

func (r *Router) Dispatch(ctx context.Context, msg models.Message) (models.Response, error) {
	r.mu.RLock()
	h, ok := r.handlers[msg.Action]
	r.mu.RUnlock()

	if !ok {
		return models.Response{}, fmt.Errorf("%w: %q", ErrUnknownAction, msg.Action)
	}

	r.logger.Debug("Dispatching message", "action", msg.Action)
	resp, err := h(ctx, msg)
	if err != nil {
		return models.Response{}, err
	}
	if resp.Action == "" {
		resp.Action = msg.Action
	}
	return resp, nil
}
