// Package input implements the key-routing engine: named modal contexts
// carrying prioritized handlers, stacked so the most recently pushed context
// sees a key first, with an optional hard floor that keeps keys from reaching
// lower contexts at all.
package input

import (
	"sort"

	"arbor/internal/errors"
	"arbor/pkg/types"
)

// Handler is a prioritized unit of key-consumption logic. Higher priority is
// evaluated first. CanReceiveInput gates the handler without unregistering it;
// a nil predicate means always eligible.
type Handler struct {
	ID              string
	Priority        int
	CanReceiveInput func() bool
	Handle          func(types.KeyEvent) bool // reports whether the key was consumed
}

// Context is a named modal scope of handlers. When BlocksLowerPriority is
// set, dispatch never proceeds past this context to ones lower in the stack,
// whether or not any of its handlers consumed the key. IsActive, when
// non-nil, can temporarily skip the context without blocking the scan.
type Context struct {
	ID                  string
	BlocksLowerPriority bool
	IsActive            func() bool

	handlers []Handler // sorted by descending priority
}

// Router resolves each incoming key event to at most one consuming handler.
type Router struct {
	contexts map[string]*Context
	stack    []string // top = last element
	global   []Handler
}

// NewRouter returns a router with no contexts registered.
func NewRouter() *Router {
	return &Router{contexts: make(map[string]*Context)}
}

// RegisterContext makes a context known to the router. Registering an ID
// again replaces the prior definition but keeps its handlers.
func (r *Router) RegisterContext(ctx Context) {
	if prev, ok := r.contexts[ctx.ID]; ok {
		ctx.handlers = prev.handlers
	}
	c := ctx
	r.contexts[ctx.ID] = &c
}

// RegisterHandler adds a handler to a context. Registering against an unknown
// context is a wiring bug and fails loudly. A handler whose ID already exists
// in the context replaces it; ordering is recomputed by priority either way.
func (r *Router) RegisterHandler(contextID string, h Handler) error {
	ctx, ok := r.contexts[contextID]
	if !ok {
		return errors.NewRouterError("register handler against unknown input context", contextID, errors.UnknownContext)
	}
	ctx.handlers = upsertHandler(ctx.handlers, h)
	return nil
}

// RegisterGlobalHandler adds a context-independent handler, evaluated before
// any context on every dispatch.
func (r *Router) RegisterGlobalHandler(h Handler) {
	r.global = upsertHandler(r.global, h)
}

// Push puts a context on top of the stack. Pushing an ID already present
// promotes it to the top rather than duplicating it. Pushing an unregistered
// ID fails loudly.
func (r *Router) Push(contextID string) error {
	if _, ok := r.contexts[contextID]; !ok {
		return errors.NewRouterError("push of unknown input context", contextID, errors.UnknownContext)
	}
	r.remove(contextID)
	r.stack = append(r.stack, contextID)
	return nil
}

// Pop removes a context from the stack wherever it sits. Unknown or absent
// IDs are ignored; the stack is already in the desired state.
func (r *Router) Pop(contextID string) {
	r.remove(contextID)
}

// Current returns the ID of the top-of-stack context, or "" when empty.
func (r *Router) Current() string {
	if len(r.stack) == 0 {
		return ""
	}
	return r.stack[len(r.stack)-1]
}

// Stack returns the context IDs bottom to top.
func (r *Router) Stack() []string {
	out := make([]string, len(r.stack))
	copy(out, r.stack)
	return out
}

// Dispatch routes one key event. Global handlers run first in descending
// priority; then contexts are scanned from the top of the stack down. The
// first handler that consumes the key ends dispatch. A context whose IsActive
// predicate returns false is skipped without stopping the scan, but a
// blocking context is a hard floor regardless of consumption.
func (r *Router) Dispatch(key types.KeyEvent) bool {
	if runHandlers(r.global, key) {
		return true
	}
	for i := len(r.stack) - 1; i >= 0; i-- {
		ctx := r.contexts[r.stack[i]]
		if ctx == nil {
			continue
		}
		if ctx.IsActive != nil && !ctx.IsActive() {
			continue
		}
		if runHandlers(ctx.handlers, key) {
			return true
		}
		if ctx.BlocksLowerPriority {
			return false
		}
	}
	return false
}

func runHandlers(handlers []Handler, key types.KeyEvent) bool {
	for _, h := range handlers {
		if h.Handle == nil {
			continue
		}
		if h.CanReceiveInput != nil && !h.CanReceiveInput() {
			continue
		}
		if h.Handle(key) {
			return true
		}
	}
	return false
}

// upsertHandler replaces any handler with the same ID, then restores the
// descending-priority order. The sort is stable so equal priorities keep
// registration order.
func upsertHandler(handlers []Handler, h Handler) []Handler {
	replaced := false
	for i := range handlers {
		if handlers[i].ID == h.ID {
			handlers[i] = h
			replaced = true
			break
		}
	}
	if !replaced {
		handlers = append(handlers, h)
	}
	sort.SliceStable(handlers, func(i, j int) bool {
		return handlers[i].Priority > handlers[j].Priority
	})
	return handlers
}

func (r *Router) remove(contextID string) {
	for i, id := range r.stack {
		if id == contextID {
			r.stack = append(r.stack[:i], r.stack[i+1:]...)
			return
		}
	}
}
