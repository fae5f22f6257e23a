// Package audit records registration lifecycle events.
//
// Compliance events (accounts created, applications submitted) are written
// synchronously and fail closed: if the write fails the caller must fail its
// operation. Security and operations events are best effort and only logged
// when they cannot be stored.
package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"signup/pkg/requestcontext"
)

// EventCategory classifies events by retention and routing needs.
type EventCategory string

const (
	CategoryCompliance EventCategory = "compliance"
	CategorySecurity   EventCategory = "security"
	CategoryOperations EventCategory = "operations"
)

type Action string

const (
	ActionAccountRegistered     Action = "account_registered"
	ActionRegistrationSubmitted Action = "registration_submitted"
	ActionLoginFailed           Action = "login_failed"
	ActionSessionCreated        Action = "session_created"
	ActionStepSaved             Action = "step_saved"
)

var actionCategories = map[Action]EventCategory{
	ActionAccountRegistered:     CategoryCompliance,
	ActionRegistrationSubmitted: CategoryCompliance,
	ActionLoginFailed:           CategorySecurity,
	ActionSessionCreated:        CategoryOperations,
	ActionStepSaved:             CategoryOperations,
}

// Category returns the category of the action. Unknown actions are
// operations events.
func (a Action) Category() EventCategory {
	if cat, ok := actionCategories[a]; ok {
		return cat
	}
	return CategoryOperations
}

// Event is one audited action. Subject is the account email. Never put
// passwords, SSNs or codes in any field.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	Subject   string
	Action    Action
	Step      int
	Reference string
	Reason    string
	RequestID string
}

// Store persists events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Publisher stamps events and writes them to a Store.
type Publisher struct {
	store  Store
	logger *slog.Logger
}

type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) { p.logger = logger }
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit fills in the category, timestamp and request id, then stores the
// event. Only compliance events return a storage error.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Action == "" {
		return errors.New("audit event requires an action")
	}
	event.Category = event.Action.Category()
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}

	err := p.store.Append(ctx, event)
	if err == nil {
		return nil
	}
	if event.Category == CategoryCompliance {
		p.logger.ErrorContext(ctx, "compliance audit failed",
			"action", string(event.Action),
			"error", err,
		)
		return fmt.Errorf("compliance audit persistence failed: %w", err)
	}
	p.logger.WarnContext(ctx, "audit event dropped",
		"action", string(event.Action),
		"category", string(event.Category),
		"error", err,
	)
	return nil
}
