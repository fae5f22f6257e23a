// Package draft keeps the client-side copy of an in-progress registration:
// the current step, the form data collected so far and when it was last
// saved. It persists through an injected kv.Store and never touches the
// network.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"signup/internal/registration/models"
	"signup/pkg/platform/kv"
	"signup/pkg/platform/sentinel"
	"signup/pkg/requestcontext"
)

// Durable cache keys.
const (
	KeyRegistrationSession = "registration_session"
	KeySessionID           = "session_id"
	KeyAuthToken           = "auth_token"
	KeyLastLoginEmail      = "last_login_email"
)

type snapshot struct {
	CurrentStep models.Step              `json:"currentStep"`
	FormData    models.RegistrationDraft `json:"formData"`
	LastSavedAt *time.Time               `json:"lastSavedAt,omitempty"`
}

// Store is the draft state store. Safe for concurrent use, although the
// wizard drives it from a single goroutine.
type Store struct {
	kv     kv.Store
	logger *slog.Logger

	mu   sync.Mutex
	step models.Step
	data models.RegistrationDraft
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

func New(store kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:     store,
		logger: slog.Default(),
		step:   models.FirstStep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) CurrentStep() models.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// FormData returns a deep copy of the collected data.
func (s *Store) FormData() models.RegistrationDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// UpdateFormData replaces one section. It does not persist.
func (s *Store) UpdateFormData(section models.Section) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Set(section)
}

// SetStep moves the pointer and saves. A failed save is logged and dropped;
// the in-memory state stays authoritative for this run.
func (s *Store) SetStep(ctx context.Context, step models.Step) {
	s.mu.Lock()
	s.step = step.Clamp()
	s.mu.Unlock()

	if err := s.Save(ctx); err != nil {
		s.logger.WarnContext(ctx, "failed to save registration draft",
			"step", int(step),
			"error", err,
		)
	}
}

// Save writes the current step and sanitized form data with a fresh
// lastSavedAt. Local only.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	now := requestcontext.Now(ctx).UTC()
	snap := snapshot{
		CurrentStep: s.step,
		FormData:    s.data.Sanitized(),
		LastSavedAt: &now,
	}
	s.mu.Unlock()

	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.kv.Set(ctx, KeyRegistrationSession, string(b)); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Load restores the saved draft. Missing or unreadable snapshots leave the
// defaults in place. Snapshots written before passwords were stripped are
// sanitized and written back.
func (s *Store) Load(ctx context.Context) {
	raw, err := s.kv.Get(ctx, KeyRegistrationSession)
	if errors.Is(err, sentinel.ErrNotFound) {
		return
	}
	if err != nil {
		s.logger.WarnContext(ctx, "failed to read registration draft", "error", err)
		return
	}

	var snap snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		s.logger.WarnContext(ctx, "discarding unreadable registration draft", "error", err)
		return
	}

	hadSecrets := snap.FormData.AccountCreation != nil &&
		(snap.FormData.AccountCreation.Password != "" || snap.FormData.AccountCreation.ConfirmPassword != "")

	s.mu.Lock()
	if snap.CurrentStep.IsValid() {
		s.step = snap.CurrentStep
	}
	s.data = snap.FormData.Sanitized()
	s.mu.Unlock()

	if !hadSecrets {
		return
	}
	snap.FormData = snap.FormData.Sanitized()
	b, err := json.Marshal(snap)
	if err == nil {
		err = s.kv.Set(ctx, KeyRegistrationSession, string(b))
	}
	if err != nil {
		s.logger.WarnContext(ctx, "failed to rewrite sanitized registration draft", "error", err)
	}
}

// Clear removes the saved draft and resets to step 1 with no data.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.step = models.FirstStep
	s.data = models.RegistrationDraft{}
	s.mu.Unlock()

	if err := s.kv.Remove(ctx, KeyRegistrationSession); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}

// LastSaved returns the stored save time, or nil when nothing was saved.
func (s *Store) LastSaved(ctx context.Context) *time.Time {
	raw, err := s.kv.Get(ctx, KeyRegistrationSession)
	if err != nil {
		return nil
	}
	var snap snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil
	}
	return snap.LastSavedAt
}
