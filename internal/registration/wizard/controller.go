// Package wizard drives the ten-step registration: it validates each step,
// merges it into the local draft, persists it remotely and advances. It also
// resumes a draft from the server and recovers when the server-side session
// disappears.
package wizard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"signup/internal/registration/draft"
	"signup/internal/registration/metrics"
	"signup/internal/registration/models"
	dErrors "signup/pkg/domain-errors"
)

// SessionClient is the remote progress API.
type SessionClient interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (*models.LoginResult, error)
	FetchProgress(ctx context.Context, sessionID string) (*models.Progress, error)
	FetchDocuments(ctx context.Context, sessionID string) ([]models.Document, error)
	SavePersonalInfo(ctx context.Context, sessionID string, details models.PersonalDetails) error
	SaveKYCIdentity(ctx context.Context, sessionID string, data models.KYCIdentity) error
	SaveEmploymentFinancial(ctx context.Context, sessionID string, data models.EmploymentFinancial) error
	SaveIRAType(ctx context.Context, sessionID string, data models.IRAType) error
	SaveBeneficiaries(ctx context.Context, sessionID string, data models.Beneficiaries) error
	SaveFundingMethod(ctx context.Context, sessionID string, data models.FundingMethodData) error
	SaveInvestmentPreferences(ctx context.Context, sessionID string, data models.InvestmentPreferences) error
	SaveAgreements(ctx context.Context, sessionID string, data models.Agreements) error
	SubmitFinalRegistration(ctx context.Context, sessionID string, sub models.SecuritySubmission) (*models.RegistrationResponse, error)
}

// Verifier confirms the second factor for the security step.
type Verifier interface {
	SendCode(ctx context.Context, phone string) error
	VerifySMS(ctx context.Context, phone, code string) error
	VerifyAuthenticator(ctx context.Context, secret, code string) error
}

// Status is the lifecycle of a wizard run. Complete and SessionExpired are
// absorbing until Logout or a new Start.
type Status string

const (
	StatusInProgress     Status = "in_progress"
	StatusComplete       Status = "complete"
	StatusSessionExpired Status = "session_expired"
)

var (
	// ErrSessionExpired is returned once the server no longer knows the draft.
	// All local identifiers have been cleared by the time it is returned.
	ErrSessionExpired = dErrors.New(dErrors.CodeUnauthorized, "Your session has expired. Please start over.")
	// ErrSubmitInProgress rejects a second submission while one is running.
	ErrSubmitInProgress = dErrors.New(dErrors.CodeConflict, "A submission is already in progress.")
)

// State is a snapshot of the wizard for display.
type State struct {
	Step        models.Step
	Status      Status
	LastSavedAt *time.Time
	Response    *models.RegistrationResponse
}

// Controller is the registration state machine. One controller serves one
// user; it is safe to call from several goroutines but submissions are
// serialized.
type Controller struct {
	client   SessionClient
	draft    *draft.Store
	identity *draft.Identity
	verifier Verifier
	logger   *slog.Logger
	metrics  *metrics.Metrics

	submitting atomic.Bool

	mu        sync.Mutex
	status    Status
	sessionID string
	documents []models.Document
	verified  map[models.TwoFAMethod]bool
	response  *models.RegistrationResponse
}

// Option configures a Controller.
type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// WithVerifier enables SMS and authenticator confirmation in step 10.
// Without one only the email method can complete.
func WithVerifier(v Verifier) Option {
	return func(c *Controller) { c.verifier = v }
}

func New(client SessionClient, store *draft.Store, identity *draft.Identity, opts ...Option) (*Controller, error) {
	if client == nil {
		return nil, errors.New("session client is required")
	}
	if store == nil {
		return nil, errors.New("draft store is required")
	}
	if identity == nil {
		return nil, errors.New("session identity is required")
	}
	c := &Controller{
		client:   client,
		draft:    store,
		identity: identity,
		logger:   slog.Default(),
		status:   StatusInProgress,
		verified: make(map[models.TwoFAMethod]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// State returns the current step, status, last local save and, once
// complete, the server's response.
func (c *Controller) State(ctx context.Context) State {
	c.mu.Lock()
	st := State{Status: c.status, Response: c.response}
	c.mu.Unlock()
	st.Step = c.draft.CurrentStep()
	st.LastSavedAt = c.draft.LastSaved(ctx)
	return st
}

// Progress is how far through the ten steps the user is, 0 to 100.
func (c *Controller) Progress() float64 {
	return float64(c.draft.CurrentStep()-1) / float64(models.LastStep-1) * 100
}

// FormData returns a copy of the collected data for prefilling forms.
func (c *Controller) FormData() models.RegistrationDraft {
	return c.draft.FormData()
}

// Documents returns the disclosures loaded for the agreements step.
func (c *Controller) Documents() []models.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Document(nil), c.documents...)
}

// Agreements lists one record per loaded document, keeping acceptances
// already in the draft.
func (c *Controller) Agreements() []models.AgreementRecord {
	var existing []models.AgreementRecord
	if a := c.draft.FormData().Agreements; a != nil {
		existing = a.Agreements
	}
	return models.BuildAgreements(c.Documents(), existing)
}

// AccountDefaults prefills the account step with the last email used.
func (c *Controller) AccountDefaults(ctx context.Context) models.AccountCreation {
	out := models.AccountCreation{}
	if a := c.draft.FormData().AccountCreation; a != nil {
		out = *a
	}
	if out.Email == "" {
		email, err := c.identity.LastLoginEmail(ctx)
		if err != nil {
			c.logger.WarnContext(ctx, "failed to read last login email", "error", err)
		}
		out.Email = email
	}
	return out
}

func (c *Controller) currentSession() (string, Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID, c.status
}

// beginSubmit claims the single submission slot.
func (c *Controller) beginSubmit() error {
	if !c.submitting.CompareAndSwap(false, true) {
		return ErrSubmitInProgress
	}
	return nil
}

func (c *Controller) endSubmit() {
	c.submitting.Store(false)
}

// expire clears every local identifier and parks the wizard in
// StatusSessionExpired.
func (c *Controller) expire(ctx context.Context, reason string, cause error) error {
	c.logger.WarnContext(ctx, "registration session expired",
		"reason", reason,
		"error", cause,
	)
	if err := c.identity.Clear(ctx); err != nil {
		c.logger.ErrorContext(ctx, "failed to clear session identity", "error", err)
	}
	if err := c.draft.Clear(ctx); err != nil {
		c.logger.ErrorContext(ctx, "failed to clear registration draft", "error", err)
	}

	c.mu.Lock()
	c.status = StatusSessionExpired
	c.sessionID = ""
	c.documents = nil
	c.verified = make(map[models.TwoFAMethod]bool)
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.IncrementSessionExpired()
	}
	return ErrSessionExpired
}
