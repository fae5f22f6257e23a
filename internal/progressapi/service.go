// Package progressapi is a reference implementation of the registration
// progress API. It keeps accounts and drafts in memory and is meant for local
// development and end-to-end tests.
package progressapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	jwttoken "signup/internal/jwt_token"
	"signup/internal/platform/metrics"
	"signup/internal/registration/models"
	dErrors "signup/pkg/domain-errors"
	"signup/pkg/platform/audit"
	"signup/pkg/platform/sentinel"
	"signup/pkg/requestcontext"
	"signup/pkg/validation"
)

const (
	DefaultSessionTTL = 30 * time.Minute
	DefaultTokenTTL   = time.Hour
)

var (
	ErrSessionExpired     = dErrors.New(dErrors.CodeUnauthorized, "Session expired")
	ErrInvalidCredentials = dErrors.New(dErrors.CodeUnauthorized, "Invalid email or password")
	ErrAlreadySubmitted   = dErrors.New(dErrors.CodeInvalidState, "Registration has already been submitted")
)

// Service implements the progress API operations over a Store.
type Service struct {
	store      Store
	tokens     *jwttoken.JWTService
	tokenTTL   time.Duration
	sessionTTL time.Duration
	bcryptCost int
	documents  []models.Document
	auditor    *audit.Publisher
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTokens issues a signed token at login, valid for ttl.
func WithTokens(tokens *jwttoken.JWTService, ttl time.Duration) Option {
	return func(s *Service) {
		s.tokens = tokens
		s.tokenTTL = ttl
	}
}

// WithSessionTTL sets the idle lifetime of a session. Every authenticated
// request extends it.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) { s.sessionTTL = ttl }
}

func WithDocuments(docs []models.Document) Option {
	return func(s *Service) { s.documents = docs }
}

// WithAuditor records account, session and submission events.
func WithAuditor(p *audit.Publisher) Option {
	return func(s *Service) { s.auditor = p }
}

func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.bcryptCost = cost }
}

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	s := &Service{
		store:      store,
		tokenTTL:   DefaultTokenTTL,
		sessionTTL: DefaultSessionTTL,
		bcryptCost: bcrypt.DefaultCost,
		documents:  DefaultDocuments("/documents"),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sessionTTL <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	return s, nil
}

// Register creates the account, records step 1 as done and opens a session.
func (s *Service) Register(ctx context.Context, creds models.Credentials) (*models.RegisterResult, error) {
	now := requestcontext.Now(ctx)
	email := normalizeEmail(creds.Email)

	errs := models.FieldErrors{}
	switch {
	case email == "":
		errs.Set("email", "Email is required")
	case !validation.Email(email):
		errs.Set("email", "Invalid email format")
	}
	if res := validation.Password(creds.Password); !res.Valid {
		errs.Set("password", strings.Join(res.Violations, ", "))
	}
	if err := errs.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid registration")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.bcryptCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}
	account, err := json.Marshal(models.AccountCreation{Email: email, AcceptTerms: true})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode account")
	}

	err = s.store.CreateAccount(ctx, Account{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		Registration: Registration{
			CurrentStep: models.StepPersonalInfo,
			Data:        map[string]json.RawMessage{string(models.SectionAccountCreation): account},
		},
	})
	if errors.Is(err, sentinel.ErrConflict) {
		return nil, dErrors.Wrap(
			models.FieldErrors{"email": "An account with this email already exists"},
			dErrors.CodeValidation, "account already exists")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create account")
	}

	if err := s.audit(ctx, audit.Event{Action: audit.ActionAccountRegistered, Subject: email}); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record registration")
	}

	session, err := s.openSession(ctx, email)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "account registered",
		"session_id", session.ID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return &models.RegisterResult{SessionID: session.ID}, nil
}

// Login checks the password and opens a new session on the account's draft.
func (s *Service) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	account, err := s.store.FindAccount(ctx, creds.Email)
	if errors.Is(err, sentinel.ErrNotFound) {
		s.loginFailed(ctx, creds.Email, "unknown_account")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load account")
	}
	if bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(creds.Password)) != nil {
		s.loginFailed(ctx, account.Email, "invalid_password")
		return nil, ErrInvalidCredentials
	}

	session, err := s.openSession(ctx, account.Email)
	if err != nil {
		return nil, err
	}
	out := &models.LoginResult{
		SessionID:              session.ID,
		IsRegistrationComplete: account.Registration.Complete,
	}
	if s.tokens != nil {
		token, err := s.tokens.GenerateAccessToken(ctx, account.Email, session.ID, s.tokenTTL)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
		}
		out.Token = token
	}
	return out, nil
}

func (s *Service) openSession(ctx context.Context, email string) (*Session, error) {
	session := Session{
		ID:        uuid.NewString(),
		Email:     email,
		ExpiresAt: requestcontext.Now(ctx).Add(s.sessionTTL),
	}
	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create session")
	}
	if s.metrics != nil {
		s.metrics.IncrementSessionsCreated()
	}
	_ = s.audit(ctx, audit.Event{Action: audit.ActionSessionCreated, Subject: email})
	return &session, nil
}

func (s *Service) loginFailed(ctx context.Context, email, reason string) {
	s.logger.WarnContext(ctx, "login rejected",
		"reason", reason,
		"request_id", requestcontext.RequestID(ctx),
	)
	_ = s.audit(ctx, audit.Event{Action: audit.ActionLoginFailed, Subject: normalizeEmail(email), Reason: reason})
}

func (s *Service) audit(ctx context.Context, event audit.Event) error {
	if s.auditor == nil {
		return nil
	}
	return s.auditor.Emit(ctx, event)
}

// Authenticate resolves a session id and extends its expiry.
func (s *Service) Authenticate(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, ErrSessionExpired
	}
	now := requestcontext.Now(ctx)
	session, err := s.store.FindSession(ctx, sessionID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, s.expired()
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}
	if session.Expired(now) {
		return nil, s.expired()
	}
	session.ExpiresAt = now.Add(s.sessionTTL)
	if err := s.store.SaveSession(ctx, *session); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to refresh session")
	}
	return session, nil
}

// AuthenticateToken resolves the session named by a login token.
func (s *Service) AuthenticateToken(ctx context.Context, token string) (*Session, error) {
	if s.tokens == nil {
		return nil, ErrSessionExpired
	}
	claims, err := s.tokens.ValidateToken(ctx, token)
	if err != nil {
		return nil, s.expired()
	}
	return s.Authenticate(ctx, claims.SessionID)
}

func (s *Service) expired() error {
	if s.metrics != nil {
		s.metrics.IncrementSessionsExpired()
	}
	return ErrSessionExpired
}

func (s *Service) Progress(ctx context.Context, session *Session) (*models.Progress, error) {
	account, err := s.store.FindAccount(ctx, session.Email)
	if err != nil {
		return nil, s.accountError(err)
	}
	return account.Registration.Progress(), nil
}

func (s *Service) Documents() []models.Document {
	return append([]models.Document(nil), s.documents...)
}

// SaveStep validates payload and stores its sections. A step may be saved
// again once reached but never ahead of the current step.
func (s *Service) SaveStep(ctx context.Context, session *Session, payload models.StepPayload) error {
	now := requestcontext.Now(ctx)
	if payload.Step() == models.StepSecuritySetup {
		return dErrors.New(dErrors.CodeBadRequest, "security setup is saved by the final submission")
	}
	if err := payload.Validate(now).Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "invalid step data")
	}

	_, err := s.store.UpdateRegistration(ctx, session.Email, func(reg *Registration) error {
		if err := checkStep(reg, payload.Step()); err != nil {
			return err
		}
		if err := storeSections(reg, payload.Sections()); err != nil {
			return err
		}
		if next := payload.Step() + 1; next > reg.CurrentStep {
			reg.CurrentStep = next
		}
		return nil
	})
	if err != nil {
		return s.accountError(err)
	}
	if s.metrics != nil {
		s.metrics.IncrementStepsSaved(int(payload.Step()))
	}
	_ = s.audit(ctx, audit.Event{Action: audit.ActionStepSaved, Subject: session.Email, Step: int(payload.Step())})
	return nil
}

// Submit records the security choice and completes the registration.
func (s *Service) Submit(ctx context.Context, session *Session, sub models.SecuritySubmission) (*models.RegistrationResponse, error) {
	now := requestcontext.Now(ctx)
	setup := models.SecuritySetup{TwoFAMethod: sub.TwoFAMethod, PhoneNumberVerified: sub.PhoneNumberVerified}
	if err := setup.Validate().Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid security setup")
	}

	reg, err := s.store.UpdateRegistration(ctx, session.Email, func(reg *Registration) error {
		if err := checkStep(reg, models.StepSecuritySetup); err != nil {
			return err
		}
		if err := storeSections(reg, []models.Section{setup}); err != nil {
			return err
		}
		applicationID := newApplicationID()
		if err := s.audit(ctx, audit.Event{
			Action:    audit.ActionRegistrationSubmitted,
			Subject:   session.Email,
			Step:      int(models.StepSecuritySetup),
			Reference: applicationID,
		}); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record submission")
		}
		reg.Complete = true
		reg.ApplicationID = applicationID
		reg.SubmittedAt = &now
		return nil
	})
	if err != nil {
		return nil, s.accountError(err)
	}

	if s.metrics != nil {
		s.metrics.IncrementRegistrationsSubmitted()
	}
	s.logger.InfoContext(ctx, "registration submitted",
		"application_id", reg.ApplicationID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return &models.RegistrationResponse{
		Success:         true,
		Message:         "Your IRA application has been submitted successfully.",
		ApplicationID:   reg.ApplicationID,
		NextSteps:       "We will review your application and email you once your account is approved.",
		ReviewTimeline:  "1-2 business days",
		FundingTimeline: "5-7 business days after approval",
		ContactInfo: &models.ContactInfo{
			Email: "support@selfdirectedira.com",
			Phone: "1-800-555-0123",
		},
	}, nil
}

// PurgeExpiredSessions drops sessions that have passed their expiry.
func (s *Service) PurgeExpiredSessions(ctx context.Context) (int, error) {
	return s.store.DeleteExpiredSessions(ctx, requestcontext.Now(ctx))
}

func (s *Service) accountError(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return s.expired()
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update registration")
}

func checkStep(reg *Registration, step models.Step) error {
	if reg.Complete {
		return ErrAlreadySubmitted
	}
	if step > reg.CurrentStep {
		return dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("Step %d is not available until step %d is complete", step, reg.CurrentStep))
	}
	return nil
}

func storeSections(reg *Registration, sections []models.Section) error {
	if reg.Data == nil {
		reg.Data = make(map[string]json.RawMessage)
	}
	for _, section := range sections {
		raw, err := json.Marshal(section)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode section")
		}
		reg.Data[string(section.SectionKey())] = raw
	}
	return nil
}

func newApplicationID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "IRA-" + strings.ToUpper(id[:10])
}
