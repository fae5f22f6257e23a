// Package twofactor confirms the second factor chosen in the security step
// before the final submission.
package twofactor

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"regexp"
	"sync"
	"time"

	"signup/pkg/requestcontext"
	"signup/pkg/validation"
)

var (
	ErrVerificationExpired = errors.New("verification expired")
	ErrInvalidCode         = errors.New("invalid verification code")
	ErrMalformedCode       = errors.New("please enter a valid 6-digit code")
	ErrPhoneRequired       = errors.New("phone number is required")
	ErrInvalidPhone        = errors.New("invalid phone format")
)

const (
	DefaultTTL  = 10 * time.Minute
	codeDigits  = 6
	maxAttempts = 5
)

var codePattern = regexp.MustCompile(`^\d{6}$`)

// Sender delivers a one-time code out of band, typically by SMS.
type Sender interface {
	SendCode(ctx context.Context, phone, code string) error
}

// Checker validates a code from an authenticator app against its secret.
type Checker interface {
	CheckCode(ctx context.Context, secret, code string) (bool, error)
}

type pendingCode struct {
	code      string
	expiresAt time.Time
	attempts  int
}

// Service issues and checks verification codes. Pending codes live in memory
// and expire lazily.
type Service struct {
	sender   Sender
	checker  Checker
	logger   *slog.Logger
	ttl      time.Duration
	generate func() (string, error)

	mu      sync.Mutex
	pending map[string]*pendingCode
}

// Option configures a Service.
type Option func(*Service)

func WithTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

// WithChecker enables real authenticator verification. Without one,
// authenticator codes are only checked for shape.
func WithChecker(c Checker) Option {
	return func(s *Service) { s.checker = c }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithCodeGenerator replaces the random code source.
func WithCodeGenerator(gen func() (string, error)) Option {
	return func(s *Service) { s.generate = gen }
}

func NewService(sender Sender, opts ...Option) *Service {
	s := &Service{
		sender:   sender,
		logger:   slog.Default(),
		ttl:      DefaultTTL,
		generate: randomCode,
		pending:  make(map[string]*pendingCode),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendCode issues a fresh code for phone and hands it to the Sender. Any
// earlier pending code for the same phone is replaced.
func (s *Service) SendCode(ctx context.Context, phone string) error {
	if phone == "" {
		return ErrPhoneRequired
	}
	phone = validation.FormatPhone(phone)
	if !validation.Phone(phone) {
		return ErrInvalidPhone
	}

	code, err := s.generate()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	if err := s.sender.SendCode(ctx, phone, code); err != nil {
		return fmt.Errorf("send code: %w", err)
	}

	s.mu.Lock()
	s.pending[phone] = &pendingCode{code: code, expiresAt: requestcontext.Now(ctx).Add(s.ttl)}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "verification code sent", "phone", validation.MaskAccountNumber(phone))
	return nil
}

// VerifySMS checks code against the pending code for phone. A correct code is
// consumed. Too many wrong guesses discard the pending code.
func (s *Service) VerifySMS(ctx context.Context, phone, code string) error {
	if !codePattern.MatchString(code) {
		return ErrMalformedCode
	}
	phone = validation.FormatPhone(phone)

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[phone]
	if !ok {
		return ErrVerificationExpired
	}
	if requestcontext.Now(ctx).After(p.expiresAt) {
		delete(s.pending, phone)
		return ErrVerificationExpired
	}
	if p.code != code {
		p.attempts++
		if p.attempts >= maxAttempts {
			delete(s.pending, phone)
		}
		return ErrInvalidCode
	}
	delete(s.pending, phone)
	return nil
}

// VerifyAuthenticator checks an authenticator app code.
func (s *Service) VerifyAuthenticator(ctx context.Context, secret, code string) error {
	if !codePattern.MatchString(code) {
		return ErrMalformedCode
	}
	if s.checker == nil {
		return nil
	}
	ok, err := s.checker.CheckCode(ctx, secret, code)
	if err != nil {
		return fmt.Errorf("check authenticator code: %w", err)
	}
	if !ok {
		return ErrInvalidCode
	}
	return nil
}

func randomCode() (string, error) {
	limit := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}

// LogSender writes codes to the logger instead of delivering them. For local
// development only.
type LogSender struct {
	Logger *slog.Logger
}

func (l LogSender) SendCode(ctx context.Context, phone, code string) error {
	l.Logger.InfoContext(ctx, "development verification code", "phone", phone, "code", code)
	return nil
}
