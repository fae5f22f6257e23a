// Package client is the typed boundary to the registration progress API.
// Every failure comes back as a *RemoteError so callers never inspect
// message text to decide what happened.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"signup/internal/registration/metrics"
	"signup/internal/registration/models"
)

const (
	DefaultBaseURL = "http://localhost:5000"
	DefaultTimeout = 15 * time.Second

	// SessionHeader carries the draft session id.
	SessionHeader = "X-Session-Id"

	maxErrorBody = 64 << 10
)

// Operation names, used for spans and metrics.
const (
	OpRegister                  = "register"
	OpLogin                     = "login"
	OpFetchProgress             = "fetch_progress"
	OpFetchDocuments            = "fetch_documents"
	OpSavePersonalInfo          = "save_personal_info"
	OpSaveKYCIdentity           = "save_kyc_identity"
	OpSaveEmploymentFinancial   = "save_employment_financial"
	OpSaveIRAType               = "save_ira_type"
	OpSaveBeneficiaries         = "save_beneficiaries"
	OpSaveFundingMethod         = "save_funding_method"
	OpSaveInvestmentPreferences = "save_investment_preferences"
	OpSaveAgreements            = "save_agreements"
	OpSubmitFinal               = "submit_final"
)

// Client talks to the progress API over HTTP/JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each call. Zero disables the per-call bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithTracer(t trace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// New builds a Client for baseURL. See NormalizeBaseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    NormalizeBaseURL(baseURL),
		httpClient: http.DefaultClient,
		timeout:    DefaultTimeout,
		logger:     slog.Default(),
		tracer:     otel.Tracer("signup/registration/client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NormalizeBaseURL trims whitespace and trailing slashes and appends "/api"
// unless already present. Empty input yields the local default.
func NormalizeBaseURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		u = DefaultBaseURL
	}
	u = strings.TrimRight(u, "/")
	if strings.HasSuffix(u, "/api") {
		return u
	}
	return u + "/api"
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string { return c.baseURL }

// Register creates an account and returns the new draft session id.
func (c *Client) Register(ctx context.Context, email, password string) (string, error) {
	var out models.RegisterResult
	err := c.do(ctx, OpRegister, http.MethodPost, "/auth/register", "", models.Credentials{Email: email, Password: password}, &out)
	if err != nil {
		return "", err
	}
	if out.SessionID == "" {
		return "", &RemoteError{Kind: KindTransient, Status: http.StatusOK, Message: "Failed to create account. Please try again."}
	}
	return out.SessionID, nil
}

// Login exchanges credentials for a session. Status 401 or 403 yields
// ErrInvalidCredentials with a fixed user message.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	var out models.LoginResult
	err := c.do(ctx, OpLogin, http.MethodPost, "/auth/login", "", models.Credentials{Email: email, Password: password}, &out)
	if err != nil {
		var re *RemoteError
		if errors.As(err, &re) && (re.Status == http.StatusUnauthorized || re.Status == http.StatusForbidden) {
			return nil, &RemoteError{
				Kind:    KindValidation,
				Status:  re.Status,
				Message: InvalidCredentialsMessage,
				Err:     ErrInvalidCredentials,
			}
		}
		if errors.As(err, &re) && re.Status != 0 && strings.HasPrefix(re.Message, "API Error:") {
			re.Message = fmt.Sprintf("Login failed: %d", re.Status)
		}
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchProgress(ctx context.Context, sessionID string) (*models.Progress, error) {
	var out models.Progress
	if err := c.do(ctx, OpFetchProgress, http.MethodGet, "/registration/progress", sessionID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchDocuments(ctx context.Context, sessionID string) ([]models.Document, error) {
	var out []models.Document
	if err := c.do(ctx, OpFetchDocuments, http.MethodGet, "/registration/documents", sessionID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SavePersonalInfo posts identity and address as one flattened body.
func (c *Client) SavePersonalInfo(ctx context.Context, sessionID string, details models.PersonalDetails) error {
	return c.do(ctx, OpSavePersonalInfo, http.MethodPost, "/registration/personal-info", sessionID, details.Flatten(), nil)
}

func (c *Client) SaveKYCIdentity(ctx context.Context, sessionID string, data models.KYCIdentity) error {
	return c.do(ctx, OpSaveKYCIdentity, http.MethodPost, "/registration/kyc-identity", sessionID, data, nil)
}

func (c *Client) SaveEmploymentFinancial(ctx context.Context, sessionID string, data models.EmploymentFinancial) error {
	return c.do(ctx, OpSaveEmploymentFinancial, http.MethodPost, "/registration/employment", sessionID, data, nil)
}

func (c *Client) SaveIRAType(ctx context.Context, sessionID string, data models.IRAType) error {
	return c.do(ctx, OpSaveIRAType, http.MethodPost, "/registration/ira-type", sessionID, data, nil)
}

func (c *Client) SaveBeneficiaries(ctx context.Context, sessionID string, data models.Beneficiaries) error {
	return c.do(ctx, OpSaveBeneficiaries, http.MethodPost, "/registration/beneficiaries", sessionID, data, nil)
}

func (c *Client) SaveFundingMethod(ctx context.Context, sessionID string, data models.FundingMethodData) error {
	return c.do(ctx, OpSaveFundingMethod, http.MethodPost, "/registration/funding", sessionID, data, nil)
}

func (c *Client) SaveInvestmentPreferences(ctx context.Context, sessionID string, data models.InvestmentPreferences) error {
	return c.do(ctx, OpSaveInvestmentPreferences, http.MethodPost, "/registration/investments", sessionID, data, nil)
}

func (c *Client) SaveAgreements(ctx context.Context, sessionID string, data models.Agreements) error {
	return c.do(ctx, OpSaveAgreements, http.MethodPost, "/registration/agreements", sessionID, data, nil)
}

// SubmitFinalRegistration sends the security choice and completes the draft.
func (c *Client) SubmitFinalRegistration(ctx context.Context, sessionID string, sub models.SecuritySubmission) (*models.RegistrationResponse, error) {
	var out models.RegistrationResponse
	if err := c.do(ctx, OpSubmitFinal, http.MethodPost, "/registration/security-2fa", sessionID, sub, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, op, method, path, sessionID string, body, out any) (err error) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "registration."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.route", path),
		),
	)
	defer func() {
		if c.metrics != nil {
			c.metrics.ObserveRemoteCall(op, start)
		}
		if err != nil {
			kind := string(KindOf(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, kind)
			if c.metrics != nil {
				c.metrics.IncrementRemoteFailure(op, kind)
			}
			c.logger.WarnContext(ctx, "progress api call failed",
				"operation", op,
				"kind", kind,
				"error", err,
			)
		}
		span.End()
	}()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		b, mErr := json.Marshal(body)
		if mErr != nil {
			return &RemoteError{Kind: KindValidation, Message: "Unable to encode request.", Err: mErr}
		}
		reader = bytes.NewReader(b)
	}

	req, rErr := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if rErr != nil {
		return &RemoteError{Kind: KindTransient, Message: "Unable to build request.", Err: rErr}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}

	resp, dErr := c.httpClient.Do(req)
	if dErr != nil {
		return transportError(dErr)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RemoteError{Kind: KindTransient, Status: resp.StatusCode, Message: "Unexpected response from server.", Err: err}
	}
	return nil
}

func transportError(err error) *RemoteError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &RemoteError{Kind: KindTransient, Message: "Request timed out. Please try again.", Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &RemoteError{Kind: KindTransient, Message: "Request cancelled.", Err: err}
	}
	return &RemoteError{Kind: KindTransient, Message: "Unable to reach the server. Please check your connection and try again.", Err: err}
}

type apiError struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// responseError builds a RemoteError from a non-2xx response. The message is
// the field-level messages joined by spaces, else the server message, else
// "API Error: <status> <status text>".
func responseError(resp *http.Response) *RemoteError {
	re := &RemoteError{Status: resp.StatusCode}

	var body apiError
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if len(raw) > 0 && json.Unmarshal(raw, &body) == nil {
		re.Fields = body.Errors
		re.Message = flattenFieldErrors(body.Errors)
		if re.Message == "" {
			re.Message = body.Message
		}
	}
	if re.Message == "" {
		re.Message = fmt.Sprintf("API Error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized,
		mentionsSessionExpired(string(raw)),
		mentionsSessionExpired(re.Message):
		re.Kind = KindUnauthorized
	case resp.StatusCode == http.StatusBadRequest, resp.StatusCode == http.StatusUnprocessableEntity:
		re.Kind = KindValidation
	default:
		re.Kind = KindTransient
	}
	re.Err = fmt.Errorf("http status %d", resp.StatusCode)
	return re
}

func flattenFieldErrors(fields map[string][]string) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var msgs []string
	for _, k := range keys {
		msgs = append(msgs, fields[k]...)
	}
	return strings.Join(msgs, " ")
}
