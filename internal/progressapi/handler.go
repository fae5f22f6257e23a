package progressapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"signup/internal/platform/metrics"
	"signup/internal/platform/middleware"
	"signup/internal/registration/models"
	"signup/pkg/platform/httputil"
	"signup/pkg/platform/middleware/requesttime"
	"signup/pkg/requestcontext"
)

// SessionHeader carries the draft session id.
const SessionHeader = "X-Session-Id"

const requestTimeout = 30 * time.Second

type sessionKey struct{}

// Handler serves the progress API under /api.
type Handler struct {
	svc     *Service
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type HandlerOption func(*Handler)

// WithClock replaces the wall clock used to stamp requests.
func WithClock(now func() time.Time) HandlerOption {
	return func(h *Handler) { h.now = now }
}

func NewHandler(svc *Service, logger *slog.Logger, m *metrics.Metrics, opts ...HandlerOption) *Handler {
	h := &Handler{
		svc:     svc,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the API routes on r.
func (h *Handler) Register(r chi.Router) {
	api := chi.NewRouter()
	api.Use(middleware.Recovery(h.logger))
	api.Use(middleware.RequestID)
	api.Use(requesttime.MiddlewareWithClock(h.now))
	api.Use(middleware.Logger(h.logger))
	api.Use(chimw.Timeout(requestTimeout))
	api.Use(middleware.Latency(h.metrics))

	api.Post("/auth/register", h.handleRegister)
	api.Post("/auth/login", h.handleLogin)

	api.Route("/registration", func(reg chi.Router) {
		reg.Use(h.requireSession)
		reg.Get("/progress", h.handleProgress)
		reg.Get("/documents", h.handleDocuments)
		reg.Post("/personal-info", saveStep(h, func(req models.PersonalInfoRequest) models.StepPayload {
			return models.PersonalDetailsPayload{PersonalDetails: req.Split().WithDefaults()}
		}))
		reg.Post("/kyc-identity", saveStep(h, func(v models.KYCIdentity) models.StepPayload {
			return models.KYCIdentityPayload{KYCIdentity: v}
		}))
		reg.Post("/employment", saveStep(h, func(v models.EmploymentFinancial) models.StepPayload {
			return models.EmploymentFinancialPayload{EmploymentFinancial: v}
		}))
		reg.Post("/ira-type", saveStep(h, func(v models.IRAType) models.StepPayload {
			return models.IRATypePayload{IRAType: v}
		}))
		reg.Post("/beneficiaries", saveStep(h, func(v models.Beneficiaries) models.StepPayload {
			return models.BeneficiariesPayload{Beneficiaries: v}
		}))
		reg.Post("/funding", saveStep(h, func(v models.FundingMethodData) models.StepPayload {
			return models.FundingMethodPayload{FundingMethodData: v}
		}))
		reg.Post("/investments", saveStep(h, func(v models.InvestmentPreferences) models.StepPayload {
			return models.InvestmentPreferencesPayload{InvestmentPreferences: v}
		}))
		reg.Post("/agreements", saveStep(h, func(v models.Agreements) models.StepPayload {
			return models.AgreementsPayload{Agreements: v}
		}))
		reg.Post("/security-2fa", h.handleSubmit)
	})

	r.Mount("/api", api)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var creds models.Credentials
	if err := httputil.DecodeJSON(r, &creds); err != nil {
		httputil.WriteError(w, err)
		return
	}
	res, err := h.svc.Register(ctx, creds)
	if err != nil {
		h.logFailure(ctx, "register failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, res)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var creds models.Credentials
	if err := httputil.DecodeJSON(r, &creds); err != nil {
		httputil.WriteError(w, err)
		return
	}
	res, err := h.svc.Login(ctx, creds)
	if err != nil {
		h.logFailure(ctx, "login failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	progress, err := h.svc.Progress(ctx, sessionFrom(ctx))
	if err != nil {
		h.logFailure(ctx, "progress lookup failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, progress)
}

func (h *Handler) handleDocuments(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.svc.Documents())
}

// saveStep decodes a body of type T, converts it to its step payload and
// saves it.
func saveStep[T any](h *Handler, toPayload func(T) models.StepPayload) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var body T
		if err := httputil.DecodeJSON(r, &body); err != nil {
			h.logFailure(ctx, "invalid step body", err)
			httputil.WriteError(w, err)
			return
		}
		payload := toPayload(body)
		if err := h.svc.SaveStep(ctx, sessionFrom(ctx), payload); err != nil {
			h.logFailure(ctx, "step save failed", err, "step", int(payload.Step()))
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var sub models.SecuritySubmission
	if err := httputil.DecodeJSON(r, &sub); err != nil {
		httputil.WriteError(w, err)
		return
	}
	res, err := h.svc.Submit(ctx, sessionFrom(ctx), sub)
	if err != nil {
		h.logFailure(ctx, "final submission failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// requireSession resolves the X-Session-Id header, or a bearer token issued
// at login, to a live session.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var (
			session *Session
			err     error
		)
		if id := r.Header.Get(SessionHeader); id != "" {
			session, err = h.svc.Authenticate(ctx, id)
		} else if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
			session, err = h.svc.AuthenticateToken(ctx, token)
		} else {
			err = ErrSessionExpired
		}
		if err != nil {
			h.logFailure(ctx, "session rejected", err)
			httputil.WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, sessionKey{}, session)))
	})
}

func sessionFrom(ctx context.Context) *Session {
	session, _ := ctx.Value(sessionKey{}).(*Session)
	return session
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error, attrs ...any) {
	attrs = append(attrs,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	h.logger.WarnContext(ctx, msg, attrs...)
}
