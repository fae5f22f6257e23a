package progressapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	jwttoken "signup/internal/jwt_token"
	"signup/internal/platform/metrics"
	"signup/internal/registration/client"
	"signup/internal/registration/models"
	"signup/internal/registration/models/modelstest"
	"signup/pkg/platform/audit"
	"signup/pkg/platform/audit/store/memory"
	"signup/pkg/testutil"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type HandlerSuite struct {
	suite.Suite
	clock   *testClock
	metrics *metrics.Metrics
	audit   *memory.InMemoryStore
	router  chi.Router
	server  *httptest.Server
	client  *client.Client
	ctx     context.Context
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.clock = &testClock{now: modelstest.Today}
	s.ctx = context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.metrics = metrics.NewWithRegisterer(prometheus.NewRegistry())
	s.audit = memory.NewInMemoryStore()

	svc, err := New(NewInMemoryStore(),
		WithLogger(logger),
		WithMetrics(s.metrics),
		WithAuditor(audit.NewPublisher(s.audit, audit.WithLogger(logger))),
		WithTokens(jwttoken.NewJWTService("test-key", "progress-test", "signup"), time.Hour),
		WithSessionTTL(30*time.Minute),
		WithBcryptCost(bcrypt.MinCost),
		WithDocuments(DefaultDocuments("https://docs.example.com")),
	)
	s.Require().NoError(err)

	s.router = chi.NewRouter()
	NewHandler(svc, logger, s.metrics, WithClock(s.clock.Now)).Register(s.router)
	s.server = httptest.NewServer(s.router)
	s.client = client.New(s.server.URL, client.WithLogger(logger), client.WithTimeout(5*time.Second))
}

func (s *HandlerSuite) TearDownTest() {
	s.server.Close()
}

func (s *HandlerSuite) register(email string) string {
	sid, err := s.client.Register(s.ctx, email, modelstest.Password)
	s.Require().NoError(err)
	s.Require().NotEmpty(sid)
	return sid
}

func (s *HandlerSuite) save(sid string, p models.StepPayload) error {
	switch v := p.(type) {
	case models.PersonalDetailsPayload:
		return s.client.SavePersonalInfo(s.ctx, sid, v.PersonalDetails)
	case models.KYCIdentityPayload:
		return s.client.SaveKYCIdentity(s.ctx, sid, v.KYCIdentity)
	case models.EmploymentFinancialPayload:
		return s.client.SaveEmploymentFinancial(s.ctx, sid, v.EmploymentFinancial)
	case models.IRATypePayload:
		return s.client.SaveIRAType(s.ctx, sid, v.IRAType)
	case models.BeneficiariesPayload:
		return s.client.SaveBeneficiaries(s.ctx, sid, v.Beneficiaries)
	case models.FundingMethodPayload:
		return s.client.SaveFundingMethod(s.ctx, sid, v.FundingMethodData)
	case models.InvestmentPreferencesPayload:
		return s.client.SaveInvestmentPreferences(s.ctx, sid, v.InvestmentPreferences)
	case models.AgreementsPayload:
		return s.client.SaveAgreements(s.ctx, sid, v.Agreements)
	case models.SecuritySetupPayload:
		_, err := s.client.SubmitFinalRegistration(s.ctx, sid, v.Submission())
		return err
	}
	s.FailNow("unexpected payload type")
	return nil
}

// saveThrough saves every valid payload up to and including last.
func (s *HandlerSuite) saveThrough(sid string, last models.Step) {
	for _, p := range modelstest.Payloads() {
		if p.Step() > last {
			return
		}
		s.Require().NoError(s.save(sid, p), "step %d", p.Step())
	}
}

func (s *HandlerSuite) progress(sid string) *models.Progress {
	progress, err := s.client.FetchProgress(s.ctx, sid)
	s.Require().NoError(err)
	return progress
}

func (s *HandlerSuite) remoteError(err error) *client.RemoteError {
	var re *client.RemoteError
	s.Require().True(errors.As(err, &re), "expected a RemoteError, got %v", err)
	return re
}

func (s *HandlerSuite) TestRegister() {
	s.Run("creates a session positioned at step 2", func() {
		sid := s.register("new@example.com")

		progress := s.progress(sid)
		s.Equal(models.StepPersonalInfo, progress.CurrentStep)
		s.False(progress.IsComplete)

		var account models.AccountCreation
		s.Require().NoError(json.Unmarshal(progress.RegistrationData["accountCreation"], &account))
		s.Equal("new@example.com", account.Email)
		s.True(account.AcceptTerms)
		s.Empty(account.Password)
	})

	s.Run("duplicate email is reported on the email field", func() {
		s.register("taken@example.com")

		_, err := s.client.Register(s.ctx, "Taken@Example.com", modelstest.Password)
		re := s.remoteError(err)
		s.Equal(client.KindValidation, re.Kind)
		s.Equal("An account with this email already exists", re.Message)
		s.Contains(re.Fields, "email")
	})

	s.Run("weak password is rejected", func() {
		_, err := s.client.Register(s.ctx, "weak@example.com", "short")
		re := s.remoteError(err)
		s.Equal(http.StatusBadRequest, re.Status)
		s.Contains(re.Fields, "password")
	})

	s.Run("sessions created are counted", func() {
		before := promtest.ToFloat64(s.metrics.SessionsCreated)
		s.register("counted@example.com")
		s.Equal(before+1, promtest.ToFloat64(s.metrics.SessionsCreated))
	})
}

func (s *HandlerSuite) TestLogin() {
	s.Run("wrong password gets the fixed message", func() {
		s.register("login-wrong@example.com")

		_, err := s.client.Login(s.ctx, "login-wrong@example.com", "Wr0ng!pass")
		s.Require().ErrorIs(err, client.ErrInvalidCredentials)
		s.Equal(client.InvalidCredentialsMessage, s.remoteError(err).Message)
	})

	s.Run("unknown email gets the same message", func() {
		_, err := s.client.Login(s.ctx, "nobody@example.com", modelstest.Password)
		s.Require().ErrorIs(err, client.ErrInvalidCredentials)
	})

	s.Run("new session resumes the saved draft", func() {
		first := s.register("resume@example.com")
		s.saveThrough(first, models.StepKYCIdentity)

		res, err := s.client.Login(s.ctx, "resume@example.com", modelstest.Password)
		s.Require().NoError(err)
		s.NotEqual(first, res.SessionID)
		s.NotEmpty(res.Token)
		s.False(res.IsRegistrationComplete)

		progress := s.progress(res.SessionID)
		s.Equal(models.StepEmploymentFinancial, progress.CurrentStep)
		s.Contains(progress.RegistrationData, "kycIdentity")
	})

	s.Run("bearer token authenticates like the session header", func() {
		s.register("bearer@example.com")
		res, err := s.client.Login(s.ctx, "bearer@example.com", modelstest.Password)
		s.Require().NoError(err)

		req := testutil.WithBearer(testutil.NewJSONRequest(s.T(), http.MethodGet, "/api/registration/progress", nil), res.Token)
		rr := testutil.DoRequest(s.router, req)

		s.Equal(http.StatusOK, rr.Code)
		progress := testutil.UnmarshalResponse[models.Progress](s.T(), rr)
		s.Equal(models.StepPersonalInfo, progress.CurrentStep)
	})
}

func (s *HandlerSuite) TestSessions() {
	s.Run("missing session header is a 401", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/api/registration/progress", nil)
		rr := testutil.DoRequest(s.router, req)

		resp := testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
		s.Equal("Session expired", resp.Message)
	})

	s.Run("unknown session reads as expired", func() {
		_, err := s.client.FetchProgress(s.ctx, "does-not-exist")
		s.True(client.IsSessionExpired(err))
	})

	s.Run("idle session expires", func() {
		sid := s.register("idle@example.com")
		before := promtest.ToFloat64(s.metrics.SessionsExpired)

		s.clock.Advance(31 * time.Minute)
		_, err := s.client.FetchProgress(s.ctx, sid)

		s.True(client.IsSessionExpired(err))
		s.Equal(before+1, promtest.ToFloat64(s.metrics.SessionsExpired))
	})

	s.Run("activity keeps the session alive", func() {
		sid := s.register("active@example.com")

		s.clock.Advance(20 * time.Minute)
		s.progress(sid)
		s.clock.Advance(20 * time.Minute)
		s.progress(sid)
	})

	s.Run("login after expiry resumes the draft", func() {
		sid := s.register("expired-resume@example.com")
		s.saveThrough(sid, models.StepPersonalInfo)

		s.clock.Advance(2 * time.Hour)
		res, err := s.client.Login(s.ctx, "expired-resume@example.com", modelstest.Password)
		s.Require().NoError(err)

		s.Equal(models.StepKYCIdentity, s.progress(res.SessionID).CurrentStep)
	})
}

func (s *HandlerSuite) TestSaveStep() {
	s.Run("personal info is stored as two sections with defaults", func() {
		sid := s.register("personal@example.com")
		s.saveThrough(sid, models.StepPersonalInfo)

		progress := s.progress(sid)
		s.Equal(models.StepKYCIdentity, progress.CurrentStep)

		var personal models.PersonalInfo
		var address models.Address
		s.Require().NoError(json.Unmarshal(progress.RegistrationData["personalInfo"], &personal))
		s.Require().NoError(json.Unmarshal(progress.RegistrationData["address"], &address))
		s.Equal("Jane", personal.FirstName)
		s.Equal(models.CitizenshipUSCitizen, personal.Citizenship)
		s.Equal("78701", address.ZIP)
		s.Equal(models.DefaultCountry, address.Country)
	})

	s.Run("invalid data is rejected with field messages", func() {
		sid := s.register("invalid@example.com")
		bad := modelstest.Personal()
		bad.Personal.SSN = "123"

		err := s.client.SavePersonalInfo(s.ctx, sid, bad.PersonalDetails)
		re := s.remoteError(err)
		s.Equal(client.KindValidation, re.Kind)
		s.Equal("Invalid SSN format (###-##-####)", re.Message)
		s.Equal(models.StepPersonalInfo, s.progress(sid).CurrentStep)
	})

	s.Run("steps ahead of the current one are refused", func() {
		sid := s.register("ahead@example.com")

		err := s.client.SaveIRAType(s.ctx, sid, modelstest.IRAType().IRAType)
		re := s.remoteError(err)
		s.Equal(http.StatusUnprocessableEntity, re.Status)
		s.Equal("Step 5 is not available until step 2 is complete", re.Message)
		s.NotContains(s.progress(sid).RegistrationData, "iraType")
	})

	s.Run("an earlier step can be saved again", func() {
		sid := s.register("resave@example.com")
		s.saveThrough(sid, models.StepKYCIdentity)

		edited := modelstest.Personal()
		edited.Address.City = "Dallas"
		s.Require().NoError(s.client.SavePersonalInfo(s.ctx, sid, edited.PersonalDetails))

		progress := s.progress(sid)
		s.Equal(models.StepEmploymentFinancial, progress.CurrentStep)
		var address models.Address
		s.Require().NoError(json.Unmarshal(progress.RegistrationData["address"], &address))
		s.Equal("Dallas", address.City)
	})

	s.Run("funding amounts survive the round trip", func() {
		sid := s.register("funding@example.com")
		s.saveThrough(sid, models.StepFundingMethod)

		section, err := models.DecodeSection(models.SectionFundingMethod, s.progress(sid).RegistrationData["fundingMethod"])
		s.Require().NoError(err)
		funding := section.(models.FundingMethodData)
		s.Require().Len(funding.Methods, 1)
		transfer := funding.Methods[0].(models.TransferFunding)
		s.Equal("25000", transfer.EstimatedAmount.String())
	})

	s.Run("malformed body is a bad request", func() {
		sid := s.register("malformed@example.com")
		req := testutil.WithSession(testutil.NewRawRequest(http.MethodPost, "/api/registration/kyc-identity", "{"), SessionHeader, sid)
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("saved steps are counted by step", func() {
		before := promtest.ToFloat64(s.metrics.StepsSaved.WithLabelValues("2"))
		sid := s.register("metrics@example.com")
		s.saveThrough(sid, models.StepPersonalInfo)
		s.Equal(before+1, promtest.ToFloat64(s.metrics.StepsSaved.WithLabelValues("2")))
	})
}

func (s *HandlerSuite) TestSubmit() {
	s.Run("completes the registration", func() {
		sid := s.register("complete@example.com")
		s.saveThrough(sid, models.StepAgreements)

		resp, err := s.client.SubmitFinalRegistration(s.ctx, sid, modelstest.EmailSecurity().Submission())
		s.Require().NoError(err)
		s.True(resp.Success)
		s.Regexp(`^IRA-[0-9A-F]{10}$`, resp.ApplicationID)
		s.Equal("1-2 business days", resp.ReviewTimeline)
		s.Require().NotNil(resp.ContactInfo)
		s.Equal(float64(1), promtest.ToFloat64(s.metrics.RegistrationsSubmitted))

		progress := s.progress(sid)
		s.True(progress.IsComplete)
		s.Contains(progress.RegistrationData, "securitySetup")

		login, err := s.client.Login(s.ctx, "complete@example.com", modelstest.Password)
		s.Require().NoError(err)
		s.True(login.IsRegistrationComplete)

		err = s.client.SavePersonalInfo(s.ctx, sid, modelstest.Personal().PersonalDetails)
		s.Equal("Registration has already been submitted", s.remoteError(err).Message)
	})

	s.Run("code based methods need a confirmed code", func() {
		sid := s.register("sms@example.com")
		s.saveThrough(sid, models.StepAgreements)

		_, err := s.client.SubmitFinalRegistration(s.ctx, sid, models.SecuritySubmission{TwoFAMethod: models.TwoFASMS})
		re := s.remoteError(err)
		s.Equal(client.KindValidation, re.Kind)
		s.Equal("2FA verification is required", re.Message)
		s.False(s.progress(sid).IsComplete)
	})

	s.Run("cannot submit before the last step", func() {
		sid := s.register("early@example.com")

		_, err := s.client.SubmitFinalRegistration(s.ctx, sid, modelstest.EmailSecurity().Submission())
		s.Equal(http.StatusUnprocessableEntity, s.remoteError(err).Status)
	})
}

func (s *HandlerSuite) TestDocuments() {
	sid := s.register("docs@example.com")

	docs, err := s.client.FetchDocuments(s.ctx, sid)
	s.Require().NoError(err)
	s.Require().Len(docs, 5)
	s.Equal("IRA Adoption Agreement", docs[0].Name)
	s.Equal("https://docs.example.com/ira-adoption-agreement.pdf", docs[0].URL)
}

func (s *HandlerSuite) TestAuditTrail() {
	const email = "audited@example.com"
	sid := s.register(email)
	_, err := s.client.Login(s.ctx, email, "Wr0ng!pass")
	s.Require().Error(err)
	s.saveThrough(sid, models.StepAgreements)
	resp, err := s.client.SubmitFinalRegistration(s.ctx, sid, modelstest.EmailSecurity().Submission())
	s.Require().NoError(err)

	events, err := s.audit.ListBySubject(s.ctx, email)
	s.Require().NoError(err)

	var actions []audit.Action
	for _, e := range events {
		actions = append(actions, e.Action)
	}
	expected := []audit.Action{audit.ActionAccountRegistered, audit.ActionSessionCreated, audit.ActionLoginFailed}
	for range 8 {
		expected = append(expected, audit.ActionStepSaved)
	}
	expected = append(expected, audit.ActionRegistrationSubmitted)
	s.Equal(expected, actions)

	submitted := events[len(events)-1]
	s.Equal(audit.CategoryCompliance, submitted.Category)
	s.Equal(resp.ApplicationID, submitted.Reference)
	s.Equal(modelstest.Today, submitted.Timestamp)
	s.NotEmpty(submitted.RequestID)
	s.Equal("invalid_password", events[2].Reason)
}
