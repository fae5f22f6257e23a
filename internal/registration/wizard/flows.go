package wizard

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"signup/internal/registration/client"
	"signup/internal/registration/models"
	dErrors "signup/pkg/domain-errors"
	"signup/pkg/requestcontext"
)

const (
	accountFailedMessage  = "Failed to create account. Please check your email and try again."
	submitFailedMessage   = "Failed to submit registration. Please try again."
	stepFailedMessageTmpl = "Failed to save step %d. Please try again."
)

// Start restores the local draft and, when a session is held, reconciles it
// with the server. The server's step and committed sections win; sections the
// server does not return keep their local value.
func (c *Controller) Start(ctx context.Context) error {
	c.draft.Load(ctx)

	sessionID, err := c.identity.SessionID(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to read session id", "error", err)
	}

	c.mu.Lock()
	c.status = StatusInProgress
	c.sessionID = sessionID
	c.response = nil
	c.mu.Unlock()

	if sessionID == "" {
		if c.draft.CurrentStep() > models.FirstStep {
			return c.expire(ctx, "no session for saved draft", nil)
		}
		return nil
	}

	var (
		progress *models.Progress
		docs     []models.Document
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := c.client.FetchProgress(gctx, sessionID)
		if err != nil {
			return err
		}
		progress = p
		return nil
	})
	g.Go(func() error {
		d, err := c.client.FetchDocuments(gctx, sessionID)
		if err != nil {
			c.logger.WarnContext(ctx, "failed to load documents", "error", err)
			return nil
		}
		docs = d
		return nil
	})
	if err := g.Wait(); err != nil {
		if client.IsSessionExpired(err) {
			return c.expire(ctx, "progress rejected session", err)
		}
		c.logger.WarnContext(ctx, "failed to fetch registration progress", "error", err)
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "Failed to load your saved progress.")
	}

	c.mu.Lock()
	c.documents = docs
	c.mu.Unlock()

	c.applyProgress(ctx, progress)
	return nil
}

// applyProgress moves to the server's step and overlays the server's
// sections. personalInfo and address are applied first.
func (c *Controller) applyProgress(ctx context.Context, progress *models.Progress) {
	step := c.draft.CurrentStep()
	if progress.CurrentStep > 0 {
		step = progress.CurrentStep.Clamp()
	}

	data := progress.Data()
	overlay := func(key models.SectionKey, raw json.RawMessage) {
		section, err := models.DecodeSection(key, raw)
		if err != nil {
			c.logger.WarnContext(ctx, "skipping unreadable server section",
				"section", string(key),
				"error", err,
			)
			return
		}
		c.draft.UpdateFormData(section)
	}

	for _, key := range []models.SectionKey{models.SectionPersonalInfo, models.SectionAddress} {
		if raw, ok := data[string(key)]; ok {
			overlay(key, raw)
		}
	}
	for _, key := range models.AllSections {
		if key == models.SectionPersonalInfo || key == models.SectionAddress {
			continue
		}
		if raw, ok := data[string(key)]; ok {
			overlay(key, raw)
		}
	}

	c.draft.SetStep(ctx, step)
	c.logger.InfoContext(ctx, "registration resumed",
		"step", int(step),
		"sections", len(data),
	)
}

// CompleteAccount finishes step 1: it creates the remote draft and moves to
// step 2. Passwords are sent once and never stored. It is refused once the
// registration is complete; after SessionExpired it starts over.
func (c *Controller) CompleteAccount(ctx context.Context, account models.AccountCreation) error {
	if err := c.beginSubmit(); err != nil {
		return err
	}
	defer c.endSubmit()

	if err := c.requireStep(models.StepAccountCreation); err != nil {
		return err
	}
	if _, status := c.currentSession(); status == StatusComplete {
		return dErrors.New(dErrors.CodeInvalidState, "registration is complete")
	}
	if errs := account.Validate(); len(errs) > 0 {
		return c.validationFailed(ctx, models.StepAccountCreation, errs)
	}

	sessionID, err := c.client.Register(ctx, account.Email, account.Password)
	if err != nil {
		c.logger.WarnContext(ctx, "account registration failed", "error", err)
		return dErrors.Wrap(err, dErrors.CodeUnavailable, remoteMessage(err, accountFailedMessage))
	}

	if err := c.identity.SetSessionID(ctx, sessionID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store session id")
	}
	if err := c.identity.SetLastLoginEmail(ctx, account.Email); err != nil {
		c.logger.WarnContext(ctx, "failed to store last login email", "error", err)
	}

	// A new account starts a new draft, which also leaves SessionExpired.
	c.mu.Lock()
	c.sessionID = sessionID
	c.status = StatusInProgress
	c.response = nil
	c.mu.Unlock()

	c.loadDocuments(ctx, sessionID)
	c.draft.UpdateFormData(account.Sanitized())
	c.advance(ctx, models.StepAccountCreation)
	return nil
}

// CompleteStep finishes one of steps 2 through 10. On failure the step does
// not change and the returned error carries a message for the user; field
// problems come back as models.FieldErrors in the chain.
func (c *Controller) CompleteStep(ctx context.Context, payload models.StepPayload) error {
	if err := c.beginSubmit(); err != nil {
		return err
	}
	defer c.endSubmit()

	step := payload.Step()
	if err := c.requireStep(step); err != nil {
		return err
	}

	sessionID, status := c.currentSession()
	if status != StatusInProgress {
		return dErrors.New(dErrors.CodeInvalidState, fmt.Sprintf("registration is %s", status))
	}
	if sessionID == "" {
		return c.expire(ctx, "no session for step submission", nil)
	}

	payload = c.normalize(payload)
	today := requestcontext.Now(ctx)
	if errs := payload.Validate(today); len(errs) > 0 {
		return c.validationFailed(ctx, step, errs)
	}

	c.merge(payload)
	if err := c.draft.Save(ctx); err != nil {
		c.logger.WarnContext(ctx, "failed to save registration draft", "step", int(step), "error", err)
	}

	response, err := c.persist(ctx, sessionID, payload)
	if err != nil {
		if client.IsSessionExpired(err) {
			return c.expire(ctx, "save rejected session", err)
		}
		fallback := fmt.Sprintf(stepFailedMessageTmpl, int(step))
		if step == models.StepSecuritySetup {
			fallback = submitFailedMessage
		}
		c.logger.WarnContext(ctx, "failed to persist step",
			"step", int(step),
			"kind", string(client.KindOf(err)),
			"retryable", client.IsRetryable(err),
			"error", err,
		)
		return dErrors.Wrap(err, dErrors.CodeUnavailable, remoteMessage(err, fallback))
	}

	if step == models.StepSecuritySetup {
		c.finish(ctx, response)
		return nil
	}
	c.advance(ctx, step)
	return nil
}

// Previous moves back one step without validating or calling the server.
func (c *Controller) Previous(ctx context.Context) {
	step := c.draft.CurrentStep()
	if step > models.FirstStep {
		c.draft.SetStep(ctx, step-1)
	}
}

// SaveAndExit writes the draft locally. Failures are logged only.
func (c *Controller) SaveAndExit(ctx context.Context) {
	if err := c.draft.Save(ctx); err != nil {
		c.logger.WarnContext(ctx, "failed to save registration draft on exit", "error", err)
	}
}

// Login signs in with existing credentials and resumes the draft unless the
// registration is already complete.
func (c *Controller) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	result, err := c.client.Login(ctx, email, password)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, client.MessageOf(err, client.InvalidCredentialsMessage))
	}

	if err := c.identity.SetSessionID(ctx, result.SessionID); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store session id")
	}
	if result.Token != "" {
		if err := c.identity.SetAuthToken(ctx, result.Token); err != nil {
			c.logger.WarnContext(ctx, "failed to store auth token", "error", err)
		}
	}
	if err := c.identity.SetLastLoginEmail(ctx, email); err != nil {
		c.logger.WarnContext(ctx, "failed to store last login email", "error", err)
	}

	if result.IsRegistrationComplete {
		c.mu.Lock()
		c.sessionID = result.SessionID
		c.status = StatusComplete
		c.mu.Unlock()
		return result, nil
	}
	if err := c.Start(ctx); err != nil {
		return result, err
	}
	return result, nil
}

// Logout forgets the session and the local draft.
func (c *Controller) Logout(ctx context.Context) error {
	idErr := c.identity.Clear(ctx)
	draftErr := c.draft.Clear(ctx)

	c.mu.Lock()
	c.status = StatusInProgress
	c.sessionID = ""
	c.documents = nil
	c.response = nil
	c.verified = make(map[models.TwoFAMethod]bool)
	c.mu.Unlock()

	if idErr != nil {
		return dErrors.Wrap(idErr, dErrors.CodeInternal, "failed to clear session")
	}
	if draftErr != nil {
		return dErrors.Wrap(draftErr, dErrors.CodeInternal, "failed to clear draft")
	}
	return nil
}

func (c *Controller) requireStep(step models.Step) error {
	current := c.draft.CurrentStep()
	if step != current {
		return dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("cannot complete step %d while on step %d", int(step), int(current)))
	}
	return nil
}

func (c *Controller) validationFailed(ctx context.Context, step models.Step, errs models.FieldErrors) error {
	c.logger.DebugContext(ctx, "step validation failed",
		"step", int(step),
		"fields", len(errs),
	)
	if c.metrics != nil {
		c.metrics.IncrementValidationFailure(int(step))
	}
	return dErrors.Wrap(errs, dErrors.CodeValidation, "Please correct the highlighted fields.")
}

func (c *Controller) advance(ctx context.Context, completed models.Step) {
	if c.metrics != nil {
		c.metrics.IncrementStepCompleted(int(completed))
	}
	c.draft.SetStep(ctx, completed+1)
}

func (c *Controller) finish(ctx context.Context, response *models.RegistrationResponse) {
	if err := c.draft.Clear(ctx); err != nil {
		c.logger.ErrorContext(ctx, "failed to clear registration draft", "error", err)
	}
	if err := c.identity.Clear(ctx); err != nil {
		c.logger.ErrorContext(ctx, "failed to clear session identity", "error", err)
	}

	c.mu.Lock()
	c.status = StatusComplete
	c.response = response
	c.sessionID = ""
	c.verified = make(map[models.TwoFAMethod]bool)
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.IncrementStepCompleted(int(models.StepSecuritySetup))
		c.metrics.IncrementRegistrationCompleted()
	}
	attrs := []any{"step", int(models.StepSecuritySetup)}
	if response != nil {
		attrs = append(attrs, "application_id", response.ApplicationID)
	}
	c.logger.InfoContext(ctx, "registration submitted", attrs...)
}

func (c *Controller) loadDocuments(ctx context.Context, sessionID string) {
	docs, err := c.client.FetchDocuments(ctx, sessionID)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to load documents", "error", err)
		return
	}
	c.mu.Lock()
	c.documents = docs
	c.mu.Unlock()
}

// remoteMessage shows the server's message for rejected payloads and the
// fallback for everything else.
func remoteMessage(err error, fallback string) string {
	if client.KindOf(err) == client.KindValidation {
		return client.MessageOf(err, fallback)
	}
	return fallback
}
