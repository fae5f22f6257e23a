// Package cli drives the registration wizard from the command line.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"signup/internal/platform/config"
	"signup/internal/platform/logger"
	"signup/internal/platform/redis"
	"signup/internal/registration/client"
	"signup/internal/registration/draft"
	"signup/internal/registration/models"
	"signup/internal/registration/twofactor"
	"signup/internal/registration/wizard"
	dErrors "signup/pkg/domain-errors"
	"signup/pkg/platform/kv"
	"signup/pkg/requestcontext"
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Streams are the standard streams of a command.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

const usage = `
Self-directed IRA registration wizard.

Usage:
  wizard [options] run|status|logout

Commands:
  run     Resume or start the registration and answer each step from -script.
  status  Show the current step and progress.
  logout  Forget the saved session and draft.

Options:
`

type options struct {
	command    string
	scriptPath string
}

// Run parses args, loads configuration from the environment and executes
// the command.
func Run(ctx context.Context, args []string, streams Streams) error {
	flagSet := flag.NewFlagSet("wizard", flag.ContinueOnError)
	flagSet.SetOutput(streams.Err)
	flagSet.Usage = func() {
		fmt.Fprint(streams.Err, usage)
		flagSet.PrintDefaults()
	}
	scriptFlag := flagSet.String("script", "", "Path to a JSON file with the step answers (run only).")
	apiFlag := flagSet.String("api", "", "Progress API base URL. Overrides API_BASE_URL.")
	cacheFlag := flagSet.String("cache", "", "Draft cache backend: file, redis or memory. Overrides CACHE_BACKEND.")
	levelFlag := flagSet.String("log-level", "", "Log level. Overrides LOG_LEVEL.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() != 1 {
		flagSet.Usage()
		return &ExitError{Code: 2, Message: "expected exactly one command"}
	}
	opts := options{command: flagSet.Arg(0), scriptPath: *scriptFlag}

	cfg, err := config.FromEnv()
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}
	if *apiFlag != "" {
		cfg.Client.APIBaseURL = *apiFlag
	}
	if *cacheFlag != "" {
		cfg.Cache.Backend = *cacheFlag
	}
	if *levelFlag != "" {
		cfg.Log.Level = *levelFlag
	}
	log := logger.NewWithWriter(streams.Err, cfg.Log.Level, cfg.Log.Format)

	store, closeStore, err := openCache(ctx, cfg)
	if err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.WarnContext(ctx, "failed to close draft cache", "error", err)
		}
	}()

	apiClient := client.New(cfg.Client.APIBaseURL,
		client.WithTimeout(cfg.Client.RequestTimeout),
		client.WithLogger(log),
	)
	verifier := twofactor.NewService(twofactor.LogSender{Logger: log}, twofactor.WithLogger(log))
	c, err := wizard.New(apiClient, draft.New(store, draft.WithLogger(log)), draft.NewIdentity(store),
		wizard.WithLogger(log),
		wizard.WithVerifier(verifier),
	)
	if err != nil {
		return err
	}

	r := &runner{wizard: c, streams: streams, logger: log}
	switch opts.command {
	case "run":
		if opts.scriptPath == "" {
			return &ExitError{Code: 2, Message: "run needs -script"}
		}
		script, err := LoadScript(opts.scriptPath)
		if err != nil {
			return &ExitError{Code: 2, Message: err.Error()}
		}
		return r.run(ctx, script)
	case "status":
		return r.status(ctx)
	case "logout":
		if err := c.Logout(ctx); err != nil {
			return r.failure(err)
		}
		fmt.Fprintln(streams.Out, "Logged out.")
		return nil
	}
	flagSet.Usage()
	return &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", opts.command)}
}

func openCache(ctx context.Context, cfg config.Config) (kv.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Cache.Backend {
	case "memory":
		return kv.NewInMemoryStore(), noop, nil
	case "file":
		store, err := kv.NewFileStore(cfg.Cache.Dir)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil
	case "redis":
		rc, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return rc.DraftStore(), rc.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
}

type runner struct {
	wizard  *wizard.Controller
	streams Streams
	logger  *slog.Logger
}

func (r *runner) run(ctx context.Context, script *Script) error {
	if err := r.start(ctx); err != nil {
		return err
	}

	for {
		ctx := requestcontext.WithTime(ctx, time.Now())
		state := r.wizard.State(ctx)
		switch state.Status {
		case wizard.StatusComplete:
			r.printComplete(state.Response)
			return nil
		case wizard.StatusSessionExpired:
			return &ExitError{Code: 1, Message: wizard.ErrSessionExpired.Error()}
		}

		if state.Step == models.StepAccountCreation {
			if err := r.begin(ctx, script); err != nil {
				return err
			}
			continue
		}

		payload, err := script.Payload(state.Step)
		if err != nil {
			return &ExitError{Code: 2, Message: err.Error()}
		}
		if payload == nil {
			r.wizard.SaveAndExit(ctx)
			fmt.Fprintf(r.streams.Out, "Saved at step %d (%s). Add %q to the script to continue.\n",
				state.Step, state.Step.Title(), stepKeys[state.Step])
			return nil
		}
		payload, err = r.prepare(ctx, script, payload)
		if err != nil {
			return r.failure(err)
		}
		if err := r.wizard.CompleteStep(ctx, payload); err != nil {
			return r.failure(err)
		}
		fmt.Fprintf(r.streams.Out, "Step %d done: %s\n", state.Step, state.Step.Title())
	}
}

// start resumes the saved draft. An expired session starts over.
func (r *runner) start(ctx context.Context) error {
	err := r.wizard.Start(ctx)
	if errors.Is(err, wizard.ErrSessionExpired) {
		fmt.Fprintln(r.streams.Out, dErrors.MessageOf(err, ""))
		err = r.wizard.Start(ctx)
	}
	if err != nil {
		return r.failure(err)
	}
	return nil
}

// begin completes step 1 by logging in or creating the account.
func (r *runner) begin(ctx context.Context, script *Script) error {
	switch {
	case script.Login != nil:
		res, err := r.wizard.Login(ctx, script.Login.Email, script.Login.Password)
		if err != nil {
			return r.failure(err)
		}
		if res.IsRegistrationComplete {
			fmt.Fprintln(r.streams.Out, "This registration has already been submitted.")
			return nil
		}
		fmt.Fprintf(r.streams.Out, "Logged in. Resuming at step %d.\n", r.wizard.State(ctx).Step)
		return nil
	case script.Account != nil:
		if err := r.wizard.CompleteAccount(ctx, *script.Account); err != nil {
			return r.failure(err)
		}
		fmt.Fprintf(r.streams.Out, "Step 1 done: %s\n", models.StepAccountCreation.Title())
		return nil
	}
	return &ExitError{Code: 2, Message: "script needs an account or login entry"}
}

// prepare fills in agreement records from the served documents and confirms
// the 2FA code when the chosen method needs one.
func (r *runner) prepare(ctx context.Context, script *Script, payload models.StepPayload) (models.StepPayload, error) {
	now := requestcontext.Now(ctx)
	switch p := payload.(type) {
	case models.AgreementsPayload:
		if len(p.Agreements.Agreements) == 0 {
			records := r.wizard.Agreements()
			for i := range records {
				records[i].Accept(true, now)
			}
			p.Agreements.Agreements = records
		}
		return p, nil
	case models.SecuritySetupPayload:
		switch p.TwoFAMethod {
		case models.TwoFASMS:
			phone := ""
			if personal := r.wizard.FormData().PersonalInfo; personal != nil {
				phone = personal.Phone
			}
			if err := r.wizard.SendVerificationCode(ctx, phone); err != nil {
				return nil, err
			}
			code, err := r.code(script, "Enter the code sent to your phone: ")
			if err != nil {
				return nil, err
			}
			if err := r.wizard.ConfirmSMSCode(ctx, phone, code); err != nil {
				return nil, err
			}
		case models.TwoFAAuthenticator:
			code, err := r.code(script, "Enter the code from your authenticator app: ")
			if err != nil {
				return nil, err
			}
			if err := r.wizard.ConfirmAuthenticatorCode(ctx, p.AuthenticatorSecret, code); err != nil {
				return nil, err
			}
		}
		return p, nil
	}
	return payload, nil
}

func (r *runner) code(script *Script, prompt string) (string, error) {
	if script.VerificationCode != "" {
		return script.VerificationCode, nil
	}
	fmt.Fprint(r.streams.Out, prompt)
	line, err := bufio.NewReader(r.streams.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read code: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (r *runner) status(ctx context.Context) error {
	if err := r.wizard.Start(ctx); err != nil {
		if errors.Is(err, wizard.ErrSessionExpired) {
			fmt.Fprintln(r.streams.Out, "No active registration. The previous session has expired.")
			return nil
		}
		return r.failure(err)
	}
	state := r.wizard.State(ctx)
	fmt.Fprintf(r.streams.Out, "Step %d of %d: %s\n", state.Step, models.LastStep, state.Step.Title())
	fmt.Fprintf(r.streams.Out, "Progress: %.0f%%\n", r.wizard.Progress())
	fmt.Fprintf(r.streams.Out, "Status: %s\n", state.Status)
	if state.LastSavedAt != nil {
		fmt.Fprintf(r.streams.Out, "Last saved: %s\n", state.LastSavedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func (r *runner) printComplete(resp *models.RegistrationResponse) {
	fmt.Fprintln(r.streams.Out, "Registration submitted.")
	if resp == nil {
		return
	}
	if resp.ApplicationID != "" {
		fmt.Fprintf(r.streams.Out, "Application ID: %s\n", resp.ApplicationID)
	}
	if resp.ReviewTimeline != "" {
		fmt.Fprintf(r.streams.Out, "Review: %s\n", resp.ReviewTimeline)
	}
	if resp.FundingTimeline != "" {
		fmt.Fprintf(r.streams.Out, "Funding: %s\n", resp.FundingTimeline)
	}
	if resp.ContactInfo != nil {
		fmt.Fprintf(r.streams.Out, "Questions: %s, %s\n", resp.ContactInfo.Email, resp.ContactInfo.Phone)
	}
}

// failure prints the user message and any field problems, sorted by field.
func (r *runner) failure(err error) error {
	msg := dErrors.MessageOf(err, "Something went wrong. Please try again.")
	var b strings.Builder
	b.WriteString(msg)
	var fields models.FieldErrors
	if errors.As(err, &fields) {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "\n  %s: %s", k, fields[k])
		}
	}
	r.logger.Debug("command failed", "error", err)
	return &ExitError{Code: 1, Message: b.String()}
}
