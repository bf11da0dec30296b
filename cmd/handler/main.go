// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

// Command handler is a CLI for talking to A2A agents: fetch cards,
// send and stream messages, manage tasks and push notification
// configs, and run a local webhook receiver.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/joho/godotenv"

	"github.com/alDuncanson/handler/a2a"
	"github.com/alDuncanson/handler/auth"
	"github.com/alDuncanson/handler/client"
	"github.com/alDuncanson/handler/session"
	"github.com/alDuncanson/handler/webhook"
)

var cli struct {
	LogLevel    string        `help:"Log level." enum:"debug,info,warn,error" default:"info" env:"HANDLER_LOG_LEVEL"`
	Timeout     time.Duration `help:"Request timeout for non-streaming calls." default:"5m" env:"HANDLER_TIMEOUT"`
	Token       string        `help:"Bearer token sent to the agent." env:"HANDLER_TOKEN"`
	APIKey      string        `help:"API key sent to the agent." env:"HANDLER_API_KEY"`
	SessionFile string        `help:"Path of the session store file." env:"HANDLER_SESSION_FILE"`

	Card    cardCmd    `cmd:"" help:"Fetch an agent's card."`
	Send    sendCmd    `cmd:"" help:"Send a message and print the folded result."`
	Stream  streamCmd  `cmd:"" help:"Send a message and print events as they arrive."`
	Task    taskCmd    `cmd:"" help:"Inspect, cancel or reattach to tasks."`
	Push    pushCmd    `cmd:"" help:"Manage push notification configs."`
	Webhook webhookCmd `cmd:"" help:"Run the local webhook receiver."`
	Session sessionCmd `cmd:"" help:"Inspect or clear stored sessions."`
}

// runCtx carries what every command needs.
type runCtx struct {
	ctx    context.Context
	logger *slog.Logger
	store  *session.Store
}

func main() {
	// A .env next to the invocation is a convenience, not a requirement.
	_ = godotenv.Load()

	kctx := kong.Parse(&cli,
		kong.Name("handler"),
		kong.Description("A2A protocol client toolkit."),
		kong.UsageOnError(),
	)

	logger := newLogger(cli.LogLevel)
	slog.SetDefault(logger)

	storePath := cli.SessionFile
	if storePath == "" {
		var err error
		storePath, err = session.DefaultPath()
		kctx.FatalIfErrorf(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := kctx.Run(&runCtx{
		ctx:    ctx,
		logger: logger,
		store:  session.NewStore(storePath),
	})
	kctx.FatalIfErrorf(err)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func newSession(rc *runCtx, agentURL string) (*client.Session, error) {
	opts := []client.Option{
		client.WithTimeout(cli.Timeout),
		client.WithLogger(rc.logger),
	}
	switch {
	case cli.Token != "":
		opts = append(opts, client.WithCredentials(auth.Bearer(cli.Token)))
	case cli.APIKey != "":
		opts = append(opts, client.WithCredentials(auth.APIKey(cli.APIKey, "")))
	}

	return client.NewSession(agentURL, opts...)
}

func printJSON(v any) error {
	if err := json.MarshalWrite(os.Stdout, v, jsontext.WithIndent("  ")); err != nil {
		return err
	}
	fmt.Println()

	return nil
}

type cardCmd struct {
	URL      string `arg:"" help:"Agent base URL."`
	Validate bool   `help:"Validate the card and report issues."`
}

func (c *cardCmd) Run(rc *runCtx) error {
	resolver, err := client.NewCardResolver(c.URL, client.WithLogger(rc.logger))
	if err != nil {
		return err
	}
	card, err := resolver.GetAgentCard(rc.ctx, "")
	if err != nil {
		return err
	}
	if err := printJSON(card); err != nil {
		return err
	}

	if !c.Validate {
		return nil
	}
	result := a2a.ValidateCard(card)
	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}
	for _, issue := range result.Errors {
		fmt.Fprintf(os.Stderr, "error: %s\n", issue)
	}
	if !result.Valid {
		return fmt.Errorf("agent card is invalid (%d errors)", len(result.Errors))
	}
	fmt.Fprintln(os.Stderr, "agent card is valid")

	return nil
}

type sendCmd struct {
	URL     string `arg:"" help:"Agent base URL."`
	Message string `arg:"" help:"Message text to send."`

	ContextID string `help:"Continue an existing conversation."`
	TaskID    string `help:"Continue an existing task."`
	Session   bool   `help:"Persist conversation ids in the session store."`
	PushURL   string `help:"Webhook URL to register for task updates."`
	PushToken string `help:"Token the agent echoes back on deliveries."`
	Blocking  bool   `help:"Ask the agent to block until the task is terminal."`
}

func (c *sendCmd) Run(rc *runCtx) error {
	s, err := newSession(rc, c.URL)
	if err != nil {
		return err
	}
	defer s.Close()

	contextID, taskID := c.ContextID, c.TaskID
	if c.Session && contextID == "" && taskID == "" {
		state, ok, err := rc.store.Get(c.URL)
		if err != nil {
			return err
		}
		if ok {
			contextID, taskID = state.ContextID, state.TaskID
		}
	}

	opts := []client.CallOption{
		client.WithContextID(contextID),
		client.WithTaskID(taskID),
		client.WithBlocking(c.Blocking),
	}
	if c.PushURL != "" {
		opts = append(opts, client.WithPushConfig(&a2a.PushNotificationConfig{
			URL:   c.PushURL,
			Token: c.PushToken,
		}))
	}

	result, err := s.Send(rc.ctx, c.Message, opts...)
	if err != nil {
		return err
	}

	if c.Session {
		if err := rc.store.Update(c.URL, result.ContextID, result.TaskID); err != nil {
			return err
		}
	}

	if result.Text != "" {
		fmt.Println(result.Text)
	}
	if result.TaskID != "" {
		fmt.Fprintf(os.Stderr, "task %s: %s\n", result.TaskID, result.State)
	}
	if result.NeedsInput() {
		fmt.Fprintln(os.Stderr, "the agent needs more input; answer with --task-id "+result.TaskID)
	}

	return nil
}

type streamCmd struct {
	URL     string `arg:"" help:"Agent base URL."`
	Message string `arg:"" help:"Message text to send."`

	ContextID string `help:"Continue an existing conversation."`
	TaskID    string `help:"Continue an existing task."`
}

func (c *streamCmd) Run(rc *runCtx) error {
	s, err := newSession(rc, c.URL)
	if err != nil {
		return err
	}
	defer s.Close()

	ch, err := s.Stream(rc.ctx, c.Message,
		client.WithContextID(c.ContextID),
		client.WithTaskID(c.TaskID),
	)
	if err != nil {
		return err
	}

	return printEvents(ch)
}

func printEvents(ch <-chan client.StreamEvent) error {
	for ev := range ch {
		switch ev.Kind {
		case client.StreamEventError:
			return ev.Err
		case client.StreamEventStatus:
			fmt.Fprintf(os.Stderr, "[%s] %s\n", ev.TaskID, ev.State)
			if ev.Text != "" {
				fmt.Println(ev.Text)
			}
		default:
			if ev.Text != "" {
				fmt.Println(ev.Text)
			}
		}
	}

	return nil
}

type taskCmd struct {
	Get         taskGetCmd         `cmd:"" help:"Fetch a task snapshot."`
	Cancel      taskCancelCmd      `cmd:"" help:"Cancel a running task."`
	Resubscribe taskResubscribeCmd `cmd:"" help:"Reattach to a task's event stream."`
}

type taskGetCmd struct {
	URL           string `arg:"" help:"Agent base URL."`
	TaskID        string `arg:"" help:"Task identifier."`
	HistoryLength int    `help:"History messages to request." default:"10"`
}

func (c *taskGetCmd) Run(rc *runCtx) error {
	s, err := newSession(rc, c.URL)
	if err != nil {
		return err
	}
	defer s.Close()

	result, err := s.GetTask(rc.ctx, c.TaskID, c.HistoryLength)
	if err != nil {
		return err
	}

	return printJSON(result.Task)
}

type taskCancelCmd struct {
	URL    string `arg:"" help:"Agent base URL."`
	TaskID string `arg:"" help:"Task identifier."`
}

func (c *taskCancelCmd) Run(rc *runCtx) error {
	s, err := newSession(rc, c.URL)
	if err != nil {
		return err
	}
	defer s.Close()

	result, err := s.CancelTask(rc.ctx, c.TaskID)
	if err != nil {
		if client.IsTaskNotCancelable(err) {
			return fmt.Errorf("task %s is already in a terminal state", c.TaskID)
		}
		return err
	}
	fmt.Fprintf(os.Stderr, "task %s: %s\n", result.ID, result.State)

	return nil
}

type taskResubscribeCmd struct {
	URL    string `arg:"" help:"Agent base URL."`
	TaskID string `arg:"" help:"Task identifier."`
}

func (c *taskResubscribeCmd) Run(rc *runCtx) error {
	s, err := newSession(rc, c.URL)
	if err != nil {
		return err
	}
	defer s.Close()

	ch, err := s.Resubscribe(rc.ctx, c.TaskID)
	if err != nil {
		return err
	}

	return printEvents(ch)
}

type pushCmd struct {
	Set    pushSetCmd    `cmd:"" help:"Register a webhook for task updates."`
	Get    pushGetCmd    `cmd:"" help:"Fetch a push config."`
	List   pushListCmd   `cmd:"" help:"List a task's push configs."`
	Delete pushDeleteCmd `cmd:"" help:"Remove a push config."`
}

type pushSetCmd struct {
	URL        string `arg:"" help:"Agent base URL."`
	TaskID     string `arg:"" help:"Task identifier."`
	WebhookURL string `arg:"" help:"Webhook endpoint for deliveries."`
	Token      string `help:"Token the agent echoes back on deliveries."`
}

func (c *pushSetCmd) Run(rc *runCtx) error {
	s, err := newSession(rc, c.URL)
	if err != nil {
		return err
	}
	defer s.Close()

	cfg, err := s.SetPushConfig(rc.ctx, c.TaskID, c.WebhookURL, c.Token)
	if err != nil {
		return err
	}

	return printJSON(cfg)
}

type pushGetCmd struct {
	URL      string `arg:"" help:"Agent base URL."`
	TaskID   string `arg:"" help:"Task identifier."`
	ConfigID string `arg:"" optional:"" help:"Config identifier."`
}

func (c *pushGetCmd) Run(rc *runCtx) error {
	s, err := newSession(rc, c.URL)
	if err != nil {
		return err
	}
	defer s.Close()

	cfg, err := s.GetPushConfig(rc.ctx, c.TaskID, c.ConfigID)
	if err != nil {
		return err
	}

	return printJSON(cfg)
}

type pushListCmd struct {
	URL    string `arg:"" help:"Agent base URL."`
	TaskID string `arg:"" help:"Task identifier."`
}

func (c *pushListCmd) Run(rc *runCtx) error {
	s, err := newSession(rc, c.URL)
	if err != nil {
		return err
	}
	defer s.Close()

	configs, err := s.ListPushConfigs(rc.ctx, c.TaskID)
	if err != nil {
		return err
	}

	return printJSON(configs)
}

type pushDeleteCmd struct {
	URL      string `arg:"" help:"Agent base URL."`
	TaskID   string `arg:"" help:"Task identifier."`
	ConfigID string `arg:"" help:"Config identifier."`
}

func (c *pushDeleteCmd) Run(rc *runCtx) error {
	s, err := newSession(rc, c.URL)
	if err != nil {
		return err
	}
	defer s.Close()

	return s.DeletePushConfig(rc.ctx, c.TaskID, c.ConfigID)
}

type webhookCmd struct {
	Serve webhookServeCmd `cmd:"" help:"Run the local webhook receiver."`
}

type webhookServeCmd struct {
	Host   string `help:"Listen address." default:"127.0.0.1"`
	Port   int    `help:"Listen port." default:"8000"`
	Token  string `help:"Require this notification token on deliveries." env:"HANDLER_WEBHOOK_TOKEN"`
	Secret string `help:"Verify delivery JWTs with this shared secret." env:"HANDLER_WEBHOOK_SECRET"`
}

func (c *webhookServeCmd) Run(rc *runCtx) error {
	opts := []webhook.ServerOption{webhook.WithLogger(rc.logger)}
	if c.Token != "" {
		opts = append(opts, webhook.WithToken(c.Token))
	}
	if c.Secret != "" {
		opts = append(opts, webhook.WithVerifier(auth.NewNotificationVerifier(c.Secret)))
	}

	addr := fmt.Sprintf("%s:%d", c.Host, c.Port)
	return webhook.NewServer(addr, opts...).Run(rc.ctx)
}

type sessionCmd struct {
	List  sessionListCmd  `cmd:"" help:"List stored sessions."`
	Clear sessionClearCmd `cmd:"" help:"Forget stored sessions."`
}

type sessionListCmd struct{}

func (c *sessionListCmd) Run(rc *runCtx) error {
	sessions, err := rc.store.List()
	if err != nil {
		return err
	}

	return printJSON(sessions)
}

type sessionClearCmd struct {
	URL string `arg:"" optional:"" help:"Agent URL to forget. Omit with --all to forget everything."`
	All bool   `help:"Forget every stored session."`
}

func (c *sessionClearCmd) Run(rc *runCtx) error {
	switch {
	case c.All:
		return rc.store.ClearAll()
	case c.URL != "":
		return rc.store.Clear(c.URL)
	default:
		return fmt.Errorf("give an agent URL or --all")
	}
}
