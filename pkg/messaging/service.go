package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dtnitsch/clickbait-detector/models"
	"github.com/dtnitsch/clickbait-detector/pkg/checker"
	"github.com/dtnitsch/clickbait-detector/pkg/llm"
	"github.com/dtnitsch/clickbait-detector/pkg/render"
)

const notificationTitle = "Clickbait Detector"

// Checker runs checks for the check actions.
type Checker interface {
	CheckClickbait(ctx context.Context, url string) (models.Verdict, error)
	CheckContent(ctx context.Context, content models.ExtractedContent) (models.Verdict, error)
}

// ConnectionTester backs the testConnection action.
type ConnectionTester interface {
	TestConnection(ctx context.Context, settings models.Settings) (string, error)
}

type SettingsLoader interface {
	Load() (models.Settings, error)
}

// Service holds the state shared by the default handlers.
type Service struct {
	Checker  Checker
	Tester   ConnectionTester
	Settings SettingsLoader
	Mode     *Mode
	Display  *render.Display
	Notifier Notifier
}

// Register installs the handlers for every action the page layer sends.
func (s *Service) Register(r *Router) {
	if s.Display == nil {
		s.Display = &render.Display{}
	}
	if s.Notifier == nil {
		s.Notifier = LogNotifier{}
	}

	r.Handle(models.ActionCheckLink, s.checkLink)
	r.Handle(models.ActionCheckLinkWithContent, s.checkLinkWithContent)
	r.Handle(models.ActionToggleLinkChecking, s.setLinkChecking)
	r.Handle(models.ActionToggleMode, s.toggleMode)
	r.Handle(models.ActionCheckTrigger, s.triggerCheck)
	r.Handle(models.ActionTestConnection, s.testConnection)
	r.Handle(models.ActionGetStatus, s.status)
	r.Handle(models.ActionHoverLink, s.hoverLink)
	r.Handle(models.ActionLeaveLink, s.leaveLink)
	r.Handle(models.ActionCloseTooltip, s.closeTooltip)
}

func (s *Service) checkLink(ctx context.Context, msg models.Message) (models.Response, error) {
	if strings.TrimSpace(msg.URL) == "" {
		return models.Response{}, fmt.Errorf("%w: url is required", ErrBadMessage)
	}

	if err := checker.ValidateLink(msg.URL); err != nil {
		return s.failed(err, render.FormatNotice(err.Error())), nil
	}

	s.Display.ShowLoading(render.Checking)
	verdict, err := s.Checker.CheckClickbait(ctx, msg.URL)
	return s.result(verdict, err), nil
}

func (s *Service) checkLinkWithContent(ctx context.Context, msg models.Message) (models.Response, error) {
	if msg.Content == nil {
		return models.Response{}, fmt.Errorf("%w: content is required", ErrBadMessage)
	}

	s.Display.ShowLoading(render.Checking)
	verdict, err := s.Checker.CheckContent(ctx, *msg.Content)
	return s.result(verdict, err), nil
}

func (s *Service) result(verdict models.Verdict, err error) models.Response {
	if err != nil {
		return s.failed(err, render.FormatError(err.Error()))
	}
	tooltip := render.Tooltip(verdict)
	s.Display.ShowResult(tooltip)
	return models.Response{Verdict: verdict, Tooltip: tooltip}
}

func (s *Service) failed(err error, text string) models.Response {
	tooltip := render.SanitizeHTML(text)
	s.Display.ShowResult(tooltip)
	return models.Response{Verdict: checker.ErrorVerdict(err), Tooltip: tooltip}
}

func (s *Service) setLinkChecking(ctx context.Context, msg models.Message) (models.Response, error) {
	if msg.Enabled == nil {
		return models.Response{}, fmt.Errorf("%w: enabled is required", ErrBadMessage)
	}

	enabled := s.Mode.Set(*msg.Enabled)
	if !enabled {
		s.Display.Hide()
	}
	return models.Response{Enabled: &enabled}, nil
}

func (s *Service) toggleMode(ctx context.Context, msg models.Message) (models.Response, error) {
	enabled := s.Mode.Toggle()
	if !enabled {
		s.Display.Hide()
	}

	notice := render.ModeNotice(enabled)
	s.Notifier.Notify(notificationTitle, notice)
	return models.Response{Enabled: &enabled, Notice: notice}, nil
}

// triggerCheck answers the check shortcut: the page layer should check the
// hovered link, or learn why it cannot.
func (s *Service) triggerCheck(ctx context.Context, msg models.Message) (models.Response, error) {
	enabled := s.Mode.Enabled()
	if !enabled {
		return models.Response{Enabled: &enabled, Notice: render.EnableFirst}, nil
	}
	return models.Response{Action: models.ActionTriggerCheck, Enabled: &enabled}, nil
}

func (s *Service) testConnection(ctx context.Context, msg models.Message) (models.Response, error) {
	settings, err := s.Settings.Load()
	if err != nil {
		return models.Response{Verdict: models.NewErrorVerdict(string(checker.KindConfig), err.Error())}, nil
	}
	if settings.APIKey == "" {
		return models.Response{Verdict: models.NewErrorVerdict(string(checker.KindConfig), "Wprowadź API Key przed testem")}, nil
	}

	answer, err := s.Tester.TestConnection(ctx, settings)
	if err != nil {
		kind, text := classifyTestError(err)
		return models.Response{Verdict: models.NewErrorVerdict(string(kind), text)}, nil
	}

	return models.Response{
		Verdict:     models.Verdict{Success: true, Response: answer},
		TestMessage: fmt.Sprintf("✅ Połączenie działa! Odpowiedź: %q", answer),
	}, nil
}

func classifyTestError(err error) (checker.ErrorKind, string) {
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		return checker.KindAPI, fmt.Sprintf("❌ Błąd %d: %s", apiErr.StatusCode, apiErr.Body)
	}
	return checker.KindNetwork, fmt.Sprintf("❌ Błąd połączenia: %v", err)
}

func (s *Service) status(ctx context.Context, msg models.Message) (models.Response, error) {
	enabled := s.Mode.Enabled()
	resp := models.Response{Enabled: &enabled}

	if settings, err := s.Settings.Load(); err == nil {
		configured := settings.APIKey != ""
		resp.Configured = &configured
	}
	if t, ok := s.Display.Current(); ok {
		resp.Tooltip = t.Text
	}
	return resp, nil
}

// hoverLink shows the shortcut hint while checking is enabled, unless a
// check tooltip is already on screen.
func (s *Service) hoverLink(ctx context.Context, msg models.Message) (models.Response, error) {
	enabled := s.Mode.Enabled()
	resp := models.Response{Enabled: &enabled}
	if !enabled {
		return resp, nil
	}

	s.Display.ShowHint(render.HoverHint)
	if t, ok := s.Display.Current(); ok {
		resp.Tooltip = t.Text
	}
	return resp, nil
}

func (s *Service) leaveLink(ctx context.Context, msg models.Message) (models.Response, error) {
	s.Display.LeaveLink()
	return models.Response{}, nil
}

func (s *Service) closeTooltip(ctx context.Context, msg models.Message) (models.Response, error) {
	s.Display.Hide()
	return models.Response{}, nil
}
