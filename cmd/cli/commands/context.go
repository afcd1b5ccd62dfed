package commands

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jakechorley/shifttrack/internal/config"
	"github.com/jakechorley/shifttrack/pkg/clients/geoclient"
	"github.com/jakechorley/shifttrack/pkg/clients/sheetsclient"
	"github.com/jakechorley/shifttrack/pkg/core/model"
	"github.com/jakechorley/shifttrack/pkg/core/services"
	"github.com/jakechorley/shifttrack/pkg/db"
	"github.com/jakechorley/shifttrack/pkg/locale"
	"github.com/jakechorley/shifttrack/pkg/metrics"
	"github.com/jakechorley/shifttrack/pkg/session"
	"github.com/jakechorley/shifttrack/pkg/utils"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Env       string
	Cfg       *config.Config
	Client    services.WebhookPoster
	Endpoints map[string]string
	Store     db.KeyValueStore
	Session   *session.Session
	Locator   geoclient.Locator
	Display   *locale.Formatter
	Metrics   *metrics.WebhookMetrics
	Logger    *zap.Logger
	Ctx       context.Context

	// NewPublisher is called the first time a report is published, since
	// connecting to Sheets may need a browser consent flow
	NewPublisher func() (services.ReportPublisher, error)

	publisherOnce sync.Once
	publisher     services.ReportPublisher
	publisherErr  error
}

// Publisher returns the Sheets publisher, creating it on first use
func (app *AppContext) Publisher() (services.ReportPublisher, error) {
	app.publisherOnce.Do(func() {
		if app.NewPublisher == nil {
			app.publisherErr = fmt.Errorf("report publishing is not configured")
			return
		}
		app.publisher, app.publisherErr = app.NewPublisher()
	})
	return app.publisher, app.publisherErr
}

// SheetsPublisher returns a NewPublisher func that connects with the
// installed-app OAuth client for env
func SheetsPublisher(app *AppContext) func() (services.ReportPublisher, error) {
	return func() (services.ReportPublisher, error) {
		oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
		if err != nil {
			return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
		}
		tokens, err := utils.OpenTokenStore()
		if err != nil {
			return nil, err
		}
		app.Logger.Info("Connecting to Google Sheets")
		client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, tokens, app.Env, app.Logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// ForgetSheetsToken removes the stored Google token for the environment so
// the next publish asks for consent again
func ForgetSheetsToken(app *AppContext) error {
	tokens, err := utils.OpenTokenStore()
	if err != nil {
		return err
	}
	defer tokens.Close()

	if err := utils.DeleteToken(app.Ctx, tokens, app.Env); err != nil && !errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("failed to delete stored token: %w", err)
	}
	utils.ClearToken(app.Env)
	app.Logger.Debug("Forgot Google Sheets token", zap.String("environment", app.Env))
	return nil
}

// currentUser returns the signed-in user or ErrNotLoggedIn
func (app *AppContext) currentUser() (*model.User, error) {
	user := app.Session.User()
	if user == nil {
		return nil, services.ErrNotLoggedIn
	}
	return user, nil
}
