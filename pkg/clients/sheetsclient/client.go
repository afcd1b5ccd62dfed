// Package sheetsclient publishes report snapshots to Google Sheets
package sheetsclient

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/jakechorley/shifttrack/internal/config"
	"github.com/jakechorley/shifttrack/pkg/db"
	"github.com/jakechorley/shifttrack/pkg/utils"
)

// Client wraps the Google Sheets API client
type Client struct {
	service *sheets.Service
	ctx     context.Context
}

// NewClient creates a Sheets client, running the browser OAuth flow when no
// usable token is stored for env in tokens
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, tokens db.KeyValueStore, env string, logger *zap.Logger) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	token, err := utils.GetTokenWithFlow(ctx, oauthConfig, tokens, env, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth token: %w", err)
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(oauthConfig.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service: service,
		ctx:     ctx,
	}, nil
}

// findSheetID returns the id of the tab called title, or -1
func (c *Client) findSheetID(spreadsheetID, title string) (int64, error) {
	spreadsheet, err := c.service.Spreadsheets.Get(spreadsheetID).Context(c.ctx).Do()
	if err != nil {
		return -1, fmt.Errorf("failed to get spreadsheet metadata: %w", err)
	}
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			return sheet.Properties.SheetId, nil
		}
	}
	return -1, nil
}

// CreateSheet creates a new tab in the spreadsheet and returns its id
func (c *Client) CreateSheet(spreadsheetID, sheetTitle string) (int64, error) {
	batch := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: sheetTitle},
			},
		}},
	}

	resp, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, batch).Context(c.ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to create sheet: %w", err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil {
		return 0, fmt.Errorf("unexpected response from create sheet")
	}

	return resp.Replies[0].AddSheet.Properties.SheetId, nil
}

// ClearSheet removes every value from a tab, keeping formatting
func (c *Client) ClearSheet(spreadsheetID, sheetTitle string) error {
	_, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, quoteTitle(sheetTitle), &sheets.ClearValuesRequest{}).
		Context(c.ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to clear sheet: %w", err)
	}
	return nil
}

// WriteValues writes rows starting at A1 of the tab
func (c *Client) WriteValues(spreadsheetID, sheetTitle string, values [][]interface{}) error {
	_, err := c.service.Spreadsheets.Values.Update(
		spreadsheetID,
		quoteTitle(sheetTitle)+"!A1",
		&sheets.ValueRange{Values: values},
	).ValueInputOption("RAW").Context(c.ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write values: %w", err)
	}
	return nil
}
