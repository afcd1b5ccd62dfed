package sheetsclient

import (
	"fmt"
	"strings"
)

// PublishReport writes values to the tab called title, creating the tab if it
// does not exist and replacing its contents if it does
func (c *Client) PublishReport(spreadsheetID, title string, values [][]interface{}) error {
	sheetID, err := c.findSheetID(spreadsheetID, title)
	if err != nil {
		return err
	}

	if sheetID == -1 {
		if _, err := c.CreateSheet(spreadsheetID, title); err != nil {
			return fmt.Errorf("failed to create tab %q: %w", title, err)
		}
	} else if err := c.ClearSheet(spreadsheetID, title); err != nil {
		return fmt.Errorf("failed to clear tab %q: %w", title, err)
	}

	if err := c.WriteValues(spreadsheetID, title, values); err != nil {
		return fmt.Errorf("failed to write tab %q: %w", title, err)
	}
	return nil
}

// quoteTitle makes a tab title safe to use in A1 notation
func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
