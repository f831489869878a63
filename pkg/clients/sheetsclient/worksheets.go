package sheetsclient

import (
	"context"
	"slices"
	"strings"
)

// EnsureAndOverwriteWorksheet makes the named worksheet hold exactly header followed by rows.
// The worksheet is created if absent, then its whole range is cleared and rewritten from A1.
// Remote errors are returned as *Error without retrying.
func (c *Client) EnsureAndOverwriteWorksheet(
	ctx context.Context,
	spreadsheetID string,
	title string,
	header []interface{},
	rows [][]interface{},
) error {
	titles, err := c.SheetTitles(ctx, spreadsheetID)
	if err != nil {
		return err
	}

	// Sheets compares tab titles case-insensitively
	exists := slices.ContainsFunc(titles, func(existing string) bool {
		return strings.EqualFold(existing, title)
	})
	if !exists {
		if _, err := c.CreateSheet(ctx, spreadsheetID, title); err != nil {
			return err
		}
	}

	if err := c.ClearRange(ctx, spreadsheetID, SheetRange(title)); err != nil {
		return err
	}

	values := make([][]interface{}, 0, len(rows)+1)
	values = append(values, header)
	values = append(values, rows...)

	return c.UpdateValues(ctx, spreadsheetID, SheetRange(title)+"!A1", values)
}

// SheetRange returns the A1 notation addressing an entire worksheet
func SheetRange(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
