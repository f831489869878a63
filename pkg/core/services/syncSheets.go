package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-hours/pkg/clients/sheetsclient"
	"github.com/jakechorley/volunteer-hours/pkg/core/model"
)

// SyncErrorKind classifies why a sync failed
type SyncErrorKind string

const (
	SyncErrorConfig     SyncErrorKind = "config"
	SyncErrorPermission SyncErrorKind = "permission"
	SyncErrorRemote     SyncErrorKind = "remote"
)

// SyncResult reports the outcome of a spreadsheet sync.
// Failures are reported here rather than as a Go error.
type SyncResult struct {
	Success         bool          `json:"success"`
	VolunteersCount int           `json:"volunteersCount"`
	EventsCount     int           `json:"eventsCount"`
	Error           string        `json:"error,omitempty"`
	ErrorKind       SyncErrorKind `json:"errorKind,omitempty"`

	// ServiceAccount is the credential identity, set on permission failures
	ServiceAccount string `json:"serviceAccount,omitempty"`
}

// WorksheetWriter defines the spreadsheet operations needed to sync
type WorksheetWriter interface {
	EnsureAndOverwriteWorksheet(ctx context.Context, spreadsheetID, title string, header []interface{}, rows [][]interface{}) error
}

// WorksheetWriterFactory builds a WorksheetWriter from service account credentials
type WorksheetWriterFactory func(ctx context.Context, credentialsJSON []byte) (WorksheetWriter, error)

// NewSheetsWriter is the WorksheetWriterFactory backed by the Google Sheets API
func NewSheetsWriter(ctx context.Context, credentialsJSON []byte) (WorksheetWriter, error) {
	client, err := sheetsclient.NewClient(ctx, credentialsJSON)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// worksheet is one full-overwrite write
type worksheet struct {
	title  string
	header []interface{}
	rows   [][]interface{}
}

// SyncSheets mirrors volunteers and events into the configured spreadsheet.
// It writes a "Volunteers" summary worksheet and one worksheet per volunteer that has events,
// sequentially, stopping at the first failure. Worksheets written before a failure stay written.
func SyncSheets(
	ctx context.Context,
	newWriter WorksheetWriterFactory,
	logger *zap.Logger,
	sheetsCfg *model.SheetsConfig,
	volunteers []model.Volunteer,
	events []model.Event,
) *SyncResult {
	if sheetsCfg == nil || sheetsCfg.SpreadsheetID == "" || !sheetsCfg.HasCredentials() {
		logger.Warn("Sheets sync requested without spreadsheet configuration")
		return &SyncResult{
			Error:     "Google Sheets not configured: spreadsheet ID and credentials are required",
			ErrorKind: SyncErrorConfig,
		}
	}

	logger.Info("Starting sheets sync",
		zap.String("spreadsheet_id", sheetsCfg.SpreadsheetID),
		zap.Int("volunteers", len(volunteers)),
		zap.Int("events", len(events)))

	writer, err := newWriter(ctx, sheetsCfg.Credentials)
	if err != nil {
		logger.Error("Failed to create sheets client", zap.Error(err))
		return failedSync(err, sheetsCfg)
	}

	worksheets, eventsCount := buildWorksheets(volunteers, events)

	for i, ws := range worksheets {
		logger.Debug("Writing worksheet",
			zap.String("title", ws.title),
			zap.Int("rows", len(ws.rows)),
			zap.Int("position", i+1),
			zap.Int("total", len(worksheets)))

		if err := writer.EnsureAndOverwriteWorksheet(ctx, sheetsCfg.SpreadsheetID, ws.title, ws.header, ws.rows); err != nil {
			logger.Error("Sheets sync aborted",
				zap.String("title", ws.title),
				zap.String("op", sheetsOp(err)),
				zap.Int("written", i),
				zap.Error(err))
			return failedSync(err, sheetsCfg)
		}
	}

	logger.Info("Sheets sync complete",
		zap.Int("worksheets", len(worksheets)),
		zap.Int("volunteers", len(volunteers)),
		zap.Int("events", eventsCount))

	return &SyncResult{
		Success:         true,
		VolunteersCount: len(volunteers),
		EventsCount:     eventsCount,
	}
}

// buildWorksheets computes every worksheet for a sync pass, summary first.
// It also returns how many events appear in per-volunteer worksheets; orphaned events are excluded.
func buildWorksheets(volunteers []model.Volunteer, events []model.Event) ([]worksheet, int) {
	sorted := SortVolunteersByName(volunteers)
	byVolunteer := GroupEventsByVolunteer(events)

	summary := worksheet{
		title:  VolunteersSheetTitle,
		header: volunteersHeader,
		rows:   make([][]interface{}, 0, len(sorted)),
	}
	for i, v := range sorted {
		summary.rows = append(summary.rows, []interface{}{
			i + 1,
			v.Name,
			v.Phone,
			v.Email,
			FormatHours(TotalHours(byVolunteer[v.ID])),
		})
	}

	worksheets := []worksheet{summary}
	eventsCount := 0

	for _, v := range sorted {
		volunteerEvents := byVolunteer[v.ID]
		if len(volunteerEvents) == 0 {
			continue
		}

		ws := worksheet{
			title:  WorksheetTitle(v.Name),
			header: eventsHeader,
			rows:   make([][]interface{}, 0, len(volunteerEvents)),
		}
		for i, e := range SortEventsByDate(volunteerEvents) {
			ws.rows = append(ws.rows, []interface{}{
				i + 1,
				e.Name,
				e.Location,
				e.Date,
				string(e.Hours),
			})
		}

		eventsCount += len(volunteerEvents)
		worksheets = append(worksheets, ws)
	}

	return worksheets, eventsCount
}

// sheetsOp names the Sheets call that failed, when err came from the adapter
func sheetsOp(err error) string {
	var sheetsErr *sheetsclient.Error
	if errors.As(err, &sheetsErr) {
		return sheetsErr.Op
	}
	return ""
}

func failedSync(err error, sheetsCfg *model.SheetsConfig) *SyncResult {
	result := &SyncResult{
		Error:     err.Error(),
		ErrorKind: SyncErrorRemote,
	}

	if sheetsclient.IsPermission(err) || strings.Contains(strings.ToLower(err.Error()), "permission") {
		result.ErrorKind = SyncErrorPermission
		result.ServiceAccount = sheetsCfg.ClientEmail()
	}

	return result
}
