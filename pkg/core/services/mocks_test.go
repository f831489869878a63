package services

import (
	"context"
	"errors"

	"github.com/jakechorley/volunteer-hours/pkg/core/model"
)

// mockStore is an in-memory implementation of the store interfaces used by services
type mockStore struct {
	volunteers []model.Volunteer
	events     []model.Event
	settings   *model.Settings

	getErr  error
	saveErr error
}

func (m *mockStore) GetVolunteers(ctx context.Context) ([]model.Volunteer, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.volunteers, nil
}

func (m *mockStore) InsertVolunteer(ctx context.Context, volunteer model.Volunteer) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.volunteers = append(m.volunteers, volunteer)
	return nil
}

func (m *mockStore) DeleteVolunteerCascade(ctx context.Context, volunteerID string) (bool, error) {
	if m.saveErr != nil {
		return false, m.saveErr
	}

	var remaining []model.Volunteer
	for _, v := range m.volunteers {
		if v.ID != volunteerID {
			remaining = append(remaining, v)
		}
	}
	if len(remaining) == len(m.volunteers) {
		return false, nil
	}

	var kept []model.Event
	for _, e := range m.events {
		if e.VolunteerID != volunteerID {
			kept = append(kept, e)
		}
	}

	m.volunteers = remaining
	m.events = kept
	return true, nil
}

func (m *mockStore) GetEvents(ctx context.Context) ([]model.Event, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.events, nil
}

func (m *mockStore) InsertEvent(ctx context.Context, event model.Event) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockStore) GetSettings(ctx context.Context) (*model.Settings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.settings == nil {
		return &model.Settings{AdminPassword: "admin123"}, nil
	}
	copied := *m.settings
	return &copied, nil
}

func (m *mockStore) SaveSettings(ctx context.Context, settings *model.Settings) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.settings = settings
	return nil
}

// worksheetWrite records one EnsureAndOverwriteWorksheet call
type worksheetWrite struct {
	SpreadsheetID string
	Title         string
	Header        []interface{}
	Rows          [][]interface{}
}

// mockWorksheetWriter records writes and optionally fails on a given title
type mockWorksheetWriter struct {
	writes  []worksheetWrite
	failOn  string
	failErr error
}

func (m *mockWorksheetWriter) EnsureAndOverwriteWorksheet(ctx context.Context, spreadsheetID, title string, header []interface{}, rows [][]interface{}) error {
	m.writes = append(m.writes, worksheetWrite{
		SpreadsheetID: spreadsheetID,
		Title:         title,
		Header:        header,
		Rows:          rows,
	})
	if m.failOn == title {
		return m.failErr
	}
	return nil
}

func (m *mockWorksheetWriter) titles() []string {
	titles := make([]string, len(m.writes))
	for i, w := range m.writes {
		titles[i] = w.Title
	}
	return titles
}

// writerFactory returns a factory that hands out writer and counts invocations
func writerFactory(writer *mockWorksheetWriter, calls *int) WorksheetWriterFactory {
	return func(ctx context.Context, credentialsJSON []byte) (WorksheetWriter, error) {
		*calls++
		return writer, nil
	}
}

func failingWriterFactory(err error) WorksheetWriterFactory {
	return func(ctx context.Context, credentialsJSON []byte) (WorksheetWriter, error) {
		return nil, err
	}
}

var errBoom = errors.New("boom")
