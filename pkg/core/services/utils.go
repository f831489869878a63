package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jakechorley/volunteer-hours/pkg/core/model"
)

const (
	// VolunteersSheetTitle is the summary worksheet listing every volunteer
	VolunteersSheetTitle = "Volunteers"

	volunteerSheetPrefix = "Volunteer - "
	maxSheetNameLength   = 30
)

var (
	volunteersHeader = []interface{}{"ID", "Name", "Phone", "Email", "Total Hours"}
	eventsHeader     = []interface{}{"ID", "Event", "Location", "Date", "Hours"}
)

// eventDateLayouts are tried in order when ordering events chronologically
var eventDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// SortVolunteersByName returns a copy of volunteers ordered by name, ignoring case.
// Volunteers with equal names keep their stored order.
func SortVolunteersByName(volunteers []model.Volunteer) []model.Volunteer {
	sorted := make([]model.Volunteer, len(volunteers))
	copy(sorted, volunteers)

	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})

	return sorted
}

// SortEventsByDate returns a copy of events in ascending date order.
// Events whose date cannot be parsed are placed last, in their stored order.
func SortEventsByDate(events []model.Event) []model.Event {
	type datedEvent struct {
		event model.Event
		date  time.Time
		ok    bool
	}

	dated := make([]datedEvent, len(events))
	for i, e := range events {
		date, ok := parseEventDate(e.Date)
		dated[i] = datedEvent{event: e, date: date, ok: ok}
	}

	sort.SliceStable(dated, func(i, j int) bool {
		if dated[i].ok != dated[j].ok {
			return dated[i].ok
		}
		return dated[i].date.Before(dated[j].date)
	})

	sorted := make([]model.Event, len(dated))
	for i, d := range dated {
		sorted[i] = d.event
	}
	return sorted
}

func parseEventDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// GroupEventsByVolunteer indexes events by their volunteer ID, preserving stored order
func GroupEventsByVolunteer(events []model.Event) map[string][]model.Event {
	grouped := make(map[string][]model.Event)
	for _, e := range events {
		grouped[e.VolunteerID] = append(grouped[e.VolunteerID], e)
	}
	return grouped
}

// TotalHours sums the numeric hours of the given events; unparsable values count as zero
func TotalHours(events []model.Event) float64 {
	total := 0.0
	for _, e := range events {
		total += e.Hours.Float()
	}
	return total
}

// FormatHours renders hours with exactly two decimal places
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.2f", hours)
}

// WorksheetTitle derives a volunteer's worksheet title from their name.
// Characters other than ASCII letters, digits and spaces become spaces and the name is cut to 30 characters.
func WorksheetTitle(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	sanitized := b.String()
	if len(sanitized) > maxSheetNameLength {
		sanitized = sanitized[:maxSheetNameLength]
	}

	return volunteerSheetPrefix + sanitized
}
