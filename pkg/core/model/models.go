package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Volunteer represents a registered volunteer
type Volunteer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Event represents hours a volunteer logged at a single event.
// VolunteerID is not enforced as a foreign key.
type Event struct {
	ID          string    `json:"id"`
	VolunteerID string    `json:"volunteerId"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Date        string    `json:"date"` // ISO-8601
	Hours       Hours     `json:"hours"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Hours is a numeric value kept in its textual form.
// It unmarshals from either a JSON string or a JSON number and always marshals as a string.
type Hours string

func (h *Hours) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*h = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*h = Hours(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("hours must be a string or number: %w", err)
	}
	*h = Hours(n.String())
	return nil
}

// Float parses the leading numeric portion of the value.
// Values with no numeric prefix yield 0.
func (h Hours) Float() float64 {
	prefix := numericPrefix.FindString(strings.TrimSpace(string(h)))
	if prefix == "" {
		return 0
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0
	}
	return f
}

// Settings is the persisted application configuration
type Settings struct {
	AdminPassword string        `json:"adminPassword"`
	SheetsConfig  *SheetsConfig `json:"sheetsConfig"`
}

// SheetsConfig identifies the target spreadsheet and the service account used to write it
type SheetsConfig struct {
	SpreadsheetID string          `json:"spreadsheetId"`
	Credentials   json.RawMessage `json:"credentials"`
}

// HasCredentials reports whether a non-empty credential object is present
func (c *SheetsConfig) HasCredentials() bool {
	if c == nil {
		return false
	}
	trimmed := bytes.TrimSpace(c.Credentials)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) && !bytes.Equal(trimmed, []byte("{}"))
}

// ClientEmail returns the service account identity from the credentials, or "" if absent
func (c *SheetsConfig) ClientEmail() string {
	if !c.HasCredentials() {
		return ""
	}
	var creds struct {
		ClientEmail string `json:"client_email"`
	}
	if err := json.Unmarshal(c.Credentials, &creds); err != nil {
		return ""
	}
	return creds.ClientEmail
}
