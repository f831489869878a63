package sheetsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// fakeSheets emulates the subset of the Sheets REST API used by Client
type fakeSheets struct {
	mu     sync.Mutex
	titles []string
	values map[string][][]interface{}
	calls  []string

	failOn      string
	failStatus  int
	failMessage string
}

func newFakeSheets(titles ...string) *fakeSheets {
	return &fakeSheets{
		titles: titles,
		values: make(map[string][][]interface{}),
	}
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/v4/spreadsheets/")

	var call, sheetRange string
	switch {
	case r.Method == http.MethodGet && !strings.Contains(path, "/"):
		call = "get"
	case r.Method == http.MethodPost && strings.HasSuffix(path, ":batchUpdate"):
		call = "batchUpdate"
	case r.Method == http.MethodPost && strings.HasSuffix(path, ":clear"):
		call = "clear"
		sheetRange = strings.TrimSuffix(path[strings.Index(path, "/values/")+len("/values/"):], ":clear")
	case r.Method == http.MethodPut && strings.Contains(path, "/values/"):
		call = "update"
		sheetRange = path[strings.Index(path, "/values/")+len("/values/"):]
	default:
		http.Error(w, "unexpected request "+r.Method+" "+r.URL.Path, http.StatusBadRequest)
		return
	}

	if sheetRange != "" {
		f.calls = append(f.calls, call+" "+sheetRange)
	} else {
		f.calls = append(f.calls, call)
	}

	if f.failOn == call {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.failStatus)
		fmt.Fprintf(w, `{"error":{"code":%d,"message":%q}}`, f.failStatus, f.failMessage)
		return
	}

	switch call {
	case "get":
		spreadsheet := &sheets.Spreadsheet{}
		for i, title := range f.titles {
			spreadsheet.Sheets = append(spreadsheet.Sheets, &sheets.Sheet{
				Properties: &sheets.SheetProperties{SheetId: int64(i), Title: title},
			})
		}
		writeJSON(w, spreadsheet)
	case "batchUpdate":
		var req sheets.BatchUpdateSpreadsheetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp := &sheets.BatchUpdateSpreadsheetResponse{}
		for _, sub := range req.Requests {
			if sub.AddSheet == nil {
				continue
			}
			for _, existing := range f.titles {
				if strings.EqualFold(existing, sub.AddSheet.Properties.Title) {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusBadRequest)
					fmt.Fprintf(w, `{"error":{"code":400,"message":%q}}`,
						fmt.Sprintf("Invalid requests[0].addSheet: A sheet with the name %q already exists.", sub.AddSheet.Properties.Title))
					return
				}
			}
			f.titles = append(f.titles, sub.AddSheet.Properties.Title)
			resp.Replies = append(resp.Replies, &sheets.Response{
				AddSheet: &sheets.AddSheetResponse{
					Properties: &sheets.SheetProperties{
						SheetId: int64(len(f.titles) - 1),
						Title:   sub.AddSheet.Properties.Title,
					},
				},
			})
		}
		writeJSON(w, resp)
	case "clear":
		delete(f.values, sheetRange)
		writeJSON(w, &sheets.ClearValuesResponse{ClearedRange: sheetRange})
	case "update":
		if got := r.URL.Query().Get("valueInputOption"); got != "RAW" {
			http.Error(w, "valueInputOption must be RAW, got "+got, http.StatusBadRequest)
			return
		}
		var vr sheets.ValueRange
		if err := json.NewDecoder(r.Body).Decode(&vr); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.values[sheetRange] = vr.Values
		writeJSON(w, &sheets.UpdateValuesResponse{UpdatedRange: sheetRange})
	}
}

func (f *fakeSheets) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, fake *fakeSheets) *Client {
	t.Helper()

	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := NewClientWithOptions(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return client
}
