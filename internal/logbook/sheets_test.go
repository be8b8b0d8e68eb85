package logbook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

// fakeGoogle serves the handful of Drive and Sheets endpoints the store uses.
type fakeGoogle struct {
	t *testing.T

	mu        sync.Mutex
	files     []map[string]string
	sheetName string
	values    [][]string
	lastQuery string
	appendQS  string
	failValue bool
}

func (f *fakeGoogle) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/files", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.lastQuery = r.URL.Query().Get("q")
		writeJSON(f.t, w, map[string]any{"files": f.files})
	})
	mux.HandleFunc("/v4/spreadsheets/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		rest := strings.TrimPrefix(r.URL.Path, "/v4/spreadsheets/")
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(rest, ":append"):
			f.appendQS = r.URL.RawQuery
			var body struct {
				Values [][]string `json:"values"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			f.values = append(f.values, body.Values...)
			writeJSON(f.t, w, map[string]any{
				"spreadsheetId": "sheet-123",
				"updates":       map[string]any{"updatedRange": f.sheetName + "!A2:D2", "updatedRows": 1},
			})
		case strings.Contains(rest, "/values/"):
			if f.failValue {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission"}}`))
				return
			}
			writeJSON(f.t, w, map[string]any{"range": f.sheetName + "!A1:D10", "majorDimension": "ROWS", "values": f.values})
		default:
			writeJSON(f.t, w, map[string]any{
				"spreadsheetId": rest,
				"sheets": []any{
					map[string]any{"properties": map[string]any{"sheetId": 0, "title": f.sheetName}},
					map[string]any{"properties": map[string]any{"sheetId": 1, "title": "Other"}},
				},
			})
		}
	})
	return mux
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode: %v", err)
	}
}

func newTestStore(t *testing.T, f *fakeGoogle) *SheetsStore {
	t.Helper()
	ts := httptest.NewServer(f.handler())
	t.Cleanup(ts.Close)
	s, err := NewSheetsStoreWithOptions(context.Background(), "Powerbuilder Data", nil,
		option.WithEndpoint(ts.URL+"/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	return s
}

func TestSheetsStore_Rows(t *testing.T) {
	f := &fakeGoogle{
		t:         t,
		files:     []map[string]string{{"id": "sheet-123", "name": "Powerbuilder Data"}},
		sheetName: "Sheet1",
		values: [][]string{
			{"Date", "Gym", "Workout", "Log"},
			{"2025-12-12", "Gym A (Hammer Strength)", "Workout A", "V-Squat 300x10"},
			{"2025-12-14", "Gym B (Cables)"},
		},
	}
	s := newTestStore(t, f)

	rows, err := s.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "V-Squat 300x10", rows[1][3])
	assert.Len(t, rows[2], 2)
	assert.Contains(t, f.lastQuery, "name = 'Powerbuilder Data'")
	assert.Contains(t, f.lastQuery, spreadsheetMimeType)
}

func TestSheetsStore_Append(t *testing.T) {
	f := &fakeGoogle{
		t:         t,
		files:     []map[string]string{{"id": "sheet-123", "name": "Powerbuilder Data"}},
		sheetName: "Sheet1",
		values:    [][]string{{"Date", "Gym", "Workout", "Log"}},
	}
	s := newTestStore(t, f)

	row := []string{"2025-12-15", "Gym A (Hammer Strength)", "Workout A", "Flat Press 140x10\nCurls 35x12"}
	require.NoError(t, s.Append(context.Background(), row))

	require.Len(t, f.values, 2)
	assert.Equal(t, row, f.values[1])
	assert.Contains(t, f.appendQS, "valueInputOption=RAW")
	assert.Contains(t, f.appendQS, "insertDataOption=INSERT_ROWS")
}

func TestSheetsStore_NotFound(t *testing.T) {
	f := &fakeGoogle{t: t, sheetName: "Sheet1"}
	s := newTestStore(t, f)

	_, err := s.Rows(context.Background())
	require.ErrorIs(t, err, ErrSpreadsheetNotFound)

	err = s.Append(context.Background(), []string{"a", "b", "c", "d"})
	require.ErrorIs(t, err, ErrSpreadsheetNotFound)
}

func TestSheetsStore_APIError(t *testing.T) {
	f := &fakeGoogle{
		t:         t,
		files:     []map[string]string{{"id": "sheet-123", "name": "Powerbuilder Data"}},
		sheetName: "Sheet1",
		failValue: true,
	}
	s := newTestStore(t, f)

	_, err := s.Rows(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get values")
	assert.Contains(t, err.Error(), "permission")
}

func TestEscaping(t *testing.T) {
	assert.Equal(t, `Bob\'s Log`, escapeQuery("Bob's Log"))
	assert.Equal(t, `'Sheet1'`, a1Sheet("Sheet1"))
	assert.Equal(t, `'Bob''s'`, a1Sheet("Bob's"))
}

func TestNewSheetsStore_BadCredentials(t *testing.T) {
	_, err := NewSheetsStore(context.Background(), "Powerbuilder Data", []byte("{not json"), nil)
	require.Error(t, err)
}
