// Package logbook is the append-only workout log kept in a spreadsheet.
package logbook

import (
	"context"
	"errors"
	"slices"
	"sync"
)

var ErrSpreadsheetNotFound = errors.New("spreadsheet not found")

// Reader returns every physical row of the log, header included.
type Reader interface {
	Rows(ctx context.Context) ([][]string, error)
}

// Appender adds one row after the last one.
type Appender interface {
	Append(ctx context.Context, row []string) error
}

type Store interface {
	Reader
	Appender
}

// MemoryStore keeps rows in process. Errors can be injected to exercise
// failure paths.
type MemoryStore struct {
	mu      sync.Mutex
	rows    [][]string
	reads   int
	appends int

	ReadErr   error
	AppendErr error
}

func NewMemoryStore(rows ...[]string) *MemoryStore {
	m := &MemoryStore{}
	for _, r := range rows {
		m.rows = append(m.rows, slices.Clone(r))
	}
	return m
}

func (m *MemoryStore) Rows(ctx context.Context) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	out := make([][]string, len(m.rows))
	for i, r := range m.rows {
		out[i] = slices.Clone(r)
	}
	return out, nil
}

func (m *MemoryStore) Append(ctx context.Context, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appends++
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.rows = append(m.rows, slices.Clone(row))
	return nil
}

// Appends counts Append calls, failed ones included.
func (m *MemoryStore) Appends() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appends
}

// Reads counts Rows calls, failed ones included.
func (m *MemoryStore) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// Unavailable is a Store whose every call fails with the same error. It
// stands in when the spreadsheet client could not be built, so the failure
// surfaces on the page instead of at startup.
type Unavailable struct {
	Err error
}

func (u Unavailable) Rows(context.Context) ([][]string, error) { return nil, u.Err }

func (u Unavailable) Append(context.Context, []string) error { return u.Err }
