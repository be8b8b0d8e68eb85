package logbook

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowFromValues(t *testing.T) {
	row, ok := RowFromValues([]string{"2025-12-12", "Gym A (Hammer Strength)", "Workout A", "V-Squat 300x10", "extra"})
	require.True(t, ok)
	assert.Equal(t, LogRow{Date: "2025-12-12", Gym: "Gym A (Hammer Strength)", Workout: "Workout A", Result: "V-Squat 300x10"}, row)

	_, ok = RowFromValues([]string{"2025-12-12", "Gym A", "Workout A"})
	assert.False(t, ok)

	_, ok = RowFromValues(nil)
	assert.False(t, ok)
}

func TestLogRowValues(t *testing.T) {
	r := LogRow{Date: "d", Gym: "g", Workout: "w", Result: "r"}
	assert.Equal(t, []string{"d", "g", "w", "r"}, r.Values())
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore([]string{"Date", "Gym", "Workout", "Log"})

	require.NoError(t, m.Append(ctx, []string{"a", "b", "c", "d"}))
	rows, err := m.Rows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "b", "c", "d"}, rows[1])

	// returned rows are copies
	rows[1][0] = "mutated"
	again, err := m.Rows(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", again[1][0])

	m.AppendErr = errors.New("quota")
	require.Error(t, m.Append(ctx, []string{"x"}))
	assert.Equal(t, 2, m.Appends())

	m.ReadErr = errors.New("offline")
	_, err = m.Rows(ctx)
	require.Error(t, err)
	assert.Equal(t, 3, m.Reads())
}

func TestUnavailable(t *testing.T) {
	var s Store = Unavailable{Err: errors.New("service_account missing")}
	_, err := s.Rows(context.Background())
	require.EqualError(t, err, "service_account missing")
	require.EqualError(t, s.Append(context.Background(), []string{"a"}), "service_account missing")
}
