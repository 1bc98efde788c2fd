package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Date
		wantErr  bool
	}{
		{"date only", `"2025-12-31"`, NewDate(2025, 12, 31), false},
		{"rfc3339 keeps the calendar day", `"2025-12-31T23:30:00+02:00"`, NewDate(2025, 12, 31), false},
		{"null", `null`, Date{}, false},
		{"empty string", `""`, Date{}, false},
		{"free text", `"end of year"`, Date{}, true},
		{"number", `20251231`, Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(d.Time), "got %s", d)
		})
	}
}

func TestDate_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(NewDate(2025, 12, 31))
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-12-31"`, string(out))

	out, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestGoal_DecodesDateOnlyDeadline(t *testing.T) {
	var g Goal
	err := json.Unmarshal([]byte(`{"id":"g-1","title":"Grow","category":"revenue","current":78500,"target":100000,"deadline":"2025-12-31"}`), &g)
	require.NoError(t, err)
	assert.Equal(t, 2025, g.Deadline.Year())
	assert.Equal(t, time.December, g.Deadline.Month())
	assert.Equal(t, 31, g.Deadline.Day())
	assert.Equal(t, 78, g.Progress())
}
