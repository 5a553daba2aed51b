package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	now := time.Date(2026, 12, 20, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		args          []string
		expectedYear  int
		expectedMonth int
		wantErr       bool
	}{
		{name: "Should default to next month across the year boundary", args: nil, expectedYear: 2027, expectedMonth: 1},
		{name: "Should keep the default month when only the year is given", args: []string{"2028"}, expectedYear: 2028, expectedMonth: 1},
		{name: "Should use both arguments", args: []string{"2026", "3"}, expectedYear: 2026, expectedMonth: 3},
		{name: "Should reject a month out of range", args: []string{"2026", "13"}, wantErr: true},
		{name: "Should reject a non numeric year", args: []string{"next"}, wantErr: true},
		{name: "Should reject extra arguments", args: []string{"2026", "3", "1"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, month, err := parseArgs(tt.args, now)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedYear, year)
			assert.Equal(t, tt.expectedMonth, month)
		})
	}
}
