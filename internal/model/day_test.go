package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay_Valid(t *testing.T) {
	d, err := ParseDay("2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, Day("2024-06-10"), d)
}

func TestParseDay_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no padding", "2024-6-1"},
		{"slashes", "2024/06/10"},
		{"timestamp", "2024-06-10T07:00"},
		{"garbage", "next tuesday"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDay(tc.input)
			assert.Error(t, err)
		})
	}
}

func TestDay_Ordering(t *testing.T) {
	earlier := Day("2024-06-09")
	later := Day("2024-06-10")

	assert.True(t, earlier.Before(later))
	assert.False(t, later.Before(earlier))
	assert.True(t, later.After(earlier))
	assert.False(t, earlier.Before(earlier), "a day is not before itself")
}

func TestClockMinutes(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"midnight", "00:00", 0, false},
		{"morning", "07:30", 450, false},
		{"last minute", "23:59", 1439, false},
		{"hour overflow", "24:00", 0, true},
		{"minute overflow", "07:60", 0, true},
		{"missing colon", "0730", 0, true},
		{"empty", "", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ClockMinutes(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestComposeLocal(t *testing.T) {
	assert.Equal(t, "2024-06-10T07:00", ComposeLocal("2024-06-10", "07:00"))
	assert.Equal(t, "2024-06-10T00:00", ComposeLocal("2024-06-10", ""), "no clock time composes to midnight")
}
