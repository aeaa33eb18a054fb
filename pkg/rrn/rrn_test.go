package rrn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBirthDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
		ok   bool
	}{
		{"male 1900s", "900101-1234567", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"female 1900s", "850505-2345678", time.Date(1985, 5, 5, 0, 0, 0, 0, time.UTC), true},
		{"male 2000s", "030212-3456789", time.Date(2003, 2, 12, 0, 0, 0, 0, time.UTC), true},
		{"female 2000s", "101230-4567890", time.Date(2010, 12, 30, 0, 0, 0, 0, time.UTC), true},
		{"foreigner 1900s", "770707-5678901", time.Date(1977, 7, 7, 0, 0, 0, 0, time.UTC), true},
		{"1800s", "991231-9876543", time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC), true},
		{"leap day", "960229-1234567", time.Date(1996, 2, 29, 0, 0, 0, 0, time.UTC), true},
		{"non-leap feb 29", "950229-1234567", time.Time{}, false},
		{"month 13", "901301-1234567", time.Time{}, false},
		{"day zero", "900100-1234567", time.Time{}, false},
		{"missing dash", "9001011234567", time.Time{}, false},
		{"too short", "900101-1", time.Time{}, false},
		{"letters", "90010a-1234567", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BirthDate(tt.in)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrInvalid)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   string
		want int
	}{
		{"birthday passed this year", "850505-2345678", 39},
		{"birthday later this year", "851105-2345678", 38},
		{"birthday today", "850615-2345678", 39},
		{"born in 2000s", "040616-3456789", 19},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Age(tt.in, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Age("991231-3456789", now)
	assert.ErrorIs(t, err, ErrInvalid, "birth date in the future")
}

func TestMask(t *testing.T) {
	assert.Equal(t, "900101-1******", Mask("900101-1234567"))
	assert.Equal(t, "garbage", Mask("garbage"))
}
