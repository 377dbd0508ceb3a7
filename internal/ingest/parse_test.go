package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldside/squadscout/internal/domain"
)

func TestParseCurrency(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"€115.5M", 115_500_000},
		{"€440K", 440_000},
		{"€0", 0},
		{"", 0},
		{"-", 0},
		{"€1,200,000", 1_200_000},
		{" €2.5M ", 2_500_000},
		{"12500", 12_500},
		{"garbage", 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, parseCurrency(tc.in), "input %q", tc.in)
	}
}

func TestParseDate(t *testing.T) {
	t.Run("bare year becomes end of year", func(t *testing.T) {
		got, err := parseDate("2027")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC), *got)
	})

	t.Run("full ISO date parses as-is", func(t *testing.T) {
		got, err := parseDate("2027-06-30")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC), *got)
	})

	t.Run("blank yields nil without an error", func(t *testing.T) {
		for _, in := range []string{"", "   "} {
			got, err := parseDate(in)
			assert.NoError(t, err)
			assert.Nil(t, got)
		}
	})

	t.Run("unparsable yields nil with an error", func(t *testing.T) {
		for _, in := range []string{"soon", "20x7"} {
			got, err := parseDate(in)
			assert.Error(t, err, "input %q", in)
			assert.Nil(t, got)
		}
	})
}

func TestAgeFromDOB(t *testing.T) {
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	age := func(s string) int {
		t.Helper()
		got, err := ageFromDOB(s, now)
		require.NoError(t, err)
		return got
	}

	t.Run("birthday already passed this year", func(t *testing.T) {
		assert.Equal(t, 26, age("2000-03-15"))
	})

	t.Run("birthday not yet occurred this year", func(t *testing.T) {
		assert.Equal(t, 25, age("2000-11-02"))
	})

	t.Run("computed age below 16 clamps to 16", func(t *testing.T) {
		assert.Equal(t, 16, age("2016-01-01"))
	})

	t.Run("computed age above 45 clamps to 45", func(t *testing.T) {
		assert.Equal(t, 45, age("1956-01-01"))
	})

	t.Run("missing DOB defaults to 25 without an error", func(t *testing.T) {
		assert.Equal(t, 25, age(""))
	})

	t.Run("unparsable DOB defaults to 25 with an error", func(t *testing.T) {
		got, err := ageFromDOB("unknown", now)
		assert.Error(t, err)
		assert.Equal(t, 25, got)
	})
}

func TestPrimaryPosition(t *testing.T) {
	t.Run("first of a comma-separated list wins", func(t *testing.T) {
		assert.Equal(t, domain.PositionST, primaryPosition("ST,CF,LW"))
	})

	t.Run("whitespace is trimmed", func(t *testing.T) {
		assert.Equal(t, domain.PositionGK, primaryPosition(" GK "))
	})

	t.Run("unknown or missing defaults to CM", func(t *testing.T) {
		assert.Equal(t, domain.PositionCM, primaryPosition("SW"))
		assert.Equal(t, domain.PositionCM, primaryPosition(""))
	})
}

func TestSafeInt(t *testing.T) {
	assert.Equal(t, 42, safeInt("42", 0))
	assert.Equal(t, 42, safeInt(" 42.9 ", 0))
	assert.Equal(t, 7, safeInt("", 7))
	assert.Equal(t, 7, safeInt("   ", 7))
	assert.Equal(t, 7, safeInt("n/a", 7))
}

func TestDeriveSkill(t *testing.T) {
	t.Run("max of both columns when primary is positive", func(t *testing.T) {
		assert.Equal(t, 88, deriveSkill("81", "88"))
		assert.Equal(t, 81, deriveSkill("81", "40"))
	})

	t.Run("primary missing or zero gives flat 50", func(t *testing.T) {
		assert.Equal(t, 50, deriveSkill("", "90"))
		assert.Equal(t, 50, deriveSkill("0", "90"))
	})

	t.Run("secondary missing falls back to 50", func(t *testing.T) {
		assert.Equal(t, 50, deriveSkill("30", ""))
	})
}

func TestClampSkill(t *testing.T) {
	// Lower bound is 1, not 0: downstream display logic depends on
	// non-zero attributes.
	assert.Equal(t, 1, clampSkill(0))
	assert.Equal(t, 1, clampSkill(-4))
	assert.Equal(t, 99, clampSkill(150))
	assert.Equal(t, 60, clampSkill(60))
}

func TestClampRating(t *testing.T) {
	assert.Equal(t, 40, clampRating("12"))
	assert.Equal(t, 99, clampRating("140"))
	assert.Equal(t, 75, clampRating(""))
	assert.Equal(t, 88, clampRating("88"))
}
