package request_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"hotel/transport/http/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	r := httptest.NewRequest("GET", "/?date=2026-03-01&bad=01/03/2026", nil)

	day, err := request.Date(r, "date")
	require.NoError(t, err)
	assert.Equal(t, 2026, day.Year())
	assert.Equal(t, time.March, day.Month())
	assert.Equal(t, 1, day.Day())

	day, err = request.Date(r, "missing")
	require.NoError(t, err)
	assert.True(t, day.IsZero())

	_, err = request.Date(r, "bad")
	assert.Error(t, err)
}

func TestOptionalDate(t *testing.T) {
	r := httptest.NewRequest("GET", "/?from=2026-03-01", nil)

	day, err := request.OptionalDate(r, "from")
	require.NoError(t, err)
	require.NotNil(t, day)

	day, err = request.OptionalDate(r, "to")
	require.NoError(t, err)
	assert.Nil(t, day)
}

func TestInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/?days=7&neg=-1&word=seven", nil)

	days, err := request.Int(r, "days")
	require.NoError(t, err)
	assert.Equal(t, 7, days)

	days, err = request.Int(r, "missing")
	require.NoError(t, err)
	assert.Zero(t, days)

	_, err = request.Int(r, "neg")
	assert.Error(t, err)

	_, err = request.Int(r, "word")
	assert.Error(t, err)
}

func TestString(t *testing.T) {
	r := httptest.NewRequest("GET", "/?search=%20ana%20", nil)

	assert.NotEmpty(t, request.String(r, "search"))
	assert.Empty(t, request.String(r, "missing"))
}
