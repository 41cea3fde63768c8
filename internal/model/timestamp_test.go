package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTime_MidnightCollapsesToDate(t *testing.T) {
	t.Parallel()

	ts := NewTime(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	assert.True(t, ts.DateOnly())
	assert.Equal(t, "2024-03-15", ts.String())
}

func TestNewTime_NonMidnightKeepsTime(t *testing.T) {
	t.Parallel()

	ts := NewTime(time.Date(2024, 3, 15, 8, 33, 31, 0, time.UTC))
	assert.False(t, ts.DateOnly())
	assert.Equal(t, "2024-03-15T08:33:31Z", ts.String())
}

func TestFromUnix_MidnightEpoch(t *testing.T) {
	t.Parallel()

	// 2024-03-15T00:00:00Z
	ts := FromUnix(1710460800)
	assert.True(t, ts.DateOnly())
	assert.Equal(t, "2024-03-15", ts.String())
}

func TestFromUnix_NonMidnightEpoch(t *testing.T) {
	t.Parallel()

	ts := FromUnix(1710460800 + 3661)
	assert.False(t, ts.DateOnly())
	assert.Equal(t, time.Date(2024, 3, 15, 1, 1, 1, 0, time.UTC), ts.Time())
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	ts, err := ParseDate("2023-11-02")
	require.NoError(t, err)
	assert.True(t, ts.DateOnly())
	assert.Equal(t, 2023, ts.Time().Year())

	_, err = ParseDate("11/02/2023")
	require.Error(t, err)
}

func TestTimestamp_MarshalJSON(t *testing.T) {
	t.Parallel()

	date, err := json.Marshal(NewDate(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-02"`, string(date))

	dt, err := json.Marshal(NewTime(time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-02T15:04:05Z"`, string(dt))
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2024-01-02"`), &ts))
	assert.True(t, ts.DateOnly())

	require.NoError(t, json.Unmarshal([]byte(`"2024-01-02T15:04:05Z"`), &ts))
	assert.False(t, ts.DateOnly())

	require.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}
