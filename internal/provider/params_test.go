package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams_Epoch_AcceptsDateDatetimeAndEpoch(t *testing.T) {
	t.Parallel()

	// 2024-03-15T00:00:00Z
	want := int64(1710460800)

	for name, value := range map[string]any{
		"bare date":    "2024-03-15",
		"rfc3339":      "2024-03-15T00:00:00Z",
		"epoch string": "1710460800",
		"epoch int":    1710460800,
		"epoch int64":  int64(1710460800),
		"epoch float":  float64(1710460800),
		"time.Time":    time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	} {
		got, ok, err := Params{"updated": value}.Epoch("updated")
		require.NoError(t, err, name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
}

func TestParams_Epoch_RejectsGarbage(t *testing.T) {
	t.Parallel()

	_, _, err := Params{"updated": "soon"}.Epoch("updated")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestParams_Epoch_Absent(t *testing.T) {
	t.Parallel()

	_, ok, err := Params{}.Epoch("updated")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParams_List_Shapes(t *testing.T) {
	t.Parallel()

	for name, value := range map[string]any{
		"comma string": "AAPL, MSFT ,GOOG",
		"string slice": []string{"AAPL", "MSFT", "GOOG"},
		"any slice":    []any{"AAPL", "MSFT", "GOOG"},
	} {
		got, err := Params{"symbol": value}.List("symbol")
		require.NoError(t, err, name)
		assert.Equal(t, []string{"AAPL", "MSFT", "GOOG"}, got, name)
	}
}

func TestParams_List_RejectsNonStrings(t *testing.T) {
	t.Parallel()

	_, err := Params{"symbol": []any{"AAPL", 42}}.List("symbol")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestParams_Date_Normalizes(t *testing.T) {
	t.Parallel()

	got, ok, err := Params{"date": "2024-03-15T08:30:00Z"}.Date("date")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestParams_RequireString(t *testing.T) {
	t.Parallel()

	_, err := Params{}.RequireString("symbol")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")

	s, err := Params{"symbol": "AAPL"}.RequireString("symbol")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", s)
}

func TestParams_Bool(t *testing.T) {
	t.Parallel()

	b, err := Params{"with_grade": "true"}.Bool("with_grade")
	require.NoError(t, err)
	assert.True(t, b)

	_, err = Params{"with_grade": "maybe"}.Bool("with_grade")
	require.Error(t, err)
}
