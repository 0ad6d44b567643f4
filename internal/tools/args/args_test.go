package args

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount(t *testing.T) {
	assert.Equal(t, "default", Account(map[string]any{}))
	assert.Equal(t, "default", Account(map[string]any{"account": ""}))
	assert.Equal(t, "work", Account(map[string]any{"account": "work"}))
	assert.Equal(t, "default", Account(map[string]any{"account": 42}))
}

func TestString(t *testing.T) {
	v, err := String(map[string]any{"query": "in:inbox"}, "query")
	require.NoError(t, err)
	assert.Equal(t, "in:inbox", v)

	_, err = String(map[string]any{}, "query")
	assert.EqualError(t, err, "query is required")

	_, err = String(map[string]any{"query": ""}, "query")
	assert.Error(t, err)
}

func TestOptionalString(t *testing.T) {
	assert.Equal(t, "primary", OptionalString(map[string]any{}, "calendarId", "primary"))
	assert.Equal(t, "work", OptionalString(map[string]any{"calendarId": "work"}, "calendarId", "primary"))
}

func TestInt64(t *testing.T) {
	// JSON numbers arrive as float64
	assert.Equal(t, int64(25), Int64(map[string]any{"maxResults": float64(25)}, "maxResults", 10))
	assert.Equal(t, int64(10), Int64(map[string]any{}, "maxResults", 10))
	assert.Equal(t, int64(7), Int64(map[string]any{"maxResults": 7}, "maxResults", 10))
	assert.Equal(t, int64(10), Int64(map[string]any{"maxResults": "25"}, "maxResults", 10))
}

func TestRequiredInt64(t *testing.T) {
	v, err := RequiredInt64(map[string]any{"index": float64(3)}, "index")
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	_, err = RequiredInt64(map[string]any{}, "index")
	assert.EqualError(t, err, "index is required")
}

func TestBool(t *testing.T) {
	assert.True(t, Bool(map[string]any{"isHTML": true}, "isHTML", false))
	assert.False(t, Bool(map[string]any{}, "isHTML", false))
	assert.True(t, Bool(map[string]any{"isHTML": "yes"}, "isHTML", true))
}

func TestStringList(t *testing.T) {
	list, err := StringList(map[string]any{"attendees": []any{"a@example.com", "b@example.com"}}, "attendees")
	require.NoError(t, err)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, list)

	list, err = StringList(map[string]any{}, "attendees")
	require.NoError(t, err)
	assert.Nil(t, list)

	_, err = StringList(map[string]any{"attendees": []any{"a@example.com", 42}}, "attendees")
	assert.EqualError(t, err, "attendees[1] must be a string")

	_, err = StringList(map[string]any{"attendees": "a@example.com"}, "attendees")
	assert.Error(t, err)
}

func TestStringOrList(t *testing.T) {
	single, err := StringOrList(map[string]any{"messageIds": "abc"}, "messageIds")
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, single)

	multi, err := StringOrList(map[string]any{"messageIds": []any{"abc", "def"}}, "messageIds")
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "def"}, multi)

	_, err = StringOrList(map[string]any{}, "messageIds")
	assert.EqualError(t, err, "messageIds is required")

	_, err = StringOrList(map[string]any{"messageIds": []any{}}, "messageIds")
	assert.Error(t, err)

	_, err = StringOrList(map[string]any{"messageIds": []any{""}}, "messageIds")
	assert.Error(t, err)

	_, err = StringOrList(map[string]any{"messageIds": 42}, "messageIds")
	assert.Error(t, err)
}

func TestTable(t *testing.T) {
	table, err := Table(map[string]any{"values": []any{
		[]any{"a", float64(1)},
		[]any{"b", float64(2)},
	}}, "values")
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, []any{"a", float64(1)}, table[0])

	_, err = Table(map[string]any{}, "values")
	assert.Error(t, err)

	_, err = Table(map[string]any{"values": []any{"not-a-row"}}, "values")
	assert.EqualError(t, err, "values[0] must be an array of cell values")
}

func TestTime(t *testing.T) {
	ts, err := Time(map[string]any{"start": "2026-03-01T10:00:00Z"}, "start")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), ts)

	// Bare date for all-day values
	ts, err = Time(map[string]any{"start": "2026-03-01"}, "start")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), ts)

	_, err = Time(map[string]any{"start": "tomorrow"}, "start")
	assert.Error(t, err)

	_, err = Time(map[string]any{}, "start")
	assert.Error(t, err)
}

func TestOptionalTime(t *testing.T) {
	ts, err := OptionalTime(map[string]any{}, "timeMin")
	require.NoError(t, err)
	assert.True(t, ts.IsZero())

	ts, err = OptionalTime(map[string]any{"timeMin": "2026-03-01T10:00:00Z"}, "timeMin")
	require.NoError(t, err)
	assert.False(t, ts.IsZero())

	_, err = OptionalTime(map[string]any{"timeMin": "bogus"}, "timeMin")
	assert.Error(t, err)
}
