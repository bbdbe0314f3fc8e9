package interval

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Clock
		wantErr error
	}{
		{name: "midnight", raw: "00:00", want: 0},
		{name: "morning", raw: "09:30", want: 9*60 + 30},
		{name: "last minute", raw: "23:59", want: 23*60 + 59},
		{name: "whitespace trimmed", raw: " 14:00 ", want: 14 * 60},
		{name: "missing zero padding", raw: "9:30", wantErr: ErrInvalidFormat},
		{name: "hour out of range", raw: "24:00", wantErr: ErrInvalidFormat},
		{name: "minute out of range", raw: "12:60", wantErr: ErrInvalidFormat},
		{name: "no colon", raw: "0930", wantErr: ErrInvalidFormat},
		{name: "garbage", raw: "ab:cd", wantErr: ErrInvalidFormat},
		{name: "empty", raw: "", wantErr: ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClockString(t *testing.T) {
	assert.Equal(t, "00:00", Clock(0).String())
	assert.Equal(t, "09:05", Clock(9*60+5).String())
	assert.Equal(t, "23:59", Clock(23*60+59).String())
}

func TestClockJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Clock(14*60 + 30))
	require.NoError(t, err)
	assert.Equal(t, `"14:30"`, string(data))

	var c Clock
	require.NoError(t, json.Unmarshal([]byte(`"08:15"`), &c))
	assert.Equal(t, Clock(8*60+15), c)

	assert.Error(t, json.Unmarshal([]byte(`"25:00"`), &c))
}

func TestNewRejectsInvalidRange(t *testing.T) {
	_, err := New(Clock(10*60), Clock(10*60))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(Clock(10*60), Clock(9*60))
	assert.ErrorIs(t, err, ErrInvalidRange)

	iv, err := New(Clock(9*60), Clock(10*60))
	require.NoError(t, err)
	assert.Equal(t, Clock(9*60), iv.Start)
	assert.Equal(t, Clock(10*60), iv.End)
}

func mustInterval(t *testing.T, start, end string) Interval {
	t.Helper()
	iv, err := Parse(start, end)
	require.NoError(t, err)
	return iv
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{name: "disjoint", a: Interval{540, 600}, b: Interval{660, 720}, want: false},
		{name: "adjacent do not overlap", a: Interval{540, 600}, b: Interval{600, 660}, want: false},
		{name: "partial overlap", a: Interval{540, 630}, b: Interval{600, 660}, want: true},
		{name: "contained", a: Interval{540, 720}, b: Interval{600, 660}, want: true},
		{name: "identical overlap", a: Interval{540, 600}, b: Interval{540, 600}, want: true},
		{name: "one minute shared", a: Interval{540, 601}, b: Interval{600, 660}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			// Symmetry holds for every pair.
			assert.Equal(t, Overlaps(tt.a, tt.b), Overlaps(tt.b, tt.a))
		})
	}
}

func TestOverlapsReflexive(t *testing.T) {
	iv := mustInterval(t, "09:00", "10:00")
	assert.True(t, iv.Overlaps(iv))
}

func TestParseDayOfWeek(t *testing.T) {
	d, err := ParseDayOfWeek("MON")
	require.NoError(t, err)
	assert.Equal(t, Monday, d)

	d, err = ParseDayOfWeek("sun")
	require.NoError(t, err)
	assert.Equal(t, Sunday, d)

	_, err = ParseDayOfWeek("FUNDAY")
	assert.ErrorIs(t, err, ErrInvalidDay)
}

func TestDayOfWeekOrdering(t *testing.T) {
	assert.True(t, Monday < Sunday)
	assert.Equal(t, "WED", Wednesday.String())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-15")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-15", d.String())

	_, err = ParseDate("15/06/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDate("2025-13-40")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDateJSONRoundTrip(t *testing.T) {
	d, err := ParseDate("2025-06-15")
	require.NoError(t, err)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-15"`, string(data))

	var got Date
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, got.Equal(d))
}
