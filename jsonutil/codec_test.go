package jsonutil_test

import (
	"testing"
	"time"

	"github.com/Sultan0902/BackendProvider/jsonutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

func TestCodec_EncodesDateAsEpochMillis(t *testing.T) {
	t.Parallel()

	codec := jsonutil.New(jsonutil.WithLocation(time.UTC))

	encoded, err := codec.Encode(event{
		Name:      "launch",
		CreatedAt: time.UnixMilli(1700000000123),
		UpdatedAt: nil,
	})

	require.NoError(t, err)
	require.JSONEq(t, `{"name":"launch","createdAt":1700000000123,"updatedAt":null}`, encoded)
}

func TestCodec_EncodesZeroDateAsNull(t *testing.T) {
	t.Parallel()

	encoded, err := jsonutil.Default.Encode(map[string]time.Time{"at": {}})

	require.NoError(t, err)
	require.JSONEq(t, `{"at":null}`, encoded)
}

func TestCodec_DateRoundTrip(t *testing.T) {
	t.Parallel()

	codec := jsonutil.New()
	original := time.UnixMilli(1546300800000)

	encoded, err := codec.Marshal(original)
	require.NoError(t, err)
	require.Equal(t, "1546300800000", string(encoded))

	decoded, err := jsonutil.Decode[time.Time](codec, encoded)
	require.NoError(t, err)
	require.True(t, original.Equal(decoded))
}

func TestCodec_DecodesDate(t *testing.T) {
	t.Parallel()

	codec := jsonutil.New(jsonutil.WithLocation(time.UTC))

	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{
			name:     "epoch millis number",
			input:    `{"createdAt":1546300800000}`,
			expected: time.UnixMilli(1546300800000),
		},
		{
			name:     "epoch millis string",
			input:    `{"createdAt":"1546300800000"}`,
			expected: time.UnixMilli(1546300800000),
		},
		{
			name:     "fractional number is truncated",
			input:    `{"createdAt":1546300800000.9}`,
			expected: time.UnixMilli(1546300800000),
		},
		{
			name:     "formatted date",
			input:    `{"createdAt":"November 22, 2018 09:30 PM"}`,
			expected: time.Date(2018, time.November, 22, 21, 30, 0, 0, time.UTC),
		},
		{
			name:     "formatted date without hour padding",
			input:    `{"createdAt":"March 5, 2019 7:05 AM"}`,
			expected: time.Date(2019, time.March, 5, 7, 5, 0, 0, time.UTC),
		},
		{
			name:     "lowercase marker",
			input:    `{"createdAt":"March 5, 2020 03:04 pm"}`,
			expected: time.Date(2020, time.March, 5, 15, 4, 0, 0, time.UTC),
		},
		{
			name:     "short month name",
			input:    `{"createdAt":"Mar 5, 2020 03:04 PM"}`,
			expected: time.Date(2020, time.March, 5, 15, 4, 0, 0, time.UTC),
		},
		{
			name:     "short month name with lowercase marker",
			input:    `{"createdAt":"Dec 31, 2021 11:59 am"}`,
			expected: time.Date(2021, time.December, 31, 11, 59, 0, 0, time.UTC),
		},
		{
			name:     "unparsable string yields zero",
			input:    `{"createdAt":"yesterday"}`,
			expected: time.Time{},
		},
		{
			name:     "null yields zero",
			input:    `{"createdAt":null}`,
			expected: time.Time{},
		},
		{
			name:     "object yields zero",
			input:    `{"createdAt":{"seconds":1}}`,
			expected: time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			decoded, err := jsonutil.DecodeString[event](codec, tt.input)

			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(decoded.CreatedAt), "got %s", decoded.CreatedAt)
		})
	}
}

func TestCodec_DecodesDatePointer(t *testing.T) {
	t.Parallel()

	codec := jsonutil.New(jsonutil.WithLocation(time.UTC))

	decoded, err := jsonutil.DecodeString[event](codec, `{"name":"x","updatedAt":"not a date"}`)
	require.NoError(t, err)
	require.Nil(t, decoded.UpdatedAt)

	decoded, err = jsonutil.DecodeString[event](codec, `{"name":"x","updatedAt":1546300800000}`)
	require.NoError(t, err)
	require.NotNil(t, decoded.UpdatedAt)
	require.True(t, time.UnixMilli(1546300800000).Equal(*decoded.UpdatedAt))
}

func TestCodec_DecodeFailsOnMalformedInput(t *testing.T) {
	t.Parallel()

	_, err := jsonutil.DecodeString[event](jsonutil.Default, `{"name":`)

	require.ErrorIs(t, err, jsonutil.ErrParse)
}

func TestCodec_DecodeFailsOnTypeMismatch(t *testing.T) {
	t.Parallel()

	_, err := jsonutil.DecodeString[event](jsonutil.Default, `{"name":42}`)

	require.ErrorIs(t, err, jsonutil.ErrParse)
}

func TestCodec_ParseDate(t *testing.T) {
	t.Parallel()

	codec := jsonutil.New(
		jsonutil.WithLocation(time.UTC),
		jsonutil.WithDateLayouts(time.RFC3339),
	)

	date, ok := codec.ParseDate("2020-01-02T03:04:05Z")
	require.True(t, ok)
	require.Equal(t, time.Date(2020, time.January, 2, 3, 4, 5, 0, time.UTC), date)

	_, ok = codec.ParseDate("November 22, 2018 09:30 PM")
	require.False(t, ok)
}
