package jsonutil_test

import (
	"testing"

	"github.com/Sultan0902/BackendProvider/jsonutil"
	"github.com/stretchr/testify/require"
)

func statusFields() []jsonutil.Field {
	return []jsonutil.Field{
		{Name: "code", Value: 200},
		{Name: "isSuccess", Value: true},
		{Name: "message", Value: "OK"},
	}
}

func TestMergeFields_AppendsToObject(t *testing.T) {
	t.Parallel()

	merged, err := jsonutil.Default.MergeFields([]byte(`{"name":"x"}`), statusFields()...)

	require.NoError(t, err)
	require.Equal(t, `{"name":"x","code":200,"isSuccess":true,"message":"OK"}`, string(merged))
}

func TestMergeFields_OverwritesInPlace(t *testing.T) {
	t.Parallel()

	body := `{"message":"server says hi","data":{"id":1,"tags":["a","b"]},"code":7}`

	merged, err := jsonutil.Default.MergeFields([]byte(body), statusFields()...)

	require.NoError(t, err)
	require.Equal(t,
		`{"message":"OK","data":{"id":1,"tags":["a","b"]},"code":200,"isSuccess":true}`,
		string(merged))
}

func TestMergeFields_CollapsesRepeatedKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "repeated status key",
			body: `{"code":1,"code":2,"a":1}`,
			want: `{"code":200,"a":1,"isSuccess":true,"message":"OK"}`,
		},
		{
			name: "repeated status keys of other types",
			body: `{"code":"x","message":null,"code":"y","n":1,"message":"late"}`,
			want: `{"code":200,"message":"OK","n":1,"isSuccess":true}`,
		},
		{
			name: "repeated payload key keeps last value at first position",
			body: `{"id":1,"name":"x","id":2}`,
			want: `{"id":2,"name":"x","code":200,"isSuccess":true,"message":"OK"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			merged, err := jsonutil.Default.MergeFields([]byte(tt.body), statusFields()...)

			require.NoError(t, err)
			require.Equal(t, tt.want, string(merged))
		})
	}
}

func TestMergeFields_NonObjectBecomesEmptyObject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "empty", body: ""},
		{name: "whitespace", body: "  \n"},
		{name: "plain text", body: "Service Unavailable"},
		{name: "html", body: "<html><body>502</body></html>"},
		{name: "truncated object", body: `{"name":`},
		{name: "array", body: `[1,2,3]`},
		{name: "scalar", body: `42`},
		{name: "null", body: `null`},
		{name: "trailing data", body: `{"name":"x"} {"name":"y"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			merged, err := jsonutil.Default.MergeFields([]byte(tt.body), statusFields()...)

			require.NoError(t, err)
			require.Equal(t, `{"code":200,"isSuccess":true,"message":"OK"}`, string(merged))
		})
	}
}

func TestIsObject(t *testing.T) {
	t.Parallel()

	require.True(t, jsonutil.Default.IsObject([]byte(` {"a":[1,{"b":null}]} `)))
	require.True(t, jsonutil.Default.IsObject([]byte(`{}`)))
	require.False(t, jsonutil.Default.IsObject([]byte(`{"a":1}x`)))
	require.False(t, jsonutil.Default.IsObject([]byte(`"{}"`)))
}
