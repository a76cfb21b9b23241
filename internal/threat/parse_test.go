package threat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatForKey(t *testing.T) {
	tests := map[string]Format{
		"feeds/today.json":  FormatJSON,
		"feeds/TODAY.JSON":  FormatJSON,
		"feeds/today.csv":   FormatCSV,
		"feeds/today.Csv":   FormatCSV,
		"feeds/today.txt":   FormatUnsupported,
		"feeds/json":        FormatUnsupported,
		"feeds/today.json/": FormatUnsupported,
	}
	for key, want := range tests {
		assert.Equal(t, want, FormatForKey(key), key)
	}
}

func TestParseJSON(t *testing.T) {
	t.Run("bare list", func(t *testing.T) {
		out, err := ParseJSON([]byte(`[{"type":"ip","value":"1.2.3.4"}]`))
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "1.2.3.4", out[0]["value"])
		assert.Equal(t, "ip", out[0]["type"])
	})

	t.Run("indicators envelope", func(t *testing.T) {
		out, err := ParseJSON([]byte(`{"indicators":[{"type":"ip","value":"1.2.3.4"}]}`))
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, Fields{"type": "ip", "value": "1.2.3.4"}, out[0])
	})

	t.Run("preserves order", func(t *testing.T) {
		out, err := ParseJSON([]byte(`[{"value":"a"},{"value":"b"},{"value":"c"}]`))
		require.NoError(t, err)
		require.Len(t, out, 3)
		assert.Equal(t, "a", out[0]["value"])
		assert.Equal(t, "b", out[1]["value"])
		assert.Equal(t, "c", out[2]["value"])
	})

	t.Run("other shapes yield nothing", func(t *testing.T) {
		for _, body := range []string{
			`{"items":[{"value":"x"}]}`,
			`{"indicators":{"value":"x"}}`,
			`"just a string"`,
			`42`,
			`null`,
		} {
			out, err := ParseJSON([]byte(body))
			require.NoError(t, err, body)
			assert.Empty(t, out, body)
		}
	})

	t.Run("scalar values are stringified", func(t *testing.T) {
		out, err := ParseJSON([]byte(`[{"value":12345,"active":true,"off":false,"score":0.5,"gone":null,"tags":["a","b"]}]`))
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "12345", out[0]["value"])
		assert.Equal(t, "true", out[0]["active"])
		assert.Equal(t, "false", out[0]["off"])
		assert.Equal(t, "0.5", out[0]["score"])
		assert.Equal(t, `["a","b"]`, out[0]["tags"])
		_, ok := out[0]["gone"]
		assert.False(t, ok, "null values are absent")
	})

	t.Run("non-object elements become empty records", func(t *testing.T) {
		out, err := ParseJSON([]byte(`["1.2.3.4",{"value":"x"}]`))
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Empty(t, out[0])
		assert.Equal(t, "x", out[1]["value"])
	})

	t.Run("byte order mark", func(t *testing.T) {
		out, err := ParseJSON(append([]byte{0xEF, 0xBB, 0xBF}, `[{"value":"x"}]`...))
		require.NoError(t, err)
		require.Len(t, out, 1)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, body := range []string{`[{"value":`, `{"indicators": [}`, ``, `[] []`} {
			_, err := ParseJSON([]byte(body))
			assert.ErrorIs(t, err, ErrDecode, body)
		}
	})
}

func TestParseCSV(t *testing.T) {
	t.Run("header and row", func(t *testing.T) {
		out, err := ParseCSV([]byte("type,value\nip,1.2.3.4\n"))
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "1.2.3.4", out[0]["value"])
		assert.Equal(t, "ip", out[0]["type"])
	})

	t.Run("ragged rows", func(t *testing.T) {
		out, err := ParseCSV([]byte("type,value,source\nip\ndomain,evil.com,feed,extra\n"))
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, Fields{"type": "ip"}, out[0])
		assert.Equal(t, Fields{"type": "domain", "value": "evil.com", "source": "feed"}, out[1])
	})

	t.Run("quoted fields and blank lines", func(t *testing.T) {
		out, err := ParseCSV([]byte("value,type\n\"a, b\",url\n\nc,ip\n"))
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "a, b", out[0]["value"])
		assert.Equal(t, "c", out[1]["value"])
	})

	t.Run("byte order mark", func(t *testing.T) {
		out, err := ParseCSV(append([]byte{0xEF, 0xBB, 0xBF}, "type,value\nip,1.2.3.4\n"...))
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "ip", out[0]["type"])
	})

	t.Run("empty and header only", func(t *testing.T) {
		out, err := ParseCSV(nil)
		require.NoError(t, err)
		assert.Empty(t, out)

		out, err = ParseCSV([]byte("type,value\n"))
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("bare quote in unquoted field", func(t *testing.T) {
		out, err := ParseCSV([]byte("type,value\nurl,http://evil.test/a\"b\nip,1.2.3.4\n"))
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, `http://evil.test/a"b`, out[0]["value"])
		assert.Equal(t, "url", out[0]["type"])
		assert.Equal(t, "1.2.3.4", out[1]["value"])
	})
}

func TestParseObject(t *testing.T) {
	out, err := ParseObject("a/b.JSON", []byte(`[{"value":"x"}]`))
	require.NoError(t, err)
	assert.Len(t, out, 1)

	out, err = ParseObject("a/b.csv", []byte("value\nx\ny\n"))
	require.NoError(t, err)
	assert.Len(t, out, 2)

	out, err = ParseObject("a/b.txt", []byte("anything at all {"))
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	_, err = ParseObject("a/b.json", []byte("{"))
	assert.ErrorIs(t, err, ErrDecode)
}
