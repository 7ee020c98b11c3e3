package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeDoubleQuotedSimpleEscapes(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{``, ``},
		{`no escapes here`, `no escapes here`},
		{`a\nb`, "a\nb"},
		{`tab\there`, "tab\there"},
		{`\"quoted\"`, `"quoted"`},
		{`back\\slash`, `back\slash`},
	}
	for _, c := range cases {
		got, err := DecodeDoubleQuoted([]byte(c.raw))
		require.NoError(t, err)
		require.Equal(t, c.want, got)
	}
}

func TestDecodeDoubleQuotedHexEscapes(t *testing.T) {
	got, err := DecodeDoubleQuoted([]byte(`\x41é`))
	require.NoError(t, err)
	require.Equal(t, "Aé", got)

	got, err = DecodeDoubleQuoted([]byte(`\U0001F600`))
	require.NoError(t, err)
	require.Equal(t, "😀", got)
}

func TestDecodeDoubleQuotedMultiByteEscapeForcesFallback(t *testing.T) {
	// \L (line separator, U+2028) is 3 UTF-8 bytes decoded from a
	// 2-byte escape: the in-place write can't fit it and must switch
	// to the fallback buffer without corrupting the bytes already
	// written.
	got, err := DecodeDoubleQuoted([]byte(`x\Ly`))
	require.NoError(t, err)
	require.Equal(t, "x"+string(rune(0x2028))+"y", got)
}

func TestDecodeDoubleQuotedCompositionality(t *testing.T) {
	prefix := `hello `
	suffix := `\nworld`
	whole, err := DecodeDoubleQuoted([]byte(prefix + suffix))
	require.NoError(t, err)

	decodedPrefix, err := DecodeDoubleQuoted([]byte(prefix))
	require.NoError(t, err)
	decodedSuffix, err := DecodeDoubleQuoted([]byte(suffix))
	require.NoError(t, err)
	require.Equal(t, decodedPrefix+decodedSuffix, whole)
}

func TestDecodeDoubleQuotedUnknownEscape(t *testing.T) {
	_, err := DecodeDoubleQuoted([]byte(`\q`))
	require.Error(t, err)
}

func TestDecodeDoubleQuotedBadHexDigit(t *testing.T) {
	_, err := DecodeDoubleQuoted([]byte(`\x4g`))
	require.Error(t, err)
}
