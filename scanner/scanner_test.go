package scanner

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yevent/parser/token"
)

func tokenTypes(t *testing.T, src string) []token.Type {
	t.Helper()
	s := New(strings.NewReader(src))
	var got []token.Type
	for {
		tok, err := s.GetToken()
		require.NoError(t, err)
		got = append(got, tok.Type)
		if tok.Type == token.StreamEnd {
			return got
		}
	}
}

func TestScanEmptyDocument(t *testing.T) {
	got := tokenTypes(t, "")
	require.Equal(t, []token.Type{token.StreamStart, token.StreamEnd}, got)
}

func TestScanPlainScalar(t *testing.T) {
	got := tokenTypes(t, "hello\n")
	require.Equal(t, []token.Type{token.StreamStart, token.Scalar, token.StreamEnd}, got)
}

func TestScanBlockSequence(t *testing.T) {
	got := tokenTypes(t, "- a\n- b\n")
	require.Equal(t, []token.Type{
		token.StreamStart,
		token.BlockSequenceStart,
		token.BlockEntry, token.Scalar,
		token.BlockEntry, token.Scalar,
		token.BlockEnd,
		token.StreamEnd,
	}, got)
}

func TestScanBlockMapping(t *testing.T) {
	got := tokenTypes(t, "a: 1\nb: 2\n")
	require.Equal(t, []token.Type{
		token.StreamStart,
		token.BlockMappingStart,
		token.Key, token.Scalar, token.Value, token.Scalar,
		token.Key, token.Scalar, token.Value, token.Scalar,
		token.BlockEnd,
		token.StreamEnd,
	}, got)
}

func TestScanFlowSequence(t *testing.T) {
	got := tokenTypes(t, "[a, b]\n")
	require.Equal(t, []token.Type{
		token.StreamStart,
		token.FlowSequenceStart,
		token.Scalar, token.FlowEntry, token.Scalar,
		token.FlowSequenceEnd,
		token.StreamEnd,
	}, got)
}

func TestScanDoubleQuotedScalarRaw(t *testing.T) {
	s := New(strings.NewReader(`"a\nb"` + "\n"))
	tok, err := s.GetToken()
	require.NoError(t, err)
	require.Equal(t, token.StreamStart, tok.Type)

	tok, err = s.GetToken()
	require.NoError(t, err)
	require.Equal(t, token.Scalar, tok.Type)
	require.Equal(t, token.DoubleQuotedScalarStyle, tok.Style)
	// The scanner must NOT decode the \n escape: it hands back the raw
	// two-byte backslash-n sequence for the parser's escape decoder.
	require.Equal(t, `a\nb`, string(tok.Value))
}

func TestScanTagSplitsHandleAndSuffix(t *testing.T) {
	s := New(strings.NewReader("!!str foo\n"))
	_, err := s.GetToken() // stream-start
	require.NoError(t, err)
	tok, err := s.GetToken()
	require.NoError(t, err)
	require.Equal(t, token.Tag, tok.Type)
	require.Equal(t, "!!", string(tok.Value[:tok.ValueDivider]))
	require.Equal(t, "str", string(tok.Value[tok.ValueDivider:]))
}

func TestScanVersionDirective(t *testing.T) {
	s := New(strings.NewReader("%YAML 1.1\n---\nfoo\n"))
	_, err := s.GetToken() // stream-start
	require.NoError(t, err)
	tok, err := s.GetToken()
	require.NoError(t, err)
	require.Equal(t, token.VersionDirective, tok.Type)
	require.EqualValues(t, 1, tok.Major)
	require.EqualValues(t, 1, tok.Minor)
}

func TestScanUnknownDirectiveNameIgnored(t *testing.T) {
	s := New(strings.NewReader("%FOO bar baz\n---\nfoo\n"))
	_, err := s.GetToken() // stream-start
	require.NoError(t, err)
	tok, err := s.GetToken()
	require.NoError(t, err)
	require.Equal(t, token.GenericDirective, tok.Type)
	require.Equal(t, token.OtherDirective, tok.DirectiveKind)

	tok, err = s.GetToken()
	require.NoError(t, err)
	require.Equal(t, token.DocumentStart, tok.Type)
}

func TestScanUTF16LEBOM(t *testing.T) {
	src := []byte{0xff, 0xfe, 'a', 0, '\n', 0}
	s := New(bytes.NewReader(src))
	tok, err := s.GetToken()
	require.NoError(t, err)
	require.Equal(t, token.StreamStart, tok.Type)
	require.Equal(t, token.UTF16LE, tok.Encoding)
}

func TestScanUTF32LEBOM(t *testing.T) {
	src := []byte{0xff, 0xfe, 0x00, 0x00, 'a', 0, 0, 0, '\n', 0, 0, 0}
	s := New(bytes.NewReader(src))
	tok, err := s.GetToken()
	require.NoError(t, err)
	require.Equal(t, token.StreamStart, tok.Type)
	require.Equal(t, token.UTF32LE, tok.Encoding)
}

func TestCheckTokenPeekDoesNotConsume(t *testing.T) {
	s := New(strings.NewReader("a\n"))
	ok, err := s.CheckToken(token.StreamStart)
	require.NoError(t, err)
	require.True(t, ok)

	peeked, err := s.PeekToken()
	require.NoError(t, err)
	require.Equal(t, token.StreamStart, peeked.Type)

	got, err := s.GetToken()
	require.NoError(t, err)
	require.Equal(t, token.StreamStart, got.Type)
}
