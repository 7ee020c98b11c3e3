package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yevent/parser/event"
	"github.com/yevent/parser/token"
)

func TestProcessDirectivesDuplicateYAML(t *testing.T) {
	p := New(strings.NewReader("%YAML 1.1\n%YAML 1.1\n---\nfoo\n"))
	_, err := p.NextEvent() // stream-start
	require.NoError(t, err)
	_, err = p.NextEvent() // document-start: fails while processing directives
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate %YAML directive")
}

func TestProcessDirectivesDuplicateTagHandle(t *testing.T) {
	p := New(strings.NewReader("%TAG !e! tag:one:\n%TAG !e! tag:two:\n---\nfoo\n"))
	_, err := p.NextEvent()
	require.NoError(t, err)
	_, err = p.NextEvent()
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate tag handle")
}

func TestProcessDirectivesIncompatibleVersion(t *testing.T) {
	p := New(strings.NewReader("%YAML 2.0\n---\nfoo\n"))
	_, err := p.NextEvent()
	require.NoError(t, err)
	_, err = p.NextEvent()
	require.Error(t, err)
	require.Contains(t, err.Error(), "incompatible")
}

func TestProcessDirectivesUnknownNameIgnored(t *testing.T) {
	p := New(strings.NewReader("%FOO bar baz\n---\nfoo\n"))
	_, err := p.NextEvent() // stream-start
	require.NoError(t, err)
	start, err := p.NextEvent() // document-start: the unknown directive is silently skipped
	require.NoError(t, err)
	require.True(t, start.Explicit)
	require.Nil(t, start.Version)
	require.Empty(t, start.Directives)
}

func TestResolveTagVerbatimForm(t *testing.T) {
	p := New(strings.NewReader("!<tag:example.com,2000:foo> bar\n"))
	_, err := p.NextEvent() // stream-start
	require.NoError(t, err)
	_, err = p.NextEvent() // document-start
	require.NoError(t, err)
	ev, err := p.NextEvent() // scalar
	require.NoError(t, err)
	require.Equal(t, event.Scalar, ev.Type)
	require.Equal(t, "tag:example.com,2000:foo", ev.Tag)
	require.Equal(t, token.PlainScalarStyle, ev.ScalarStyle())
}
