package parser_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/yevent/parser/event"
	"github.com/yevent/parser/parser"
	"github.com/yevent/parser/token"
)

// eventSummary strips source marks, which the scenarios below don't
// assert on, so cmp.Diff output stays readable.
type eventSummary struct {
	Type             event.Type
	Anchor           string
	Tag              string
	Value            string
	Implicit         bool
	PlainImplicit    bool
	NonPlainImplicit bool
	Explicit         bool
	Style            token.Style
	Encoding         token.Encoding
}

func summarize(t *testing.T, src string) []eventSummary {
	t.Helper()
	p := parser.New(strings.NewReader(src))
	var out []eventSummary
	for {
		ev, err := p.NextEvent()
		require.NoError(t, err)
		out = append(out, eventSummary{
			Type:             ev.Type,
			Anchor:           ev.Anchor,
			Tag:              ev.Tag,
			Value:            ev.Value,
			Implicit:         ev.Implicit,
			PlainImplicit:    ev.PlainImplicit,
			NonPlainImplicit: ev.NonPlainImplicit,
			Explicit:         ev.Explicit,
			Style:            ev.Style,
			Encoding:         ev.Encoding,
		})
		if ev.Type == event.StreamEnd {
			return out
		}
	}
}

func TestEmptyDocument(t *testing.T) {
	got := summarize(t, "")
	want := []eventSummary{
		{Type: event.StreamStart, Encoding: token.UTF8},
		{Type: event.DocumentStart},
		{Type: event.Scalar, PlainImplicit: true, Style: token.Style(token.PlainScalarStyle)},
		{Type: event.DocumentEnd},
		{Type: event.StreamEnd},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(eventSummary{}, "Encoding")); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, token.UTF8, got[0].Encoding)
}

func TestExplicitDocumentWithDirectives(t *testing.T) {
	src := "%YAML 1.1\n%TAG !yaml! tag:yaml.org,2002:\n---\n!yaml!str foo\n"
	p := parser.New(strings.NewReader(src))

	requireNext(t, p, event.StreamStart)
	start := requireNext(t, p, event.DocumentStart)
	require.True(t, start.Explicit)
	require.NotNil(t, start.Version)
	require.EqualValues(t, 1, start.Version.Major)
	require.EqualValues(t, 1, start.Version.Minor)
	require.Equal(t, []event.TagDirective{{Handle: "!yaml!", Prefix: "tag:yaml.org,2002:"}}, start.Directives)

	scalar := requireNext(t, p, event.Scalar)
	require.Equal(t, "tag:yaml.org,2002:str", scalar.Tag)
	require.Equal(t, "foo", scalar.Value)
	require.Equal(t, token.PlainScalarStyle, scalar.ScalarStyle())

	requireNext(t, p, event.DocumentEnd)
	requireNext(t, p, event.StreamEnd)
}

func TestBlockSequenceWithEmptyEntry(t *testing.T) {
	got := summarize(t, "- a\n-\n- c\n")
	var kinds []event.Type
	var values []string
	for _, e := range got {
		kinds = append(kinds, e.Type)
		if e.Type == event.Scalar {
			values = append(values, e.Value)
		}
	}
	require.Equal(t, []event.Type{
		event.StreamStart, event.DocumentStart,
		event.SequenceStart, event.Scalar, event.Scalar, event.Scalar, event.SequenceEnd,
		event.DocumentEnd, event.StreamEnd,
	}, kinds)
	require.Equal(t, []string{"a", "", "c"}, values)
}

func TestFlowSequenceWithInlineMapping(t *testing.T) {
	p := parser.New(strings.NewReader("[? a : b, c]\n"))

	requireNext(t, p, event.StreamStart)
	requireNext(t, p, event.DocumentStart)
	seq := requireNext(t, p, event.SequenceStart)
	require.Equal(t, token.FlowSequenceStyle, seq.SequenceStyle())

	m := requireNext(t, p, event.MappingStart)
	require.True(t, m.Implicit)
	require.Equal(t, token.FlowMappingStyle, m.MappingStyle())

	k := requireNext(t, p, event.Scalar)
	require.Equal(t, "a", k.Value)
	v := requireNext(t, p, event.Scalar)
	require.Equal(t, "b", v.Value)
	requireNext(t, p, event.MappingEnd)

	c := requireNext(t, p, event.Scalar)
	require.Equal(t, "c", c.Value)

	requireNext(t, p, event.SequenceEnd)
	requireNext(t, p, event.DocumentEnd)
	requireNext(t, p, event.StreamEnd)
}

func TestDoubleQuotedHexEscape(t *testing.T) {
	p := parser.New(strings.NewReader(`"\x41é"` + "\n"))
	requireNext(t, p, event.StreamStart)
	requireNext(t, p, event.DocumentStart)
	scalar := requireNext(t, p, event.Scalar)
	require.Equal(t, "Aé", scalar.Value)
	require.Equal(t, token.DoubleQuotedScalarStyle, scalar.ScalarStyle())
}

func TestNonSpecificTagIsImplicit(t *testing.T) {
	// A bare "!" tag resolves to the literal tag "!" (the non-specific
	// tag), which counts as implicit alongside an absent tag.
	p := parser.New(strings.NewReader("! [a, b]\n"))
	requireNext(t, p, event.StreamStart)
	requireNext(t, p, event.DocumentStart)
	seq := requireNext(t, p, event.SequenceStart)
	require.Equal(t, "!", seq.Tag)
	require.True(t, seq.Implicit)
}

func TestUndefinedTagHandle(t *testing.T) {
	p := parser.New(strings.NewReader("!foo!bar baz\n"))
	requireNext(t, p, event.StreamStart)
	requireNext(t, p, event.DocumentStart)
	_, err := p.NextEvent()
	require.Error(t, err)
	require.Contains(t, err.Error(), "found undefined tag handle")
}

func TestBuiltinHandlesResolveAfterCustomTagDirective(t *testing.T) {
	src := "%TAG !e! tag:example.com,2000:\n---\n!!str foo\n"
	p := parser.New(strings.NewReader(src))
	requireNext(t, p, event.StreamStart)
	requireNext(t, p, event.DocumentStart)
	scalar := requireNext(t, p, event.Scalar)
	require.Equal(t, "tag:yaml.org,2002:str", scalar.Tag)
}

func TestCheckEventDoesNotConsume(t *testing.T) {
	p := parser.New(strings.NewReader("a\n"))
	ok, err := p.CheckEvent(event.StreamStart)
	require.NoError(t, err)
	require.True(t, ok)

	peeked, err := p.PeekEvent()
	require.NoError(t, err)
	require.Equal(t, event.StreamStart, peeked.Type)

	got, err := p.NextEvent()
	require.NoError(t, err)
	require.Equal(t, event.StreamStart, got.Type)
}

func requireNext(t *testing.T, p *parser.Parser, want event.Type) *event.Event {
	t.Helper()
	ev, err := p.NextEvent()
	require.NoError(t, err)
	require.Equal(t, want, ev.Type)
	return ev
}
