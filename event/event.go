// Package event defines the parser's sole output vocabulary: the
// flat, linear event stream described by spec.md §3, plus the
// TagDirective value that document-start events carry.
package event

import (
	"fmt"

	"github.com/yevent/parser/token"
)

// Type is the closed set of event kinds (§3).
type Type int8

const (
	NoEvent Type = iota
	StreamStart
	StreamEnd
	DocumentStart
	DocumentEnd
	Alias
	Scalar
	SequenceStart
	SequenceEnd
	MappingStart
	MappingEnd
)

var typeNames = [...]string{
	NoEvent:       "none",
	StreamStart:   "stream-start",
	StreamEnd:     "stream-end",
	DocumentStart: "document-start",
	DocumentEnd:   "document-end",
	Alias:         "alias",
	Scalar:        "scalar",
	SequenceStart: "sequence-start",
	SequenceEnd:   "sequence-end",
	MappingStart:  "mapping-start",
	MappingEnd:    "mapping-end",
}

func (t Type) String() string {
	if int(t) < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("unknown event %d", int(t))
	}
	return typeNames[t]
}

// TagDirective is a resolved (handle, prefix) pair as processed by
// the directive & tag resolver (§4.2). Handles always start and end
// with '!'.
type TagDirective struct {
	Handle string
	Prefix string
}

// VersionDirective is the parsed %YAML major.minor pair.
type VersionDirective struct {
	Major, Minor int8
}

// Event is the parser's sole output (§3). Only the fields relevant to
// Type are populated; the rest are left zero.
type Event struct {
	Type       Type
	Start, End token.Position

	// Encoding is set on StreamStart only.
	Encoding token.Encoding

	// Version and Directives are set on DocumentStart only.
	Version    *VersionDirective
	Directives []TagDirective

	// Explicit is set on DocumentStart/DocumentEnd: true when the
	// document carried an explicit "---"/"..." marker.
	Explicit bool

	// Anchor is set on Alias, Scalar, SequenceStart, MappingStart.
	Anchor string

	// Tag is set on Scalar, SequenceStart, MappingStart when the node
	// carried (or resolved to) a tag.
	Tag string

	// Value is the decoded scalar text (Scalar only).
	Value string

	// Implicit is the single implicit-resolution flag §3 assigns to
	// SequenceStart/MappingStart.
	Implicit bool

	// PlainImplicit and NonPlainImplicit are the pair of
	// implicit-resolution flags §3 assigns to Scalar.
	PlainImplicit    bool
	NonPlainImplicit bool

	// ScalarStyle/SequenceStyle/MappingStyle view Style through the
	// lens appropriate to Type.
	Style token.Style
}

func (e *Event) ScalarStyle() token.ScalarStyle     { return token.ScalarStyle(e.Style) }
func (e *Event) SequenceStyle() token.SequenceStyle { return token.SequenceStyle(e.Style) }
func (e *Event) MappingStyle() token.MappingStyle   { return token.MappingStyle(e.Style) }
