// Package token defines the wire-level vocabulary shared by the
// scanner and the parser: source positions, the stream encoding, the
// closed set of token kinds the scanner emits, and the scalar/
// collection style enumeration that both tokens and events carry.
package token

import "fmt"

// Position is a source position: a character offset plus the
// line/column it decodes to. All three are zero-based, matching the
// scanner's own bookkeeping. Index counts decoded characters, so it is
// not a byte offset once the input holds multi-byte characters.
type Position struct {
	Index  int
	Line   int
	Column int
}

// Encoding is the detected source encoding, carried on the
// stream-start token and copied verbatim onto the stream-start event.
type Encoding int

const (
	// AnyEncoding lets the scanner choose during BOM sniffing.
	AnyEncoding Encoding = iota
	UTF8
	UTF16LE
	UTF16BE
	UTF32LE
	UTF32BE
)

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "utf-8"
	case UTF16LE:
		return "utf-16-le"
	case UTF16BE:
		return "utf-16-be"
	case UTF32LE:
		return "utf-32-le"
	case UTF32BE:
		return "utf-32-be"
	default:
		return "any"
	}
}

// Style is the raw style tag shared by scalar, sequence and mapping
// tokens/events. The three typed views below exist so call sites read
// naturally (`tok.Style.Scalar()` reads oddly; a plain comparison
// against the typed constants below doesn't).
type Style int8

type ScalarStyle Style

const (
	AnyScalarStyle ScalarStyle = iota
	PlainScalarStyle
	SingleQuotedScalarStyle
	DoubleQuotedScalarStyle
	LiteralScalarStyle
	FoldedScalarStyle
)

func (s ScalarStyle) String() string {
	switch s {
	case PlainScalarStyle:
		return "plain"
	case SingleQuotedScalarStyle:
		return "single-quoted"
	case DoubleQuotedScalarStyle:
		return "double-quoted"
	case LiteralScalarStyle:
		return "literal"
	case FoldedScalarStyle:
		return "folded"
	default:
		return "any"
	}
}

type SequenceStyle Style

const (
	AnySequenceStyle SequenceStyle = iota
	BlockSequenceStyle
	FlowSequenceStyle
)

func (s SequenceStyle) String() string {
	if s == FlowSequenceStyle {
		return "flow"
	}
	return "block"
}

type MappingStyle Style

const (
	AnyMappingStyle MappingStyle = iota
	BlockMappingStyle
	FlowMappingStyle
)

func (s MappingStyle) String() string {
	if s == FlowMappingStyle {
		return "flow"
	}
	return "block"
}

// Type is the closed set of token kinds the scanner produces (§6).
type Type int

const (
	NoToken Type = iota
	StreamStart
	StreamEnd
	VersionDirective
	TagDirective
	GenericDirective
	DocumentStart
	DocumentEnd
	BlockSequenceStart
	BlockMappingStart
	BlockEnd
	FlowSequenceStart
	FlowSequenceEnd
	FlowMappingStart
	FlowMappingEnd
	BlockEntry
	FlowEntry
	Key
	Value
	Alias
	Anchor
	Tag
	Scalar
)

var typeNames = [...]string{
	NoToken:            "NO-TOKEN",
	StreamStart:        "STREAM-START",
	StreamEnd:          "STREAM-END",
	VersionDirective:   "VERSION-DIRECTIVE",
	TagDirective:       "TAG-DIRECTIVE",
	GenericDirective:   "DIRECTIVE",
	DocumentStart:      "DOCUMENT-START",
	DocumentEnd:        "DOCUMENT-END",
	BlockSequenceStart: "BLOCK-SEQUENCE-START",
	BlockMappingStart:  "BLOCK-MAPPING-START",
	BlockEnd:           "BLOCK-END",
	FlowSequenceStart:  "FLOW-SEQUENCE-START",
	FlowSequenceEnd:    "FLOW-SEQUENCE-END",
	FlowMappingStart:   "FLOW-MAPPING-START",
	FlowMappingEnd:     "FLOW-MAPPING-END",
	BlockEntry:         "BLOCK-ENTRY",
	FlowEntry:          "FLOW-ENTRY",
	Key:                "KEY",
	Value:              "VALUE",
	Alias:              "ALIAS",
	Anchor:             "ANCHOR",
	Tag:                "TAG",
	Scalar:             "SCALAR",
}

// KindName is the human-readable token name; String returns the same
// text. The parser's syntax error messages do not include it: they name
// what was expected, not the token that was found.
func (t Type) KindName() string {
	if int(t) < 0 || int(t) >= len(typeNames) || typeNames[t] == "" {
		return fmt.Sprintf("<unknown token %d>", int(t))
	}
	return typeNames[t]
}

func (t Type) String() string { return t.KindName() }

// DirectiveKind distinguishes the three directive token shapes.
type DirectiveKind int8

const (
	OtherDirective DirectiveKind = iota
	YAMLDirective
	TAGDirectiveKind
)

// Token is one lexical unit produced by the scanner. Fields not
// relevant to a given Type are left zero.
type Token struct {
	Type       Type
	Start, End Position

	// Encoding is set on StreamStart tokens only.
	Encoding Encoding

	// Value holds the raw payload: the alias/anchor/scalar text, or
	// (for Tag and TagDirective tokens) the handle concatenated with
	// the suffix/prefix, split at ValueDivider.
	Value []byte

	// ValueDivider is the byte offset into Value separating a tag
	// handle from its suffix (Tag tokens) or a tag-directive handle
	// from its prefix (TagDirective tokens).
	ValueDivider int

	// Style is set on Scalar tokens.
	Style ScalarStyle

	// DirectiveKind is set on the three directive token types;
	// Major/Minor are set on VersionDirective tokens only.
	DirectiveKind DirectiveKind
	Major, Minor  int8
}
