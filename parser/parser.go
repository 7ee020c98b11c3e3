// Package parser implements the grammar driver of the YAML event
// parser: a pull-based state machine that consumes tokens from a
// scanner.Scanner and produces the flat event.Event stream described
// by event.Type. It also owns the two collaborators the grammar
// driver depends on but that don't belong inside the state machine
// itself: the %YAML/%TAG directive and tag-handle resolver
// (directives.go) and the double-quoted scalar escape decoder
// (escape.go).
package parser

import (
	"io"

	"github.com/yevent/parser/event"
	"github.com/yevent/parser/scanner"
	"github.com/yevent/parser/token"
)

// continuation names the next production the grammar driver will run.
// It is the Go-idiomatic re-encoding of a continuation-valued state:
// a tagged enum dispatched by a single switch rather than a table of
// member-function pointers.
type continuation int

const (
	streamStartState continuation = iota
	implicitDocumentStartState
	documentStartState
	documentContentState
	documentEndState
	blockNodeState
	blockNodeOrIndentlessSequenceState
	flowNodeState
	blockSequenceFirstEntryState
	blockSequenceEntryState
	indentlessSequenceEntryState
	blockMappingFirstKeyState
	blockMappingKeyState
	blockMappingValueState
	flowSequenceFirstEntryState
	flowSequenceEntryState
	flowSequenceEntryMappingKeyState
	flowSequenceEntryMappingValueState
	flowSequenceEntryMappingEndState
	flowMappingFirstKeyState
	flowMappingKeyState
	flowMappingValueState
	flowMappingEmptyValueState
	finishedState
)

// Parser is a pull-based YAML event parser. It is reentrant between
// events: each call to NextEvent/PeekEvent resumes exactly where the
// previous one left off.
type Parser struct {
	scanner *scanner.Scanner

	state  continuation
	states []continuation
	marks  []token.Position

	tagDirectives []event.TagDirective

	streamEndProduced bool
	pending           *event.Event
}

// New creates a Parser reading tokens from a scanner built over r.
func New(r io.Reader) *Parser {
	return &Parser{
		scanner: scanner.New(r),
		state:   streamStartState,
	}
}

// CheckEvent reports whether, after materialising the pending event if
// necessary, its Type is one of kinds (or a pending event exists at
// all, if kinds is empty). It never fails because the stream has
// already finished; it simply returns false.
func (p *Parser) CheckEvent(kinds ...event.Type) (bool, error) {
	if p.pending == nil {
		if p.streamEndProduced {
			return false, nil
		}
		ev, err := p.produce()
		if err != nil {
			return false, err
		}
		p.pending = ev
	}
	if len(kinds) == 0 {
		return true, nil
	}
	for _, k := range kinds {
		if p.pending.Type == k {
			return true, nil
		}
	}
	return false, nil
}

// PeekEvent returns the next event without consuming it. Calling it
// after StreamEnd has already been returned is a programming error.
func (p *Parser) PeekEvent() (*event.Event, error) {
	if p.pending == nil {
		if p.streamEndProduced {
			panic("parser: PeekEvent called after stream end")
		}
		ev, err := p.produce()
		if err != nil {
			return nil, err
		}
		p.pending = ev
	}
	return p.pending, nil
}

// NextEvent returns the next event and consumes it.
func (p *Parser) NextEvent() (*event.Event, error) {
	ev, err := p.PeekEvent()
	if err != nil {
		return nil, err
	}
	p.pending = nil
	if ev.Type == event.StreamEnd {
		p.streamEndProduced = true
	}
	return ev, nil
}

func (p *Parser) produce() (*event.Event, error) {
	return p.stateMachine()
}

// pushState records the continuation to resume once the production
// about to run (usually a recursive node parse) completes.
func (p *Parser) pushState(c continuation) {
	p.states = append(p.states, c)
}

// popState resumes the continuation pushed by the innermost open
// production.
func (p *Parser) popState() continuation {
	n := len(p.states) - 1
	c := p.states[n]
	p.states = p.states[:n]
	return c
}

func (p *Parser) pushMark(mark token.Position) {
	p.marks = append(p.marks, mark)
}

func (p *Parser) popMark() token.Position {
	n := len(p.marks) - 1
	mark := p.marks[n]
	p.marks = p.marks[:n]
	return mark
}

func (p *Parser) peek() (*token.Token, error) {
	return p.scanner.PeekToken()
}

func (p *Parser) skipToken() {
	_, _ = p.scanner.GetToken()
}

func (p *Parser) stateMachine() (*event.Event, error) {
	switch p.state {
	case streamStartState:
		return p.parseStreamStart()
	case implicitDocumentStartState:
		return p.parseDocumentStart(true)
	case documentStartState:
		return p.parseDocumentStart(false)
	case documentContentState:
		return p.parseDocumentContent()
	case documentEndState:
		return p.parseDocumentEnd()
	case blockNodeState:
		return p.parseNode(true, false)
	case blockNodeOrIndentlessSequenceState:
		return p.parseNode(true, true)
	case flowNodeState:
		return p.parseNode(false, false)
	case blockSequenceFirstEntryState:
		return p.parseBlockSequenceEntry(true)
	case blockSequenceEntryState:
		return p.parseBlockSequenceEntry(false)
	case indentlessSequenceEntryState:
		return p.parseIndentlessSequenceEntry()
	case blockMappingFirstKeyState:
		return p.parseBlockMappingKey(true)
	case blockMappingKeyState:
		return p.parseBlockMappingKey(false)
	case blockMappingValueState:
		return p.parseBlockMappingValue()
	case flowSequenceFirstEntryState:
		return p.parseFlowSequenceEntry(true)
	case flowSequenceEntryState:
		return p.parseFlowSequenceEntry(false)
	case flowSequenceEntryMappingKeyState:
		return p.parseFlowSequenceEntryMappingKey()
	case flowSequenceEntryMappingValueState:
		return p.parseFlowSequenceEntryMappingValue()
	case flowSequenceEntryMappingEndState:
		return p.parseFlowSequenceEntryMappingEnd()
	case flowMappingFirstKeyState:
		return p.parseFlowMappingKey(true)
	case flowMappingKeyState:
		return p.parseFlowMappingKey(false)
	case flowMappingValueState:
		return p.parseFlowMappingValue(false)
	case flowMappingEmptyValueState:
		return p.parseFlowMappingValue(true)
	default:
		panic("parser: invalid state")
	}
}

func (p *Parser) parseStreamStart() (*event.Event, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Type != token.StreamStart {
		return nil, syntaxError("", token.Position{}, "did not find expected <stream-start>", tok.Start)
	}
	p.state = implicitDocumentStartState
	ev := &event.Event{
		Type:     event.StreamStart,
		Start:    tok.Start,
		End:      tok.End,
		Encoding: tok.Encoding,
	}
	p.skipToken()
	return ev, nil
}
