package parser

import (
	"github.com/yevent/parser/event"
	"github.com/yevent/parser/token"
)

// parseDocumentStart parses:
//
//	implicit_document ::= block_node DOCUMENT-END*
//	explicit_document ::= DIRECTIVE* DOCUMENT-START block_node? DOCUMENT-END*
func (p *Parser) parseDocumentStart(implicit bool) (*event.Event, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	if !implicit {
		for tok.Type == token.DocumentEnd {
			p.skipToken()
			tok, err = p.peek()
			if err != nil {
				return nil, err
			}
		}
	}

	if implicit && tok.Type != token.VersionDirective &&
		tok.Type != token.TagDirective &&
		tok.Type != token.GenericDirective &&
		tok.Type != token.DocumentStart &&
		tok.Type != token.StreamEnd {
		if _, _, err := p.processDirectives(); err != nil {
			return nil, err
		}
		p.pushState(documentEndState)
		p.state = blockNodeState
		return &event.Event{
			Type:  event.DocumentStart,
			Start: tok.Start,
			End:   tok.End,
		}, nil
	}

	if tok.Type != token.StreamEnd {
		startMark := tok.Start
		version, directives, err := p.processDirectives()
		if err != nil {
			return nil, err
		}
		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type != token.DocumentStart {
			return nil, syntaxError("", token.Position{}, "did not find expected <document start>", tok.Start)
		}
		p.pushState(documentEndState)
		p.state = documentContentState
		endMark := tok.End
		ev := &event.Event{
			Type:       event.DocumentStart,
			Start:      startMark,
			End:        endMark,
			Version:    version,
			Directives: directives,
			Explicit:   true,
		}
		p.skipToken()
		return ev, nil
	}

	p.state = finishedState
	ev := &event.Event{
		Type:  event.StreamEnd,
		Start: tok.Start,
		End:   tok.End,
	}
	p.skipToken()
	return ev, nil
}

// parseDocumentContent parses the `block_node?` of explicit_document.
func (p *Parser) parseDocumentContent() (*event.Event, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case token.VersionDirective, token.TagDirective, token.GenericDirective, token.DocumentStart, token.DocumentEnd, token.StreamEnd:
		p.state = p.popState()
		return p.emptyScalarEvent(tok.Start), nil
	default:
		return p.parseNode(true, false)
	}
}

// parseDocumentEnd parses the trailing `DOCUMENT-END*` of either
// document production.
func (p *Parser) parseDocumentEnd() (*event.Event, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	startMark := tok.Start
	endMark := tok.Start

	explicit := false
	if tok.Type == token.DocumentEnd {
		endMark = tok.End
		p.skipToken()
		explicit = true
	}

	p.tagDirectives = p.tagDirectives[:0]
	p.state = documentStartState
	return &event.Event{
		Type:     event.DocumentEnd,
		Start:    startMark,
		End:      endMark,
		Explicit: explicit,
	}, nil
}

// emptyScalarEvent synthesises the empty plain scalar used wherever
// the grammar allows a node to be omitted. Its second implicit flag
// (NonPlainImplicit) is always false here: every call site in this
// implementation reaches this helper only from contexts where the
// upstream teacher's equivalent also hard-codes it to false, a latent
// quirk preserved deliberately rather than "corrected" (see spec's
// Open Questions on implicit_2 / Quoted_implicit).
func (p *Parser) emptyScalarEvent(mark token.Position) *event.Event {
	return &event.Event{
		Type:          event.Scalar,
		Start:         mark,
		End:           mark,
		Value:         "",
		PlainImplicit: true,
		Style:         token.Style(token.PlainScalarStyle),
	}
}

// parseNode parses the productions:
//
//	block_node_or_indentless_sequence ::= ALIAS
//	                                    | properties (block_content | indentless_block_sequence)?
//	                                    | block_content | indentless_block_sequence
//	block_node    ::= ALIAS | properties block_content? | block_content
//	flow_node     ::= ALIAS | properties flow_content? | flow_content
//	properties    ::= TAG ANCHOR? | ANCHOR TAG?
//	block_content ::= block_collection | flow_collection | SCALAR
//	flow_content  ::= flow_collection | SCALAR
func (p *Parser) parseNode(block, indentlessSequence bool) (*event.Event, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	if tok.Type == token.Alias {
		p.state = p.popState()
		ev := &event.Event{
			Type:   event.Alias,
			Start:  tok.Start,
			End:    tok.End,
			Anchor: string(tok.Value),
		}
		p.skipToken()
		return ev, nil
	}

	startMark := tok.Start
	endMark := tok.Start

	var haveTag bool
	var tagHandle, tagSuffix string
	var anchor string
	var tagMark token.Position

	if tok.Type == token.Anchor {
		anchor = string(tok.Value)
		startMark = tok.Start
		endMark = tok.End
		p.skipToken()
		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type == token.Tag {
			haveTag = true
			tagHandle = string(tok.Value[:tok.ValueDivider])
			tagSuffix = string(tok.Value[tok.ValueDivider:])
			tagMark = tok.Start
			endMark = tok.End
			p.skipToken()
			tok, err = p.peek()
			if err != nil {
				return nil, err
			}
		}
	} else if tok.Type == token.Tag {
		haveTag = true
		tagHandle = string(tok.Value[:tok.ValueDivider])
		tagSuffix = string(tok.Value[tok.ValueDivider:])
		startMark = tok.Start
		tagMark = tok.Start
		endMark = tok.End
		p.skipToken()
		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type == token.Anchor {
			anchor = string(tok.Value)
			endMark = tok.End
			p.skipToken()
			tok, err = p.peek()
			if err != nil {
				return nil, err
			}
		}
	}

	var tag string
	if haveTag {
		tag, err = p.resolveTag(tagHandle, tagSuffix, tagMark, startMark)
		if err != nil {
			return nil, err
		}
	}

	implicit := tag == "" || tag == "!"

	if indentlessSequence && tok.Type == token.BlockEntry {
		endMark = tok.End
		p.state = indentlessSequenceEntryState
		return &event.Event{
			Type:     event.SequenceStart,
			Start:    startMark,
			End:      endMark,
			Anchor:   anchor,
			Tag:      tag,
			Implicit: implicit,
			Style:    token.Style(token.BlockSequenceStyle),
		}, nil
	}

	if tok.Type == token.Scalar {
		endMark = tok.End
		value := string(tok.Value)
		if tok.Style == token.DoubleQuotedScalarStyle {
			value, err = DecodeDoubleQuoted(tok.Value)
			if err != nil {
				return nil, err
			}
		}

		var plainImplicit, nonPlainImplicit bool
		if (tag == "" && tok.Style == token.PlainScalarStyle) || tag == "!" {
			plainImplicit = true
		} else if tag == "" {
			nonPlainImplicit = true
		}

		p.state = p.popState()
		ev := &event.Event{
			Type:             event.Scalar,
			Start:            startMark,
			End:              endMark,
			Anchor:           anchor,
			Tag:              tag,
			Value:            value,
			PlainImplicit:    plainImplicit,
			NonPlainImplicit: nonPlainImplicit,
			Style:            token.Style(tok.Style),
		}
		p.skipToken()
		return ev, nil
	}

	if tok.Type == token.FlowSequenceStart {
		endMark = tok.End
		p.state = flowSequenceFirstEntryState
		return &event.Event{
			Type:     event.SequenceStart,
			Start:    startMark,
			End:      endMark,
			Anchor:   anchor,
			Tag:      tag,
			Implicit: implicit,
			Style:    token.Style(token.FlowSequenceStyle),
		}, nil
	}
	if tok.Type == token.FlowMappingStart {
		endMark = tok.End
		p.state = flowMappingFirstKeyState
		return &event.Event{
			Type:     event.MappingStart,
			Start:    startMark,
			End:      endMark,
			Anchor:   anchor,
			Tag:      tag,
			Implicit: implicit,
			Style:    token.Style(token.FlowMappingStyle),
		}, nil
	}
	if block && tok.Type == token.BlockSequenceStart {
		endMark = tok.End
		p.state = blockSequenceFirstEntryState
		return &event.Event{
			Type:     event.SequenceStart,
			Start:    startMark,
			End:      endMark,
			Anchor:   anchor,
			Tag:      tag,
			Implicit: implicit,
			Style:    token.Style(token.BlockSequenceStyle),
		}, nil
	}
	if block && tok.Type == token.BlockMappingStart {
		endMark = tok.End
		p.state = blockMappingFirstKeyState
		return &event.Event{
			Type:     event.MappingStart,
			Start:    startMark,
			End:      endMark,
			Anchor:   anchor,
			Tag:      tag,
			Implicit: implicit,
			Style:    token.Style(token.BlockMappingStyle),
		}, nil
	}

	if anchor != "" || tag != "" {
		p.state = p.popState()
		return &event.Event{
			Type:          event.Scalar,
			Start:         startMark,
			End:           endMark,
			Anchor:        anchor,
			Tag:           tag,
			PlainImplicit: implicit,
			Style:         token.Style(token.PlainScalarStyle),
		}, nil
	}

	return nil, syntaxError("node", startMark, "did not find expected node content", tok.Start)
}

// parseBlockSequenceEntry parses:
//
//	block_sequence ::= BLOCK-SEQUENCE-START (BLOCK-ENTRY block_node?)* BLOCK-END
func (p *Parser) parseBlockSequenceEntry(first bool) (*event.Event, error) {
	if first {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		p.pushMark(tok.Start)
		p.skipToken()
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	if tok.Type == token.BlockEntry {
		mark := tok.End
		p.skipToken()
		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type != token.BlockEntry && tok.Type != token.BlockEnd {
			p.pushState(blockSequenceEntryState)
			return p.parseNode(true, false)
		}
		p.state = blockSequenceEntryState
		return p.emptyScalarEvent(mark), nil
	}
	if tok.Type == token.BlockEnd {
		p.state = p.popState()
		p.popMark()
		ev := &event.Event{
			Type:  event.SequenceEnd,
			Start: tok.Start,
			End:   tok.End,
		}
		p.skipToken()
		return ev, nil
	}

	contextMark := p.popMark()
	return nil, syntaxError("block sequence", contextMark, "did not find expected '-' indicator", tok.Start)
}

// parseIndentlessSequenceEntry parses:
//
//	indentless_sequence ::= (BLOCK-ENTRY block_node?)+
func (p *Parser) parseIndentlessSequenceEntry() (*event.Event, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	if tok.Type == token.BlockEntry {
		mark := tok.End
		p.skipToken()
		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type != token.BlockEntry && tok.Type != token.Key &&
			tok.Type != token.Value && tok.Type != token.BlockEnd {
			p.pushState(indentlessSequenceEntryState)
			return p.parseNode(true, false)
		}
		p.state = indentlessSequenceEntryState
		return p.emptyScalarEvent(mark), nil
	}

	p.state = p.popState()
	return &event.Event{
		Type:  event.SequenceEnd,
		Start: tok.Start,
		End:   tok.Start, // zero-width: reproduces the teacher's own quirk, see SPEC_FULL.md §14
	}, nil
}

// parseBlockMappingKey parses:
//
//	block_mapping ::= BLOCK-MAPPING_START
//	                  ((KEY block_node_or_indentless_sequence?)?
//	                  (VALUE block_node_or_indentless_sequence?)?)*
//	                  BLOCK-END
func (p *Parser) parseBlockMappingKey(first bool) (*event.Event, error) {
	if first {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		p.pushMark(tok.Start)
		p.skipToken()
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	if tok.Type == token.Key {
		mark := tok.End
		p.skipToken()
		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type != token.Key && tok.Type != token.Value && tok.Type != token.BlockEnd {
			p.pushState(blockMappingValueState)
			return p.parseNode(true, true)
		}
		p.state = blockMappingValueState
		return p.emptyScalarEvent(mark), nil
	}
	if tok.Type == token.BlockEnd {
		p.state = p.popState()
		p.popMark()
		ev := &event.Event{
			Type:  event.MappingEnd,
			Start: tok.Start,
			End:   tok.End,
		}
		p.skipToken()
		return ev, nil
	}

	contextMark := p.popMark()
	return nil, syntaxError("block mapping", contextMark, "did not find expected key", tok.Start)
}

// parseBlockMappingValue parses the VALUE half of a block mapping entry.
func (p *Parser) parseBlockMappingValue() (*event.Event, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Type == token.Value {
		mark := tok.End
		p.skipToken()
		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type != token.Key && tok.Type != token.Value && tok.Type != token.BlockEnd {
			p.pushState(blockMappingKeyState)
			return p.parseNode(true, true)
		}
		p.state = blockMappingKeyState
		return p.emptyScalarEvent(mark), nil
	}
	p.state = blockMappingKeyState
	return p.emptyScalarEvent(tok.Start), nil
}

// parseFlowSequenceEntry parses:
//
//	flow_sequence ::= FLOW-SEQUENCE-START
//	                  (flow_sequence_entry FLOW-ENTRY)*
//	                  flow_sequence_entry?
//	                  FLOW-SEQUENCE-END
//	flow_sequence_entry ::= flow_node | KEY flow_node? (VALUE flow_node?)?
func (p *Parser) parseFlowSequenceEntry(first bool) (*event.Event, error) {
	if first {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		p.pushMark(tok.Start)
		p.skipToken()
	}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Type != token.FlowSequenceEnd {
		if !first {
			if tok.Type == token.FlowEntry {
				p.skipToken()
				tok, err = p.peek()
				if err != nil {
					return nil, err
				}
			} else {
				contextMark := p.popMark()
				return nil, syntaxError("flow sequence", contextMark, "did not find expected ',' or ']'", tok.Start)
			}
		}

		if tok.Type == token.Key {
			p.state = flowSequenceEntryMappingKeyState
			ev := &event.Event{
				Type:     event.MappingStart,
				Start:    tok.Start,
				End:      tok.End,
				Implicit: true,
				Style:    token.Style(token.FlowMappingStyle),
			}
			p.skipToken()
			return ev, nil
		}
		if tok.Type != token.FlowSequenceEnd {
			p.pushState(flowSequenceEntryState)
			return p.parseNode(false, false)
		}
	}

	p.state = p.popState()
	p.popMark()
	ev := &event.Event{
		Type:  event.SequenceEnd,
		Start: tok.Start,
		End:   tok.End,
	}
	p.skipToken()
	return ev, nil
}

// parseFlowSequenceEntryMappingKey parses the inline `KEY` of a
// set-syntax entry (`[? a : b, c]`) inside a flow sequence.
func (p *Parser) parseFlowSequenceEntryMappingKey() (*event.Event, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Type != token.Value && tok.Type != token.FlowEntry && tok.Type != token.FlowSequenceEnd {
		p.pushState(flowSequenceEntryMappingValueState)
		return p.parseNode(false, false)
	}
	mark := tok.End
	p.skipToken()
	p.state = flowSequenceEntryMappingValueState
	return p.emptyScalarEvent(mark), nil
}

func (p *Parser) parseFlowSequenceEntryMappingValue() (*event.Event, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Type == token.Value {
		p.skipToken()
		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type != token.FlowEntry && tok.Type != token.FlowSequenceEnd {
			p.pushState(flowSequenceEntryMappingEndState)
			return p.parseNode(false, false)
		}
	}
	p.state = flowSequenceEntryMappingEndState
	return p.emptyScalarEvent(tok.Start), nil
}

func (p *Parser) parseFlowSequenceEntryMappingEnd() (*event.Event, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	p.state = flowSequenceEntryState
	return &event.Event{
		Type:  event.MappingEnd,
		Start: tok.Start,
		End:   tok.Start, // zero-width: reproduces the teacher's own quirk, see SPEC_FULL.md §14
	}, nil
}

// parseFlowMappingKey parses:
//
//	flow_mapping ::= FLOW-MAPPING-START
//	                 (flow_mapping_entry FLOW-ENTRY)*
//	                 flow_mapping_entry?
//	                 FLOW-MAPPING-END
//	flow_mapping_entry ::= flow_node | KEY flow_node? (VALUE flow_node?)?
func (p *Parser) parseFlowMappingKey(first bool) (*event.Event, error) {
	if first {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		p.pushMark(tok.Start)
		p.skipToken()
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	if tok.Type != token.FlowMappingEnd {
		if !first {
			if tok.Type == token.FlowEntry {
				p.skipToken()
				tok, err = p.peek()
				if err != nil {
					return nil, err
				}
			} else {
				contextMark := p.popMark()
				return nil, syntaxError("flow mapping", contextMark, "did not find expected ',' or '}'", tok.Start)
			}
		}

		if tok.Type == token.Key {
			p.skipToken()
			tok, err = p.peek()
			if err != nil {
				return nil, err
			}
			if tok.Type != token.Value && tok.Type != token.FlowEntry && tok.Type != token.FlowMappingEnd {
				p.pushState(flowMappingValueState)
				return p.parseNode(false, false)
			}
			p.state = flowMappingValueState
			return p.emptyScalarEvent(tok.Start), nil
		}
		if tok.Type != token.FlowMappingEnd {
			p.pushState(flowMappingEmptyValueState)
			return p.parseNode(false, false)
		}
	}

	p.state = p.popState()
	p.popMark()
	ev := &event.Event{
		Type:  event.MappingEnd,
		Start: tok.Start,
		End:   tok.End,
	}
	p.skipToken()
	return ev, nil
}

func (p *Parser) parseFlowMappingValue(empty bool) (*event.Event, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if empty {
		p.state = flowMappingKeyState
		return p.emptyScalarEvent(tok.Start), nil
	}
	if tok.Type == token.Value {
		p.skipToken()
		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type != token.FlowEntry && tok.Type != token.FlowMappingEnd {
			p.pushState(flowMappingKeyState)
			return p.parseNode(false, false)
		}
	}
	p.state = flowMappingKeyState
	return p.emptyScalarEvent(tok.Start), nil
}
