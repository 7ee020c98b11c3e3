package parser

import (
	"github.com/yevent/parser/event"
	"github.com/yevent/parser/token"
)

// defaultTagDirectives are merged into every document's active handle
// map, overridden by nothing an explicit %TAG can't already shadow.
var defaultTagDirectives = []event.TagDirective{
	{Handle: "!", Prefix: "!"},
	{Handle: "!!", Prefix: "tag:yaml.org,2002:"},
}

// processDirectives consumes the run of directive tokens at the start
// of an explicit document, resetting the active tag map and returning
// the version (if any) and the emitted directive list (explicit %TAGs
// only; the defaults are merged into p.tagDirectives but never
// reported on the event).
func (p *Parser) processDirectives() (*event.VersionDirective, []event.TagDirective, error) {
	p.tagDirectives = p.tagDirectives[:0]

	var version *event.VersionDirective
	var directives []event.TagDirective

	tok, err := p.scanner.PeekToken()
	if err != nil {
		return nil, nil, err
	}

	for tok.Type == token.VersionDirective || tok.Type == token.TagDirective || tok.Type == token.GenericDirective {
		switch tok.Type {
		case token.VersionDirective:
			if version != nil {
				return nil, nil, directiveError("found duplicate %YAML directive", tok.Start)
			}
			if tok.Major != 1 {
				return nil, nil, directiveError("found incompatible YAML document (version 1.x is required)", tok.Start)
			}
			version = &event.VersionDirective{Major: tok.Major, Minor: tok.Minor}
		case token.TagDirective:
			handle := string(tok.Value[:tok.ValueDivider])
			prefix := string(tok.Value[tok.ValueDivider:])
			if err := p.appendTagDirective(handle, prefix, false, tok.Start); err != nil {
				return nil, nil, err
			}
			directives = append(directives, event.TagDirective{Handle: handle, Prefix: prefix})
		case token.GenericDirective:
			// Unrecognized directive name: already tokenized without
			// interpretation, ignored here per §4.2.
		}

		p.skipToken()
		tok, err = p.scanner.PeekToken()
		if err != nil {
			return nil, nil, err
		}
	}

	for _, d := range defaultTagDirectives {
		if err := p.appendTagDirective(d.Handle, d.Prefix, true, tok.Start); err != nil {
			return nil, nil, err
		}
	}

	return version, directives, nil
}

// appendTagDirective records a (handle, prefix) pair in the active
// map. allowDuplicates is true only for the built-in defaults, which
// silently no-op when a document already overrode that handle.
func (p *Parser) appendTagDirective(handle, prefix string, allowDuplicates bool, mark token.Position) error {
	for _, d := range p.tagDirectives {
		if d.Handle == handle {
			if allowDuplicates {
				return nil
			}
			return directiveError("found duplicate tag handle: "+handle, mark)
		}
	}
	p.tagDirectives = append(p.tagDirectives, event.TagDirective{Handle: handle, Prefix: prefix})
	return nil
}

// resolveTag rewrites a (handle, suffix) pair read from a Tag token
// into its fully substituted form, per §4.2. An empty handle is the
// verbatim `!<uri>` form and passes suffix through unchanged.
func (p *Parser) resolveTag(handle, suffix string, handleMark, nodeMark token.Position) (string, error) {
	if handle == "" {
		return suffix, nil
	}
	for _, d := range p.tagDirectives {
		if d.Handle == handle {
			return d.Prefix + suffix, nil
		}
	}
	return "", undefinedTagHandleError(handle, nodeMark, handleMark)
}
