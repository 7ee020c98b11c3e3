// Package compose turns an event.Event stream into generic Go values
// (map[string]any, []any, string, nil), strictly for demonstration and
// cross-validation against gopkg.in/yaml.v3's own Unmarshal. It is not
// the composer/constructor collaborator the parser spec treats as an
// external, out-of-scope layer: there is no schema resolution (scalars
// always decode as strings), no anchor/alias resolution, and no typed
// decoding into caller structs.
package compose

import (
	"fmt"

	"github.com/yevent/parser/event"
	"github.com/yevent/parser/parser"
)

// Document builds the generic value for one document's worth of
// events, consuming from DocumentStart up to and including its
// matching DocumentEnd. Call it once per document while the next event
// is a DocumentStart that has not yet been consumed (it may have been
// observed with p.PeekEvent, but not taken with p.NextEvent).
func Document(p *parser.Parser) (any, error) {
	start, err := p.NextEvent()
	if err != nil {
		return nil, err
	}
	if start.Type != event.DocumentStart {
		return nil, fmt.Errorf("compose: expected document-start, got %s", start.Type)
	}

	ev, err := p.PeekEvent()
	if err != nil {
		return nil, err
	}

	var value any
	if ev.Type != event.DocumentEnd {
		value, err = node(p)
		if err != nil {
			return nil, err
		}
	}

	end, err := p.NextEvent()
	if err != nil {
		return nil, err
	}
	if end.Type != event.DocumentEnd {
		return nil, fmt.Errorf("compose: expected document-end, got %s", end.Type)
	}
	return value, nil
}

// node consumes one node's worth of events (scalar, or a full
// collection through its matching end event) and returns its value.
func node(p *parser.Parser) (any, error) {
	ev, err := p.NextEvent()
	if err != nil {
		return nil, err
	}
	switch ev.Type {
	case event.Scalar:
		return ev.Value, nil
	case event.SequenceStart:
		return sequence(p)
	case event.MappingStart:
		return mapping(p)
	case event.Alias:
		return nil, fmt.Errorf("compose: alias %q: anchor/alias resolution is out of scope", ev.Anchor)
	default:
		return nil, fmt.Errorf("compose: unexpected event %s as node content", ev.Type)
	}
}

func sequence(p *parser.Parser) ([]any, error) {
	var out []any
	for {
		ev, err := p.PeekEvent()
		if err != nil {
			return nil, err
		}
		if ev.Type == event.SequenceEnd {
			_, err := p.NextEvent()
			return out, err
		}
		v, err := node(p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

func mapping(p *parser.Parser) (map[string]any, error) {
	out := map[string]any{}
	for {
		ev, err := p.PeekEvent()
		if err != nil {
			return nil, err
		}
		if ev.Type == event.MappingEnd {
			_, err := p.NextEvent()
			return out, err
		}
		key, err := node(p)
		if err != nil {
			return nil, err
		}
		val, err := node(p)
		if err != nil {
			return nil, err
		}
		k, ok := key.(string)
		if !ok {
			return nil, fmt.Errorf("compose: non-scalar mapping key %v unsupported", key)
		}
		out[k] = val
	}
}
