//
// Copyright (c) 2011-2019 Canonical Ltd
// Copyright (c) 2006-2010 Kirill Simonov
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package scanner turns a byte stream into the flat token sequence
// described by token.Type. It is the external collaborator the parser
// drives through CheckToken/PeekToken/GetToken; everything below the
// token boundary (indentation bookkeeping, simple-key disambiguation,
// block/flow scalar folding) is private to this package.
//
// Double-quoted scalars are captured as raw source bytes: backslash
// escape sequences are left intact, with only the structural line
// folding of blanks and breaks applied here. Unescaping them into
// final text is the parser's job (see parser.DecodeDoubleQuoted).
package scanner

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yevent/parser/token"
)

const (
	inputRawBufferSize = 512
	inputBufferSize    = inputRawBufferSize * 3
	maxFlowLevel       = 10000
	maxIndents         = 10000
	maxNumberLength    = 2
)

type simpleKey struct {
	Possible     bool
	Required     bool
	Token_number int
	Mark         token.Position
}

// Scanner produces a token stream from an io.Reader. It is not safe for
// concurrent use.
type Scanner struct {
	reader io.Reader

	Raw_buffer     []byte
	Raw_buffer_pos int
	Eof            bool

	Buffer     []byte
	Buffer_pos int
	Unread     int

	Encoding token.Encoding
	Offset   int
	Mark     token.Position
	Newlines int

	Stream_start_produced bool
	Stream_end_produced   bool

	Flow_level int

	Tokens          []token.Token
	Tokens_head     int
	Tokens_parsed   int
	Token_available bool

	Indent  int
	Indents []int

	Simple_key_allowed  bool
	Simple_keys         []simpleKey
	Simple_keys_by_tok  map[int]int
}

// New returns a Scanner reading from r.
func New(r io.Reader) *Scanner {
	return &Scanner{
		reader:     r,
		Raw_buffer: make([]byte, 0, inputRawBufferSize),
		Buffer:     make([]byte, 0, inputBufferSize),
		Indent:     -1,
	}
}

// CheckToken reports whether the next token is available and, if kinds is
// non-empty, whether its type is one of kinds.
func (s *Scanner) CheckToken(kinds ...token.Type) (bool, error) {
	t, err := s.PeekToken()
	if err != nil {
		return false, err
	}
	if t == nil {
		return false, nil
	}
	if len(kinds) == 0 {
		return true, nil
	}
	for _, k := range kinds {
		if t.Type == k {
			return true, nil
		}
	}
	return false, nil
}

// PeekToken returns the next token without consuming it.
func (s *Scanner) PeekToken() (*token.Token, error) {
	if !s.Token_available {
		if err := s.ensureTokens(); err != nil {
			return nil, err
		}
	}
	return &s.Tokens[s.Tokens_head], nil
}

// GetToken consumes and returns the next token.
func (s *Scanner) GetToken() (*token.Token, error) {
	t, err := s.PeekToken()
	if err != nil {
		return nil, err
	}
	out := *t
	s.skipToken()
	return &out, nil
}

func (s *Scanner) skipToken() {
	s.Token_available = false
	s.Tokens_parsed++
	s.Stream_end_produced = s.Tokens[s.Tokens_head].Type == token.StreamEnd
	s.Tokens_head++
}

// ensureTokens fetches tokens until at least one is queued and any
// outstanding simple key at the current parse position has been resolved.
func (s *Scanner) ensureTokens() error {
	for {
		if s.Tokens_head < len(s.Tokens) {
			idx, ok := s.Simple_keys_by_tok[s.Tokens_parsed]
			if !ok {
				break
			}
			valid, err := s.simpleKeyIsValid(&s.Simple_keys[idx])
			if err != nil {
				return err
			}
			if !valid {
				break
			}
		}
		if err := s.fetchNextToken(); err != nil {
			return err
		}
	}
	s.Token_available = true
	return nil
}

func (s *Scanner) fetchNextToken() error {
	if s.Unread < 1 {
		if err := s.updateBuffer(1); err != nil {
			return err
		}
	}

	if !s.Stream_start_produced {
		s.fetchStreamStart()
		return nil
	}

	scanMark := s.Mark

	if err := s.scanToNextToken(); err != nil {
		return err
	}

	s.unrollIndent(s.Mark.Column, scanMark)

	if s.Unread < 4 {
		if err := s.updateBuffer(4); err != nil {
			return err
		}
	}

	if isZ(s.Buffer, s.Buffer_pos) {
		return s.fetchStreamEnd()
	}

	if s.Mark.Column == 0 && s.Buffer[s.Buffer_pos] == '%' {
		return s.fetchDirective()
	}

	buf := s.Buffer
	pos := s.Buffer_pos

	if s.Mark.Column == 0 && buf[pos] == '-' && buf[pos+1] == '-' && buf[pos+2] == '-' && isBlankZ(buf, pos+3) {
		return s.fetchDocumentIndicator(token.DocumentStart)
	}
	if s.Mark.Column == 0 && buf[pos] == '.' && buf[pos+1] == '.' && buf[pos+2] == '.' && isBlankZ(buf, pos+3) {
		return s.fetchDocumentIndicator(token.DocumentEnd)
	}

	switch {
	case buf[pos] == '[':
		return s.fetchFlowCollectionStart(token.FlowSequenceStart)
	case buf[pos] == '{':
		return s.fetchFlowCollectionStart(token.FlowMappingStart)
	case buf[pos] == ']':
		return s.fetchFlowCollectionEnd(token.FlowSequenceEnd)
	case buf[pos] == '}':
		return s.fetchFlowCollectionEnd(token.FlowMappingEnd)
	case buf[pos] == ',':
		return s.fetchFlowEntry()
	case buf[pos] == '-' && isBlankZ(buf, pos+1):
		return s.fetchBlockEntry()
	case buf[pos] == '?' && (s.Flow_level > 0 || isBlankZ(buf, pos+1)):
		return s.fetchKey()
	case buf[pos] == ':' && (s.Flow_level > 0 || isBlankZ(buf, pos+1)):
		return s.fetchValue()
	case buf[pos] == '*':
		return s.fetchAnchor(token.Alias)
	case buf[pos] == '&':
		return s.fetchAnchor(token.Anchor)
	case buf[pos] == '!':
		return s.fetchTag()
	case buf[pos] == '|' && s.Flow_level == 0:
		return s.fetchBlockScalar(true)
	case buf[pos] == '>' && s.Flow_level == 0:
		return s.fetchBlockScalar(false)
	case buf[pos] == '\'':
		return s.fetchFlowScalar(true)
	case buf[pos] == '"':
		return s.fetchFlowScalar(false)
	}

	if !(isBlankZ(buf, pos) || buf[pos] == '-' || buf[pos] == '?' || buf[pos] == ':' ||
		buf[pos] == ',' || buf[pos] == '[' || buf[pos] == ']' || buf[pos] == '{' || buf[pos] == '}' ||
		buf[pos] == '#' || buf[pos] == '&' || buf[pos] == '*' || buf[pos] == '!' || buf[pos] == '|' ||
		buf[pos] == '>' || buf[pos] == '\'' || buf[pos] == '"' || buf[pos] == '%' || buf[pos] == '@' || buf[pos] == '`') ||
		(buf[pos] == '-' && !isBlank(buf, pos+1)) ||
		(s.Flow_level == 0 && (buf[pos] == '?' || buf[pos] == ':') && !isBlankZ(buf, pos+1)) {
		return s.fetchPlainScalar()
	}

	return newScannerError(s.Mark, "found character that cannot start any token")
}

func (s *Scanner) simpleKeyIsValid(sk *simpleKey) (bool, error) {
	if !sk.Possible {
		return false, nil
	}
	if sk.Mark.Line < s.Mark.Line || sk.Mark.Index+1024 < s.Mark.Index {
		if sk.Required {
			return false, newScannerError(sk.Mark, "could not find expected ':'")
		}
		sk.Possible = false
		return false, nil
	}
	return true, nil
}

func (s *Scanner) saveSimpleKey() error {
	required := s.Flow_level == 0 && s.Indent == s.Mark.Column
	if s.Simple_key_allowed {
		key := simpleKey{
			Possible:     true,
			Required:     required,
			Token_number: s.Tokens_parsed + (len(s.Tokens) - s.Tokens_head),
			Mark:         s.Mark,
		}
		if err := s.removeSimpleKey(); err != nil {
			return err
		}
		s.Simple_keys[len(s.Simple_keys)-1] = key
		s.Simple_keys_by_tok[key.Token_number] = len(s.Simple_keys) - 1
	}
	return nil
}

func (s *Scanner) removeSimpleKey() error {
	i := len(s.Simple_keys) - 1
	if s.Simple_keys[i].Possible {
		if s.Simple_keys[i].Required {
			return newScannerError(s.Simple_keys[i].Mark, "could not find expected ':'")
		}
		s.Simple_keys[i].Possible = false
		delete(s.Simple_keys_by_tok, s.Simple_keys[i].Token_number)
	}
	return nil
}

func (s *Scanner) increaseFlowLevel() error {
	s.Simple_keys = append(s.Simple_keys, simpleKey{
		Token_number: s.Tokens_parsed + (len(s.Tokens) - s.Tokens_head),
		Mark:         s.Mark,
	})
	s.Flow_level++
	if s.Flow_level > maxFlowLevel {
		return newScannerError(s.Simple_keys[len(s.Simple_keys)-1].Mark, fmt.Sprintf("exceeded max depth of %d", maxFlowLevel))
	}
	return nil
}

func (s *Scanner) decreaseFlowLevel() {
	if s.Flow_level > 0 {
		s.Flow_level--
		last := len(s.Simple_keys) - 1
		delete(s.Simple_keys_by_tok, s.Simple_keys[last].Token_number)
		s.Simple_keys = s.Simple_keys[:last]
	}
}

func (s *Scanner) rollIndent(column, number int, typ token.Type, mark token.Position) error {
	if s.Flow_level > 0 {
		return nil
	}
	if s.Indent < column {
		s.Indents = append(s.Indents, s.Indent)
		s.Indent = column
		if len(s.Indents) > maxIndents {
			return newScannerError(s.Simple_keys[len(s.Simple_keys)-1].Mark, fmt.Sprintf("exceeded max depth of %d", maxIndents))
		}
		tok := token.Token{Type: typ, Start: mark, End: mark}
		if number > -1 {
			number -= s.Tokens_parsed
		}
		s.insertToken(number, &tok)
	}
	return nil
}

func (s *Scanner) unrollIndent(column int, scanMark token.Position) {
	if s.Flow_level > 0 {
		return
	}
	blockMark := scanMark
	blockMark.Index--
	for s.Indent > column {
		tok := token.Token{Type: token.BlockEnd, Start: blockMark, End: blockMark}
		s.insertToken(-1, &tok)
		s.Indent = s.Indents[len(s.Indents)-1]
		s.Indents = s.Indents[:len(s.Indents)-1]
	}
}

func (s *Scanner) insertToken(pos int, tok *token.Token) {
	if s.Tokens_head > 0 && len(s.Tokens) == cap(s.Tokens) {
		if s.Tokens_head != len(s.Tokens) {
			copy(s.Tokens, s.Tokens[s.Tokens_head:])
		}
		s.Tokens = s.Tokens[:len(s.Tokens)-s.Tokens_head]
		s.Tokens_head = 0
	}
	s.Tokens = append(s.Tokens, *tok)
	if pos < 0 {
		return
	}
	copy(s.Tokens[s.Tokens_head+pos+1:], s.Tokens[s.Tokens_head+pos:])
	s.Tokens[s.Tokens_head+pos] = *tok
}

func (s *Scanner) skip() {
	if !isBlank(s.Buffer, s.Buffer_pos) {
		s.Newlines = 0
	}
	s.Mark.Index++
	s.Mark.Column++
	s.Unread--
	s.Buffer_pos += width(s.Buffer[s.Buffer_pos])
}

func (s *Scanner) skipLine() {
	if isCRLF(s.Buffer, s.Buffer_pos) {
		s.Mark.Index += 2
		s.Mark.Column = 0
		s.Mark.Line++
		s.Unread -= 2
		s.Buffer_pos += 2
		s.Newlines++
	} else if isBreak(s.Buffer, s.Buffer_pos) {
		s.Mark.Index++
		s.Mark.Column = 0
		s.Mark.Line++
		s.Unread--
		s.Buffer_pos += width(s.Buffer[s.Buffer_pos])
		s.Newlines++
	}
}

func (s *Scanner) read(out []byte) []byte {
	if !isBlank(s.Buffer, s.Buffer_pos) {
		s.Newlines = 0
	}
	w := width(s.Buffer[s.Buffer_pos])
	if w == 0 {
		panic("invalid character sequence")
	}
	if len(out) == 0 {
		out = make([]byte, 0, 32)
	}
	if w == 1 && len(out)+w <= cap(out) {
		out = out[:len(out)+1]
		out[len(out)-1] = s.Buffer[s.Buffer_pos]
		s.Buffer_pos++
	} else {
		out = append(out, s.Buffer[s.Buffer_pos:s.Buffer_pos+w]...)
		s.Buffer_pos += w
	}
	s.Mark.Index++
	s.Mark.Column++
	s.Unread--
	return out
}

func (s *Scanner) readLine(out []byte) []byte {
	buf := s.Buffer
	pos := s.Buffer_pos
	switch {
	case buf[pos] == '\r' && buf[pos+1] == '\n':
		out = append(out, '\n')
		s.Buffer_pos += 2
		s.Mark.Index++
		s.Unread--
	case buf[pos] == '\r' || buf[pos] == '\n':
		out = append(out, '\n')
		s.Buffer_pos++
	case buf[pos] == '\xC2' && buf[pos+1] == '\x85':
		out = append(out, '\n')
		s.Buffer_pos += 2
	case buf[pos] == '\xE2' && buf[pos+1] == '\x80' && (buf[pos+2] == '\xA8' || buf[pos+2] == '\xA9'):
		out = append(out, buf[pos:pos+3]...)
		s.Buffer_pos += 3
	default:
		return out
	}
	s.Mark.Index++
	s.Mark.Column = 0
	s.Mark.Line++
	s.Unread--
	s.Newlines++
	return out
}

func (s *Scanner) fetchStreamStart() {
	s.Indent = -1
	s.Simple_keys = append(s.Simple_keys, simpleKey{})
	s.Simple_keys_by_tok = make(map[int]int)
	s.Simple_key_allowed = true
	s.Stream_start_produced = true
	tok := token.Token{Type: token.StreamStart, Start: s.Mark, End: s.Mark, Encoding: s.Encoding}
	s.insertToken(-1, &tok)
}

func (s *Scanner) fetchStreamEnd() error {
	if s.Mark.Column != 0 {
		s.Mark.Column = 0
		s.Mark.Line++
	}
	s.unrollIndent(-1, s.Mark)
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.Simple_key_allowed = false
	tok := token.Token{Type: token.StreamEnd, Start: s.Mark, End: s.Mark}
	s.insertToken(-1, &tok)
	return nil
}

func (s *Scanner) fetchDirective() error {
	s.unrollIndent(-1, s.Mark)
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.Simple_key_allowed = false
	tok, err := s.scanDirective()
	if err != nil {
		return err
	}
	s.insertToken(-1, tok)
	return nil
}

func (s *Scanner) fetchDocumentIndicator(typ token.Type) error {
	s.unrollIndent(-1, s.Mark)
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.Simple_key_allowed = false
	start := s.Mark
	s.skip()
	s.skip()
	s.skip()
	tok := token.Token{Type: typ, Start: start, End: s.Mark}
	s.insertToken(-1, &tok)
	return nil
}

func (s *Scanner) fetchFlowCollectionStart(typ token.Type) error {
	if err := s.saveSimpleKey(); err != nil {
		return err
	}
	if err := s.increaseFlowLevel(); err != nil {
		return err
	}
	s.Simple_key_allowed = true
	start := s.Mark
	s.skip()
	tok := token.Token{Type: typ, Start: start, End: s.Mark}
	s.insertToken(-1, &tok)
	return nil
}

func (s *Scanner) fetchFlowCollectionEnd(typ token.Type) error {
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.decreaseFlowLevel()
	s.Simple_key_allowed = false
	start := s.Mark
	s.skip()
	tok := token.Token{Type: typ, Start: start, End: s.Mark}
	s.insertToken(-1, &tok)
	return nil
}

func (s *Scanner) fetchFlowEntry() error {
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.Simple_key_allowed = true
	start := s.Mark
	s.skip()
	tok := token.Token{Type: token.FlowEntry, Start: start, End: s.Mark}
	s.insertToken(-1, &tok)
	return nil
}

func (s *Scanner) fetchBlockEntry() error {
	if s.Flow_level == 0 {
		if !s.Simple_key_allowed {
			return newScannerError(s.Mark, "block sequence entries are not allowed in this context")
		}
		if err := s.rollIndent(s.Mark.Column, -1, token.BlockSequenceStart, s.Mark); err != nil {
			return err
		}
	}
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.Simple_key_allowed = true
	start := s.Mark
	s.skip()
	tok := token.Token{Type: token.BlockEntry, Start: start, End: s.Mark}
	s.insertToken(-1, &tok)
	return nil
}

func (s *Scanner) fetchKey() error {
	if s.Flow_level == 0 {
		if !s.Simple_key_allowed {
			return newScannerError(s.Mark, "mapping keys are not allowed in this context")
		}
		if err := s.rollIndent(s.Mark.Column, -1, token.BlockMappingStart, s.Mark); err != nil {
			return err
		}
	}
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.Simple_key_allowed = s.Flow_level == 0
	start := s.Mark
	s.skip()
	tok := token.Token{Type: token.Key, Start: start, End: s.Mark}
	s.insertToken(-1, &tok)
	return nil
}

func (s *Scanner) fetchValue() error {
	key := &s.Simple_keys[len(s.Simple_keys)-1]
	valid, err := s.simpleKeyIsValid(key)
	if err != nil {
		return err
	}
	if valid {
		tok := token.Token{Type: token.Key, Start: key.Mark, End: key.Mark}
		s.insertToken(key.Token_number-s.Tokens_parsed, &tok)

		if err := s.rollIndent(key.Mark.Column, key.Token_number, token.BlockMappingStart, key.Mark); err != nil {
			return err
		}
		key.Possible = false
		delete(s.Simple_keys_by_tok, key.Token_number)
		s.Simple_key_allowed = false
	} else {
		if s.Flow_level == 0 {
			if !s.Simple_key_allowed {
				return newScannerError(s.Mark, "mapping values are not allowed in this context")
			}
			if err := s.rollIndent(s.Mark.Column, -1, token.BlockMappingStart, s.Mark); err != nil {
				return err
			}
		}
		s.Simple_key_allowed = s.Flow_level == 0
	}
	start := s.Mark
	s.skip()
	tok := token.Token{Type: token.Value, Start: start, End: s.Mark}
	s.insertToken(-1, &tok)
	return nil
}

func (s *Scanner) fetchAnchor(typ token.Type) error {
	if err := s.saveSimpleKey(); err != nil {
		return err
	}
	s.Simple_key_allowed = false
	tok, err := s.scanAnchor(typ)
	if err != nil {
		return err
	}
	s.insertToken(-1, tok)
	return nil
}

func (s *Scanner) fetchTag() error {
	if err := s.saveSimpleKey(); err != nil {
		return err
	}
	s.Simple_key_allowed = false
	tok, err := s.scanTag()
	if err != nil {
		return err
	}
	s.insertToken(-1, tok)
	return nil
}

func (s *Scanner) fetchBlockScalar(literal bool) error {
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.Simple_key_allowed = true
	tok, err := s.scanBlockScalar(literal)
	if err != nil {
		return err
	}
	s.insertToken(-1, tok)
	return nil
}

func (s *Scanner) fetchFlowScalar(single bool) error {
	if err := s.saveSimpleKey(); err != nil {
		return err
	}
	s.Simple_key_allowed = false
	tok, err := s.scanFlowScalar(single)
	if err != nil {
		return err
	}
	s.insertToken(-1, tok)
	return nil
}

func (s *Scanner) fetchPlainScalar() error {
	if err := s.saveSimpleKey(); err != nil {
		return err
	}
	s.Simple_key_allowed = false
	tok, err := s.scanPlainScalar()
	if err != nil {
		return err
	}
	s.insertToken(-1, tok)
	return nil
}

func (s *Scanner) scanToNextToken() error {
	for {
		if s.Unread < 1 {
			if err := s.updateBuffer(1); err != nil {
				return err
			}
		}
		if s.Mark.Column == 0 && isBOM(s.Buffer, s.Buffer_pos) {
			s.skip()
		}

		if s.Unread < 1 {
			if err := s.updateBuffer(1); err != nil {
				return err
			}
		}
		for s.Buffer[s.Buffer_pos] == ' ' || ((s.Flow_level > 0 || !s.Simple_key_allowed) && s.Buffer[s.Buffer_pos] == '\t') {
			s.skip()
			if s.Unread < 1 {
				if err := s.updateBuffer(1); err != nil {
					return err
				}
			}
		}

		if s.Buffer[s.Buffer_pos] == '#' {
			for !isBreakZ(s.Buffer, s.Buffer_pos) {
				s.skip()
				if s.Unread < 1 {
					if err := s.updateBuffer(1); err != nil {
						return err
					}
				}
			}
		}

		if isBreak(s.Buffer, s.Buffer_pos) {
			if s.Unread < 2 {
				if err := s.updateBuffer(2); err != nil {
					return err
				}
			}
			s.skipLine()
			if s.Flow_level == 0 {
				s.Simple_key_allowed = true
			}
		} else {
			break
		}
	}
	return nil
}

func (s *Scanner) scanDirective() (*token.Token, error) {
	start := s.Mark
	s.skip()

	name, err := s.scanDirectiveName(start)
	if err != nil {
		return nil, err
	}

	var tok token.Token
	if bytes.Equal(name, []byte("YAML")) {
		major, minor, err := s.scanVersionDirectiveValue(start)
		if err != nil {
			return nil, err
		}
		tok = token.Token{
			Type:          token.VersionDirective,
			Start:         start,
			End:           s.Mark,
			DirectiveKind: token.YAMLDirective,
			Major:         major,
			Minor:         minor,
		}
	} else if bytes.Equal(name, []byte("TAG")) {
		handle, prefix, err := s.scanTagDirectiveValue(start)
		if err != nil {
			return nil, err
		}
		tok = token.Token{
			Type:          token.TagDirective,
			Start:         start,
			End:           s.Mark,
			DirectiveKind: token.TAGDirectiveKind,
			Value:         append(append([]byte{}, handle...), prefix...),
			ValueDivider:  len(handle),
		}
	} else {
		// All other directive names are silently ignored: tokenize the
		// rest of the line as a generic directive and let the parser
		// skip it, rather than failing the scan.
		tok = token.Token{
			Type:          token.GenericDirective,
			Start:         start,
			DirectiveKind: token.OtherDirective,
		}
		for {
			if s.Unread < 1 {
				if err := s.updateBuffer(1); err != nil {
					return nil, err
				}
			}
			if isBreakZ(s.Buffer, s.Buffer_pos) {
				break
			}
			s.skip()
		}
		tok.End = s.Mark
		if isBreak(s.Buffer, s.Buffer_pos) {
			if s.Unread < 2 {
				if err := s.updateBuffer(1); err != nil {
					return nil, err
				}
			}
			s.skipLine()
		}
		return &tok, nil
	}

	if s.Unread < 1 {
		if err := s.updateBuffer(1); err != nil {
			return nil, err
		}
	}
	for isBlank(s.Buffer, s.Buffer_pos) {
		s.skip()
		if s.Unread < 1 {
			if err := s.updateBuffer(1); err != nil {
				return nil, err
			}
		}
	}
	if s.Buffer[s.Buffer_pos] == '#' {
		for !isBreakZ(s.Buffer, s.Buffer_pos) {
			s.skip()
			if s.Unread < 1 {
				if err := s.updateBuffer(1); err != nil {
					return nil, err
				}
			}
		}
	}
	if !isBreakZ(s.Buffer, s.Buffer_pos) {
		return nil, newScannerError(start, "did not find expected comment or line break")
	}
	if isBreak(s.Buffer, s.Buffer_pos) {
		if s.Unread < 2 {
			if err := s.updateBuffer(1); err != nil {
				return nil, err
			}
		}
		s.skipLine()
	}
	return &tok, nil
}

func (s *Scanner) scanDirectiveName(start token.Position) ([]byte, error) {
	if s.Unread < 1 {
		if err := s.updateBuffer(1); err != nil {
			return nil, err
		}
	}
	var name []byte
	for isAlpha(s.Buffer, s.Buffer_pos) {
		name = s.read(name)
		if s.Unread < 1 {
			if err := s.updateBuffer(1); err != nil {
				return nil, err
			}
		}
	}
	if len(name) == 0 {
		return nil, newScannerError(start, "could not find expected directive name")
	}
	if !isBlankZ(s.Buffer, s.Buffer_pos) {
		return nil, newScannerError(start, "found unexpected non-alphabetical character")
	}
	return name, nil
}

func (s *Scanner) scanVersionDirectiveValue(start token.Position) (major, minor int8, _ error) {
	if s.Unread < 1 {
		if err := s.updateBuffer(1); err != nil {
			return 0, 0, err
		}
	}
	for isBlank(s.Buffer, s.Buffer_pos) {
		s.skip()
		if s.Unread < 1 {
			if err := s.updateBuffer(1); err != nil {
				return 0, 0, err
			}
		}
	}
	major, err := s.scanVersionDirectiveNumber(start)
	if err != nil {
		return 0, 0, err
	}
	if s.Buffer[s.Buffer_pos] != '.' {
		return 0, 0, newScannerError(start, "did not find expected digit or '.' character")
	}
	s.skip()
	minor, err = s.scanVersionDirectiveNumber(start)
	if err != nil {
		return 0, 0, err
	}
	return major, minor, nil
}

func (s *Scanner) scanVersionDirectiveNumber(start token.Position) (int8, error) {
	if s.Unread < 1 {
		if err := s.updateBuffer(1); err != nil {
			return 0, err
		}
	}
	var value, length int8
	for isDigit(s.Buffer, s.Buffer_pos) {
		length++
		if length > maxNumberLength {
			return 0, newScannerError(start, "found extremely long version number")
		}
		value = value*10 + int8(asDigit(s.Buffer, s.Buffer_pos))
		s.skip()
		if s.Unread < 1 {
			if err := s.updateBuffer(1); err != nil {
				return 0, err
			}
		}
	}
	if length == 0 {
		return 0, newScannerError(start, "did not find expected version number")
	}
	return value, nil
}

func (s *Scanner) scanTagDirectiveValue(start token.Position) (handle, prefix []byte, _ error) {
	if s.Unread < 1 {
		if err := s.updateBuffer(1); err != nil {
			return nil, nil, err
		}
	}
	for isBlank(s.Buffer, s.Buffer_pos) {
		s.skip()
		if s.Unread < 1 {
			if err := s.updateBuffer(1); err != nil {
				return nil, nil, err
			}
		}
	}
	if err := s.scanTagHandle(true, start, &handle); err != nil {
		return nil, nil, err
	}
	if s.Unread < 1 {
		if err := s.updateBuffer(1); err != nil {
			return nil, nil, err
		}
	}
	if !isBlank(s.Buffer, s.Buffer_pos) {
		return nil, nil, newScannerError(start, "did not find expected whitespace")
	}
	for isBlank(s.Buffer, s.Buffer_pos) {
		s.skip()
		if s.Unread < 1 {
			if err := s.updateBuffer(1); err != nil {
				return nil, nil, err
			}
		}
	}
	if err := s.scanTagURI(true, nil, start, &prefix); err != nil {
		return nil, nil, err
	}
	if s.Unread < 1 {
		if err := s.updateBuffer(1); err != nil {
			return nil, nil, err
		}
	}
	if !isBlankZ(s.Buffer, s.Buffer_pos) {
		return nil, nil, newScannerError(start, "did not find expected whitespace or line break")
	}
	return handle, prefix, nil
}

func (s *Scanner) scanAnchor(typ token.Type) (*token.Token, error) {
	var val []byte
	start := s.Mark
	s.skip()

	if s.Unread < 1 {
		if err := s.updateBuffer(1); err != nil {
			return nil, err
		}
	}
	for isAlpha(s.Buffer, s.Buffer_pos) {
		val = s.read(val)
		if s.Unread < 1 {
			if err := s.updateBuffer(1); err != nil {
				return nil, err
			}
		}
	}
	end := s.Mark

	if len(val) == 0 ||
		!(isBlankZ(s.Buffer, s.Buffer_pos) || s.Buffer[s.Buffer_pos] == '?' ||
			s.Buffer[s.Buffer_pos] == ':' || s.Buffer[s.Buffer_pos] == ',' ||
			s.Buffer[s.Buffer_pos] == ']' || s.Buffer[s.Buffer_pos] == '}' ||
			s.Buffer[s.Buffer_pos] == '%' || s.Buffer[s.Buffer_pos] == '@' ||
			s.Buffer[s.Buffer_pos] == '`') {
		return nil, newScannerError(start, "did not find expected alphabetic or numeric character")
	}

	return &token.Token{Type: typ, Start: start, End: end, Value: val}, nil
}

func (s *Scanner) scanTag() (*token.Token, error) {
	var handle, suffix []byte
	start := s.Mark

	if s.Unread < 2 {
		if err := s.updateBuffer(2); err != nil {
			return nil, err
		}
	}

	if s.Buffer[s.Buffer_pos+1] == '<' {
		s.skip()
		s.skip()
		if err := s.scanTagURI(false, nil, start, &suffix); err != nil {
			return nil, err
		}
		if s.Buffer[s.Buffer_pos] != '>' {
			return nil, newScannerError(start, "did not find the expected '>'")
		}
		s.skip()
	} else {
		if err := s.scanTagHandle(false, start, &handle); err != nil {
			return nil, err
		}
		if handle[0] == '!' && len(handle) > 1 && handle[len(handle)-1] == '!' {
			if err := s.scanTagURI(false, nil, start, &suffix); err != nil {
				return nil, err
			}
		} else {
			if err := s.scanTagURI(false, handle, start, &suffix); err != nil {
				return nil, err
			}
			handle = []byte{'!'}
			if len(suffix) == 0 {
				handle, suffix = suffix, handle
			}
		}
	}

	if s.Unread < 1 {
		if err := s.updateBuffer(1); err != nil {
			return nil, err
		}
	}
	if !isBlankZ(s.Buffer, s.Buffer_pos) {
		return nil, newScannerError(start, "did not find expected whitespace or line break")
	}

	end := s.Mark
	return &token.Token{
		Type:         token.Tag,
		Start:        start,
		End:          end,
		Value:        append(append([]byte{}, handle...), suffix...),
		ValueDivider: len(handle),
	}, nil
}

func (s *Scanner) scanTagHandle(directive bool, start token.Position, handle *[]byte) error {
	if s.Unread < 1 {
		if err := s.updateBuffer(1); err != nil {
			return err
		}
	}
	if s.Buffer[s.Buffer_pos] != '!' {
		return newScannerError(start, "did not find expected '!'")
	}

	var val []byte
	val = s.read(val)

	if s.Unread < 1 {
		if err := s.updateBuffer(1); err != nil {
			return err
		}
	}
	for isAlpha(s.Buffer, s.Buffer_pos) {
		val = s.read(val)
		if s.Unread < 1 {
			if err := s.updateBuffer(1); err != nil {
				return err
			}
		}
	}

	if s.Buffer[s.Buffer_pos] == '!' {
		val = s.read(val)
	} else if directive && string(val) != "!" {
		return newScannerError(start, "did not find expected '!'")
	}

	*handle = val
	return nil
}

func (s *Scanner) scanTagURI(directive bool, head []byte, start token.Position, uri *[]byte) error {
	var val []byte
	hasTag := len(head) > 0

	if len(head) > 1 {
		val = append(val, head[1:]...)
	}

	if s.Unread < 1 {
		if err := s.updateBuffer(1); err != nil {
			return err
		}
	}

	for isAlpha(s.Buffer, s.Buffer_pos) || s.Buffer[s.Buffer_pos] == ';' ||
		s.Buffer[s.Buffer_pos] == '/' || s.Buffer[s.Buffer_pos] == '?' ||
		s.Buffer[s.Buffer_pos] == ':' || s.Buffer[s.Buffer_pos] == '@' ||
		s.Buffer[s.Buffer_pos] == '&' || s.Buffer[s.Buffer_pos] == '=' ||
		s.Buffer[s.Buffer_pos] == '+' || s.Buffer[s.Buffer_pos] == '$' ||
		s.Buffer[s.Buffer_pos] == ',' || s.Buffer[s.Buffer_pos] == '.' ||
		s.Buffer[s.Buffer_pos] == '!' || s.Buffer[s.Buffer_pos] == '~' ||
		s.Buffer[s.Buffer_pos] == '*' || s.Buffer[s.Buffer_pos] == '\'' ||
		s.Buffer[s.Buffer_pos] == '(' || s.Buffer[s.Buffer_pos] == ')' ||
		s.Buffer[s.Buffer_pos] == '[' || s.Buffer[s.Buffer_pos] == ']' ||
		s.Buffer[s.Buffer_pos] == '%' {
		if s.Buffer[s.Buffer_pos] == '%' {
			if err := s.scanURIEscapes(start, &val); err != nil {
				return err
			}
		} else {
			val = s.read(val)
		}
		if s.Unread < 1 {
			if err := s.updateBuffer(1); err != nil {
				return err
			}
		}
		hasTag = true
	}

	if !hasTag {
		return newScannerError(start, "did not find expected tag URI")
	}
	*uri = val
	return nil
}

func (s *Scanner) scanURIEscapes(start token.Position, out *[]byte) error {
	w := 1024
	for w > 0 {
		if s.Unread < 3 {
			if err := s.updateBuffer(3); err != nil {
				return err
			}
		}
		if !(s.Buffer[s.Buffer_pos] == '%' && isHex(s.Buffer, s.Buffer_pos+1) && isHex(s.Buffer, s.Buffer_pos+2)) {
			return newScannerError(start, "did not find URI escaped octet")
		}
		octet := byte((asHex(s.Buffer, s.Buffer_pos+1) << 4) + asHex(s.Buffer, s.Buffer_pos+2))
		if w == 1024 {
			w = width(octet)
			if w == 0 {
				return newScannerError(start, "found an incorrect leading UTF-8 octet")
			}
		} else if octet&0xC0 != 0x80 {
			return newScannerError(start, "found an incorrect trailing UTF-8 octet")
		}
		*out = append(*out, octet)
		s.skip()
		s.skip()
		s.skip()
		w--
	}
	return nil
}

func (s *Scanner) scanBlockScalar(literal bool) (*token.Token, error) {
	start := s.Mark
	s.skip()

	if s.Unread < 1 {
		if err := s.updateBuffer(1); err != nil {
			return nil, err
		}
	}

	var chomping, increment int
	if s.Buffer[s.Buffer_pos] == '+' || s.Buffer[s.Buffer_pos] == '-' {
		if s.Buffer[s.Buffer_pos] == '+' {
			chomping = +1
		} else {
			chomping = -1
		}
		s.skip()
		if s.Unread < 1 {
			if err := s.updateBuffer(1); err != nil {
				return nil, err
			}
		}
		if isDigit(s.Buffer, s.Buffer_pos) {
			if s.Buffer[s.Buffer_pos] == '0' {
				return nil, newScannerError(start, "found an indentation indicator equal to 0")
			}
			increment = asDigit(s.Buffer, s.Buffer_pos)
			s.skip()
		}
	} else if isDigit(s.Buffer, s.Buffer_pos) {
		if s.Buffer[s.Buffer_pos] == '0' {
			return nil, newScannerError(start, "found an indentation indicator equal to 0")
		}
		increment = asDigit(s.Buffer, s.Buffer_pos)
		s.skip()
		if s.Unread < 1 {
			if err := s.updateBuffer(1); err != nil {
				return nil, err
			}
		}
		if s.Buffer[s.Buffer_pos] == '+' || s.Buffer[s.Buffer_pos] == '-' {
			if s.Buffer[s.Buffer_pos] == '+' {
				chomping = +1
			} else {
				chomping = -1
			}
			s.skip()
		}
	}

	if s.Unread < 1 {
		if err := s.updateBuffer(1); err != nil {
			return nil, err
		}
	}
	for isBlank(s.Buffer, s.Buffer_pos) {
		s.skip()
		if s.Unread < 1 {
			if err := s.updateBuffer(1); err != nil {
				return nil, err
			}
		}
	}
	if s.Buffer[s.Buffer_pos] == '#' {
		for !isBreakZ(s.Buffer, s.Buffer_pos) {
			s.skip()
			if s.Unread < 1 {
				if err := s.updateBuffer(1); err != nil {
					return nil, err
				}
			}
		}
	}

	if !isBreakZ(s.Buffer, s.Buffer_pos) {
		return nil, newScannerError(start, "did not find expected comment or line break")
	}
	if isBreak(s.Buffer, s.Buffer_pos) {
		if s.Unread < 2 {
			if err := s.updateBuffer(2); err != nil {
				return nil, err
			}
		}
		s.skipLine()
	}

	end := s.Mark

	var indent int
	if increment > 0 {
		if s.Indent >= 0 {
			indent = s.Indent + increment
		} else {
			indent = increment
		}
	}

	var val, leadingBreak, trailingBreaks []byte
	if err := s.scanBlockScalarBreaks(&indent, &trailingBreaks, start, &end); err != nil {
		return nil, err
	}

	if s.Unread < 1 {
		if err := s.updateBuffer(1); err != nil {
			return nil, err
		}
	}
	var leadingBlank, trailingBlank bool
	for s.Mark.Column == indent && !isZ(s.Buffer, s.Buffer_pos) {
		trailingBlank = isBlank(s.Buffer, s.Buffer_pos)

		if !literal && !leadingBlank && !trailingBlank && len(leadingBreak) > 0 && leadingBreak[0] == '\n' {
			if len(trailingBreaks) == 0 {
				val = append(val, ' ')
			}
		} else {
			val = append(val, leadingBreak...)
		}
		leadingBreak = leadingBreak[:0]

		val = append(val, trailingBreaks...)
		trailingBreaks = trailingBreaks[:0]

		leadingBlank = isBlank(s.Buffer, s.Buffer_pos)

		for !isBreakZ(s.Buffer, s.Buffer_pos) {
			val = s.read(val)
			if s.Unread < 1 {
				if err := s.updateBuffer(1); err != nil {
					return nil, err
				}
			}
		}

		if s.Unread < 2 {
			if err := s.updateBuffer(2); err != nil {
				return nil, err
			}
		}
		leadingBreak = s.readLine(leadingBreak)

		if err := s.scanBlockScalarBreaks(&indent, &trailingBreaks, start, &end); err != nil {
			return nil, err
		}
	}

	if chomping != -1 {
		val = append(val, leadingBreak...)
	}
	if chomping == 1 {
		val = append(val, trailingBreaks...)
	}

	style := token.LiteralScalarStyle
	if !literal {
		style = token.FoldedScalarStyle
	}
	return &token.Token{Type: token.Scalar, Start: start, End: end, Value: val, Style: style}, nil
}

func (s *Scanner) scanBlockScalarBreaks(indent *int, breaks *[]byte, start token.Position, end *token.Position) error {
	*end = s.Mark
	maxIndent := 0
	for {
		if s.Unread < 1 {
			if err := s.updateBuffer(1); err != nil {
				return err
			}
		}
		for (*indent == 0 || s.Mark.Column < *indent) && isSpace(s.Buffer, s.Buffer_pos) {
			s.skip()
			if s.Unread < 1 {
				if err := s.updateBuffer(1); err != nil {
					return err
				}
			}
		}
		if s.Mark.Column > maxIndent {
			maxIndent = s.Mark.Column
		}
		if (*indent == 0 || s.Mark.Column < *indent) && isTab(s.Buffer, s.Buffer_pos) {
			return newScannerError(start, "found a tab character where an indentation space is expected")
		}
		if !isBreak(s.Buffer, s.Buffer_pos) {
			break
		}
		if s.Unread < 2 {
			if err := s.updateBuffer(2); err != nil {
				return err
			}
		}
		*breaks = s.readLine(*breaks)
		*end = s.Mark
	}
	if *indent == 0 {
		*indent = maxIndent
		if *indent < s.Indent+1 {
			*indent = s.Indent + 1
		}
		if *indent < 1 {
			*indent = 1
		}
	}
	return nil
}

// scanFlowScalar scans a single- or double-quoted scalar. For double-quoted
// scalars the escape sequences are left as raw source bytes; only blank and
// break folding is performed here. See parser.DecodeDoubleQuoted.
func (s *Scanner) scanFlowScalar(single bool) (*token.Token, error) {
	start := s.Mark
	s.skip()

	var val, leadingBreak, trailingBreaks, whitespaces []byte
	for {
		if s.Unread < 4 {
			if err := s.updateBuffer(4); err != nil {
				return nil, err
			}
		}

		if s.Mark.Column == 0 &&
			((s.Buffer[s.Buffer_pos+0] == '-' && s.Buffer[s.Buffer_pos+1] == '-' && s.Buffer[s.Buffer_pos+2] == '-') ||
				(s.Buffer[s.Buffer_pos+0] == '.' && s.Buffer[s.Buffer_pos+1] == '.' && s.Buffer[s.Buffer_pos+2] == '.')) &&
			isBlankZ(s.Buffer, s.Buffer_pos+3) {
			return nil, newScannerError(start, "found unexpected document indicator")
		}

		if isZ(s.Buffer, s.Buffer_pos) {
			return nil, newScannerError(start, "found unexpected end of stream")
		}

		leadingBlanks := false
		for !isBlankZ(s.Buffer, s.Buffer_pos) {
			if single && s.Buffer[s.Buffer_pos] == '\'' && s.Buffer[s.Buffer_pos+1] == '\'' {
				val = append(val, '\'')
				s.skip()
				s.skip()
			} else if single && s.Buffer[s.Buffer_pos] == '\'' {
				break
			} else if !single && s.Buffer[s.Buffer_pos] == '"' {
				break
			} else if !single && s.Buffer[s.Buffer_pos] == '\\' && isBreak(s.Buffer, s.Buffer_pos+1) {
				// Escaped line break: a structural fold, consumed entirely
				// rather than left in the raw scalar text.
				if s.Unread < 3 {
					if err := s.updateBuffer(3); err != nil {
						return nil, err
					}
				}
				s.skip()
				s.skipLine()
				leadingBlanks = true
				break
			} else if !single && s.Buffer[s.Buffer_pos] == '\\' {
				if _, err := s.copyRawEscape(start, &val); err != nil {
					return nil, err
				}
			} else {
				val = s.read(val)
			}
			if s.Unread < 2 {
				if err := s.updateBuffer(2); err != nil {
					return nil, err
				}
			}
		}

		if s.Unread < 1 {
			if err := s.updateBuffer(1); err != nil {
				return nil, err
			}
		}

		if single {
			if s.Buffer[s.Buffer_pos] == '\'' {
				break
			}
		} else {
			if s.Buffer[s.Buffer_pos] == '"' {
				break
			}
		}

		for isBlank(s.Buffer, s.Buffer_pos) || isBreak(s.Buffer, s.Buffer_pos) {
			if isBlank(s.Buffer, s.Buffer_pos) {
				if !leadingBlanks {
					whitespaces = s.read(whitespaces)
				} else {
					s.skip()
				}
			} else {
				if s.Unread < 2 {
					if err := s.updateBuffer(2); err != nil {
						return nil, err
					}
				}
				if !leadingBlanks {
					whitespaces = whitespaces[:0]
					leadingBreak = s.readLine(leadingBreak)
					leadingBlanks = true
				} else {
					trailingBreaks = s.readLine(trailingBreaks)
				}
			}
			if s.Unread < 1 {
				if err := s.updateBuffer(1); err != nil {
					return nil, err
				}
			}
		}

		if leadingBlanks {
			if len(leadingBreak) > 0 && leadingBreak[0] == '\n' {
				if len(trailingBreaks) == 0 {
					val = append(val, ' ')
				} else {
					val = append(val, trailingBreaks...)
				}
			} else {
				val = append(val, leadingBreak...)
				val = append(val, trailingBreaks...)
			}
			trailingBreaks = trailingBreaks[:0]
			leadingBreak = leadingBreak[:0]
		} else {
			val = append(val, whitespaces...)
			whitespaces = whitespaces[:0]
		}
	}

	s.skip()
	end := s.Mark

	style := token.SingleQuotedScalarStyle
	if !single {
		style = token.DoubleQuotedScalarStyle
	}
	return &token.Token{Type: token.Scalar, Start: start, End: end, Value: val, Style: style}, nil
}

// copyRawEscape copies one backslash escape sequence verbatim into out,
// advancing past it. It validates only the escape selector character (it
// must determine how many bytes the sequence occupies); it does not
// validate hex digits or decode the escape, which parser.DecodeDoubleQuoted
// does later.
func (s *Scanner) copyRawEscape(start token.Position, out *[]byte) (int, error) {
	codeLength := 0
	switch s.Buffer[s.Buffer_pos+1] {
	case '0', 'a', 'b', 't', '\t', 'n', 'v', 'f', 'r', 'e', ' ', '"', '\'', '\\', 'N', '_', 'L', 'P':
	case 'x':
		codeLength = 2
	case 'u':
		codeLength = 4
	case 'U':
		codeLength = 8
	default:
		return 0, newScannerError(start, "found unknown escape character")
	}

	*out = append(*out, s.Buffer[s.Buffer_pos], s.Buffer[s.Buffer_pos+1])
	s.skip()
	s.skip()

	if codeLength > 0 {
		if s.Unread < codeLength {
			if err := s.updateBuffer(codeLength); err != nil {
				return 0, err
			}
		}
		*out = append(*out, s.Buffer[s.Buffer_pos:s.Buffer_pos+codeLength]...)
		for k := 0; k < codeLength; k++ {
			s.skip()
		}
	}
	return codeLength, nil
}

func (s *Scanner) scanPlainScalar() (*token.Token, error) {
	var val, leadingBreak, trailingBreaks, whitespaces []byte
	var leadingBlanks bool
	indent := s.Indent + 1

	start := s.Mark
	end := s.Mark

	for {
		if s.Unread < 4 {
			if err := s.updateBuffer(4); err != nil {
				return nil, err
			}
		}
		if s.Mark.Column == 0 &&
			((s.Buffer[s.Buffer_pos+0] == '-' && s.Buffer[s.Buffer_pos+1] == '-' && s.Buffer[s.Buffer_pos+2] == '-') ||
				(s.Buffer[s.Buffer_pos+0] == '.' && s.Buffer[s.Buffer_pos+1] == '.' && s.Buffer[s.Buffer_pos+2] == '.')) &&
			isBlankZ(s.Buffer, s.Buffer_pos+3) {
			break
		}
		if s.Buffer[s.Buffer_pos] == '#' {
			break
		}

		for !isBlankZ(s.Buffer, s.Buffer_pos) {
			if (s.Buffer[s.Buffer_pos] == ':' && isBlankZ(s.Buffer, s.Buffer_pos+1)) ||
				(s.Flow_level > 0 &&
					(s.Buffer[s.Buffer_pos] == ',' || s.Buffer[s.Buffer_pos] == '?' ||
						s.Buffer[s.Buffer_pos] == '[' || s.Buffer[s.Buffer_pos] == ']' ||
						s.Buffer[s.Buffer_pos] == '{' || s.Buffer[s.Buffer_pos] == '}')) {
				break
			}

			if leadingBlanks || len(whitespaces) > 0 {
				if leadingBlanks {
					if leadingBreak[0] == '\n' {
						if len(trailingBreaks) == 0 {
							val = append(val, ' ')
						} else {
							val = append(val, trailingBreaks...)
						}
					} else {
						val = append(val, leadingBreak...)
						val = append(val, trailingBreaks...)
					}
					trailingBreaks = trailingBreaks[:0]
					leadingBreak = leadingBreak[:0]
					leadingBlanks = false
				} else {
					val = append(val, whitespaces...)
					whitespaces = whitespaces[:0]
				}
			}

			val = s.read(val)
			end = s.Mark
			if s.Unread < 2 {
				if err := s.updateBuffer(2); err != nil {
					return nil, err
				}
			}
		}

		if !(isBlank(s.Buffer, s.Buffer_pos) || isBreak(s.Buffer, s.Buffer_pos)) {
			break
		}

		if s.Unread < 1 {
			if err := s.updateBuffer(1); err != nil {
				return nil, err
			}
		}

		for isBlank(s.Buffer, s.Buffer_pos) || isBreak(s.Buffer, s.Buffer_pos) {
			if isBlank(s.Buffer, s.Buffer_pos) {
				if leadingBlanks && s.Mark.Column < indent && isTab(s.Buffer, s.Buffer_pos) {
					return nil, newScannerError(start, "found a tab character that violates indentation")
				}
				if !leadingBlanks {
					whitespaces = s.read(whitespaces)
				} else {
					s.skip()
				}
			} else {
				if s.Unread < 2 {
					if err := s.updateBuffer(2); err != nil {
						return nil, err
					}
				}
				if !leadingBlanks {
					whitespaces = whitespaces[:0]
					leadingBreak = s.readLine(leadingBreak)
					leadingBlanks = true
				} else {
					trailingBreaks = s.readLine(trailingBreaks)
				}
			}
			if s.Unread < 1 {
				if err := s.updateBuffer(1); err != nil {
					return nil, err
				}
			}
		}

		if s.Flow_level == 0 && s.Mark.Column < indent {
			break
		}
	}

	if leadingBlanks {
		s.Simple_key_allowed = true
	}
	return &token.Token{Type: token.Scalar, Start: start, End: end, Value: val, Style: token.PlainScalarStyle}, nil
}
