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

package scanner

import (
	"io"

	"github.com/yevent/parser/token"
)

func newReaderError(problem string) error {
	return &Error{Problem: problem}
}

// Byte order marks. The 4-byte UTF-32LE form is a byte-superset of the
// 2-byte UTF-16LE form, so it must be checked first.
const (
	bomUTF8    = "\xef\xbb\xbf"
	bomUTF16LE = "\xff\xfe"
	bomUTF16BE = "\xfe\xff"
	bomUTF32LE = "\xff\xfe\x00\x00"
	bomUTF32BE = "\x00\x00\xfe\xff"
)

// determineEncoding sniffs the stream's BOM, if any, and defaults to UTF-8
// when none is present.
func (s *Scanner) determineEncoding() error {
	for !s.Eof && len(s.Raw_buffer)-s.Raw_buffer_pos < 4 {
		if err := s.updateRawBuffer(); err != nil {
			return err
		}
	}

	buf := s.Raw_buffer
	pos := s.Raw_buffer_pos
	avail := len(buf) - pos
	switch {
	case avail >= 4 && buf[pos] == bomUTF32LE[0] && buf[pos+1] == bomUTF32LE[1] && buf[pos+2] == bomUTF32LE[2] && buf[pos+3] == bomUTF32LE[3]:
		s.Encoding = token.UTF32LE
		s.Raw_buffer_pos += 4
		s.Offset += 4
	case avail >= 4 && buf[pos] == bomUTF32BE[0] && buf[pos+1] == bomUTF32BE[1] && buf[pos+2] == bomUTF32BE[2] && buf[pos+3] == bomUTF32BE[3]:
		s.Encoding = token.UTF32BE
		s.Raw_buffer_pos += 4
		s.Offset += 4
	case avail >= 2 && buf[pos] == bomUTF16LE[0] && buf[pos+1] == bomUTF16LE[1]:
		s.Encoding = token.UTF16LE
		s.Raw_buffer_pos += 2
		s.Offset += 2
	case avail >= 2 && buf[pos] == bomUTF16BE[0] && buf[pos+1] == bomUTF16BE[1]:
		s.Encoding = token.UTF16BE
		s.Raw_buffer_pos += 2
		s.Offset += 2
	case avail >= 3 && buf[pos] == bomUTF8[0] && buf[pos+1] == bomUTF8[1] && buf[pos+2] == bomUTF8[2]:
		s.Encoding = token.UTF8
		s.Raw_buffer_pos += 3
		s.Offset += 3
	default:
		s.Encoding = token.UTF8
	}
	return nil
}

func (s *Scanner) updateRawBuffer() error {
	if s.Raw_buffer_pos == 0 && len(s.Raw_buffer) == cap(s.Raw_buffer) {
		return nil
	}
	if s.Eof {
		return nil
	}

	if s.Raw_buffer_pos > 0 && s.Raw_buffer_pos < len(s.Raw_buffer) {
		copy(s.Raw_buffer, s.Raw_buffer[s.Raw_buffer_pos:])
	}
	s.Raw_buffer = s.Raw_buffer[:len(s.Raw_buffer)-s.Raw_buffer_pos]
	s.Raw_buffer_pos = 0

	n, err := s.reader.Read(s.Raw_buffer[len(s.Raw_buffer):cap(s.Raw_buffer)])
	switch err {
	case nil:
	case io.EOF:
		s.Eof = true
	default:
		return newReaderError("input error: " + err.Error())
	}
	s.Raw_buffer = s.Raw_buffer[:len(s.Raw_buffer)+n]
	return nil
}

// updateBuffer ensures the working buffer holds at least length decoded
// characters, refilling and decoding from the raw buffer as needed.
func (s *Scanner) updateBuffer(length int) error {
	if s.reader == nil {
		panic("scanner used without a reader")
	}

	if s.Unread >= length {
		return nil
	}

	if s.Encoding == token.AnyEncoding {
		if err := s.determineEncoding(); err != nil {
			return err
		}
	}

	bufferLen := len(s.Buffer)
	if s.Buffer_pos > 0 && s.Buffer_pos < bufferLen {
		copy(s.Buffer, s.Buffer[s.Buffer_pos:])
		bufferLen -= s.Buffer_pos
		s.Buffer_pos = 0
	} else if s.Buffer_pos == bufferLen {
		bufferLen = 0
		s.Buffer_pos = 0
	}

	s.Buffer = s.Buffer[:cap(s.Buffer)]

	first := true
	for s.Unread < length {
		if !first || s.Raw_buffer_pos == len(s.Raw_buffer) {
			if err := s.updateRawBuffer(); err != nil {
				s.Buffer = s.Buffer[:bufferLen]
				return err
			}
		}
		first = false

	inner:
		for s.Raw_buffer_pos != len(s.Raw_buffer) {
			var value rune
			var w int

			rawUnread := len(s.Raw_buffer) - s.Raw_buffer_pos

			switch s.Encoding {
			case token.UTF8:
				octet := s.Raw_buffer[s.Raw_buffer_pos]
				switch {
				case octet&0x80 == 0x00:
					w = 1
				case octet&0xE0 == 0xC0:
					w = 2
				case octet&0xF0 == 0xE0:
					w = 3
				case octet&0xF8 == 0xF0:
					w = 4
				default:
					return newReaderError("invalid leading UTF-8 octet")
				}

				if w > rawUnread {
					if s.Eof {
						return newReaderError("incomplete UTF-8 octet sequence")
					}
					break inner
				}

				switch {
				case octet&0x80 == 0x00:
					value = rune(octet & 0x7F)
				case octet&0xE0 == 0xC0:
					value = rune(octet & 0x1F)
				case octet&0xF0 == 0xE0:
					value = rune(octet & 0x0F)
				case octet&0xF8 == 0xF0:
					value = rune(octet & 0x07)
				}

				for k := 1; k < w; k++ {
					octet = s.Raw_buffer[s.Raw_buffer_pos+k]
					if octet&0xC0 != 0x80 {
						return newReaderError("invalid trailing UTF-8 octet")
					}
					value = (value << 6) + rune(octet&0x3F)
				}

				switch {
				case w == 1:
				case w == 2 && value >= 0x80:
				case w == 3 && value >= 0x800:
				case w == 4 && value >= 0x10000:
				default:
					return newReaderError("invalid length of a UTF-8 sequence")
				}

				if value >= 0xD800 && value <= 0xDFFF || value > 0x10FFFF {
					return newReaderError("invalid Unicode character")
				}

			case token.UTF16LE, token.UTF16BE:
				var low, high int
				if s.Encoding == token.UTF16LE {
					low, high = 0, 1
				} else {
					low, high = 1, 0
				}

				if rawUnread < 2 {
					if s.Eof {
						return newReaderError("incomplete UTF-16 character")
					}
					break inner
				}

				value = rune(s.Raw_buffer[s.Raw_buffer_pos+low]) +
					(rune(s.Raw_buffer[s.Raw_buffer_pos+high]) << 8)

				if value&0xFC00 == 0xDC00 {
					return newReaderError("unexpected low surrogate area")
				}

				if value&0xFC00 == 0xD800 {
					w = 4
					if rawUnread < 4 {
						if s.Eof {
							return newReaderError("incomplete UTF-16 surrogate pair")
						}
						break inner
					}
					value2 := rune(s.Raw_buffer[s.Raw_buffer_pos+low+2]) +
						(rune(s.Raw_buffer[s.Raw_buffer_pos+high+2]) << 8)
					if value2&0xFC00 != 0xDC00 {
						return newReaderError("expected low surrogate area")
					}
					value = 0x10000 + ((value & 0x3FF) << 10) + (value2 & 0x3FF)
				} else {
					w = 2
				}

			case token.UTF32LE, token.UTF32BE:
				if rawUnread < 4 {
					if s.Eof {
						return newReaderError("incomplete UTF-32 character")
					}
					break inner
				}
				w = 4
				b := s.Raw_buffer[s.Raw_buffer_pos : s.Raw_buffer_pos+4]
				if s.Encoding == token.UTF32LE {
					value = rune(b[0]) | rune(b[1])<<8 | rune(b[2])<<16 | rune(b[3])<<24
				} else {
					value = rune(b[3]) | rune(b[2])<<8 | rune(b[1])<<16 | rune(b[0])<<24
				}
				if value >= 0xD800 && value <= 0xDFFF || value > 0x10FFFF {
					return newReaderError("invalid Unicode character")
				}

			default:
				panic("impossible encoding")
			}

			switch {
			case value == 0x09:
			case value == 0x0A:
			case value == 0x0D:
			case value >= 0x20 && value <= 0x7E:
			case value == 0x85:
			case value >= 0xA0 && value <= 0xD7FF:
			case value >= 0xE000 && value <= 0xFFFD:
			case value >= 0x10000 && value <= 0x10FFFF:
			default:
				return newReaderError("control characters are not allowed")
			}

			s.Raw_buffer_pos += w
			s.Offset += w

			switch {
			case value <= 0x7F:
				s.Buffer[bufferLen+0] = byte(value)
				bufferLen += 1
			case value <= 0x7FF:
				s.Buffer[bufferLen+0] = byte(0xC0 + (value >> 6))
				s.Buffer[bufferLen+1] = byte(0x80 + (value & 0x3F))
				bufferLen += 2
			case value <= 0xFFFF:
				s.Buffer[bufferLen+0] = byte(0xE0 + (value >> 12))
				s.Buffer[bufferLen+1] = byte(0x80 + ((value >> 6) & 0x3F))
				s.Buffer[bufferLen+2] = byte(0x80 + (value & 0x3F))
				bufferLen += 3
			default:
				s.Buffer[bufferLen+0] = byte(0xF0 + (value >> 18))
				s.Buffer[bufferLen+1] = byte(0x80 + ((value >> 12) & 0x3F))
				s.Buffer[bufferLen+2] = byte(0x80 + ((value >> 6) & 0x3F))
				s.Buffer[bufferLen+3] = byte(0x80 + (value & 0x3F))
				bufferLen += 4
			}

			s.Unread++
		}

		if s.Eof {
			s.Buffer[bufferLen] = 0
			bufferLen++
			s.Unread++
			break
		}
	}
	for bufferLen < length {
		s.Buffer[bufferLen] = 0
		bufferLen++
	}
	s.Buffer = s.Buffer[:bufferLen]
	return nil
}
