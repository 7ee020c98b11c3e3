package scanner

// Byte classification helpers used while tokenizing. These operate on a
// buffer plus an index rather than a single byte because several YAML
// "characters" (NEL, LS, PS) are multi-byte UTF-8 sequences once decoded
// into the scanner's internal buffer.

func isAlpha(b []byte, i int) bool {
	return b[i] >= '0' && b[i] <= '9' || b[i] >= 'A' && b[i] <= 'Z' || b[i] >= 'a' && b[i] <= 'z' || b[i] == '_' || b[i] == '-'
}

func isDigit(b []byte, i int) bool {
	return b[i] >= '0' && b[i] <= '9'
}

func asDigit(b []byte, i int) int {
	return int(b[i]) - '0'
}

func isHex(b []byte, i int) bool {
	return b[i] >= '0' && b[i] <= '9' || b[i] >= 'A' && b[i] <= 'F' || b[i] >= 'a' && b[i] <= 'f'
}

func asHex(b []byte, i int) int {
	bi := b[i]
	if bi >= 'A' && bi <= 'F' {
		return int(bi) - 'A' + 10
	}
	if bi >= 'a' && bi <= 'f' {
		return int(bi) - 'a' + 10
	}
	return int(bi) - '0'
}

func isZ(b []byte, i int) bool {
	return b[i] == 0x00
}

func isBOM(b []byte, i int) bool {
	return b[i] == 0xEF && b[i+1] == 0xBB && b[i+2] == 0xBF
}

func isSpace(b []byte, i int) bool {
	return b[i] == ' '
}

func isTab(b []byte, i int) bool {
	return b[i] == '\t'
}

func isBlank(b []byte, i int) bool {
	return b[i] == ' ' || b[i] == '\t'
}

func isBreak(b []byte, i int) bool {
	return b[i] == '\r' || // CR (#xD)
		b[i] == '\n' || // LF (#xA)
		b[i] == 0xC2 && b[i+1] == 0x85 || // NEL (#x85)
		b[i] == 0xE2 && b[i+1] == 0x80 && b[i+2] == 0xA8 || // LS (#x2028)
		b[i] == 0xE2 && b[i+1] == 0x80 && b[i+2] == 0xA9 // PS (#x2029)
}

func isCRLF(b []byte, i int) bool {
	return b[i] == '\r' && b[i+1] == '\n'
}

func isBreakZ(b []byte, i int) bool {
	return isBreak(b, i) || isZ(b, i)
}

func isBlankZ(b []byte, i int) bool {
	return isBlank(b, i) || isBreakZ(b, i)
}

// width returns the UTF-8 sequence length of the character whose leading
// octet is b, or 0 if the octet cannot start a valid sequence.
func width(b byte) int {
	if b&0x80 == 0x00 {
		return 1
	}
	if b&0xE0 == 0xC0 {
		return 2
	}
	if b&0xF0 == 0xE0 {
		return 3
	}
	if b&0xF8 == 0xF0 {
		return 4
	}
	return 0
}
