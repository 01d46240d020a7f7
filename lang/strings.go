package lang

import (
	"strings"
	"unicode/utf8"
)

// scanString decodes a double-quoted string literal starting at src[pos],
// where src[pos] must be the opening quote. It returns the decoded value
// and the offset one past the closing quote.
func scanString(src string, pos int) (string, int, error) {
	if pos >= len(src) || src[pos] != '"' {
		return "", pos, errStringDelim
	}

	var sb strings.Builder

	i := pos + 1

	for i < len(src) {
		switch src[i] {
		case '"':
			return sb.String(), i + 1, nil

		case '\\':
			next, err := scanEscape(&sb, src, i)
			if err != nil {
				return "", pos, err
			}

			i = next

		default:
			r, size := utf8.DecodeRuneInString(src[i:])
			sb.WriteRune(r)
			i += size
		}
	}

	return "", pos, errStringUnterminated
}

// scanEscape decodes one escape sequence beginning at the backslash at
// src[i] and returns the offset following the sequence. A backslash before
// a whitespace run erases the run, producing nothing.
func scanEscape(sb *strings.Builder, src string, i int) (int, error) {
	if i+1 >= len(src) {
		return i, errStringUnterminated
	}

	switch c := src[i+1]; c {
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case '\\', '\'', '/', '"':
		sb.WriteByte(c)
	case 'u':
		return scanUnicodeEscape(sb, src, i)
	case ' ', '\t', '\n', '\r':
		j := i + 1
		for j < len(src) && isSpaceByte(src[j]) {
			j++
		}

		return j, nil
	default:
		return i, errStringEscape
	}

	return i + 2, nil
}

// scanUnicodeEscape decodes "\u{H...}" with one to six hex digits, starting
// at the backslash at src[i].
func scanUnicodeEscape(sb *strings.Builder, src string, i int) (int, error) {
	j := i + 2
	if j >= len(src) || src[j] != '{' {
		return i, errStringEscape
	}

	j++

	var code rune

	digits := 0
	for j < len(src) && digits < 6 {
		d, ok := hexVal(src[j])
		if !ok {
			break
		}

		code = code<<4 | rune(d)
		digits++
		j++
	}

	if digits == 0 || j >= len(src) || src[j] != '}' {
		return i, errStringEscape
	}

	if !utf8.ValidRune(code) {
		return i, errStringEscape
	}

	sb.WriteRune(code)

	return j + 1, nil
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// DecodeString decodes a complete double-quoted string literal. The entire
// input must be consumed by the literal.
func DecodeString(src string) (string, error) {
	s, end, err := scanString(src, 0)
	if err != nil {
		return "", err
	}

	if end != len(src) {
		return "", errStringTrailing
	}

	return s, nil
}
