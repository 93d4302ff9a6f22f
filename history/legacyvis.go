package history

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// legacyCookie is the sentinel first line of a fish-1.x/libedit-format
// history file (spec.md §4.6 "legacy fish-1.x autodetection").
const legacyCookie = "_HiStOrY_V2_"

// encodeVis and decodeVis implement libedit's visual encoding, carried
// over unmodified from the teacher (petermattis/prompt's vis.go) since
// fish's own legacy reader used the identical scheme for its first (1.x)
// history file format.

func encodeVis(s string) string {
	var buf strings.Builder
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]

		switch {
		case unicode.IsSpace(r) || r == '\\':
			fmt.Fprintf(&buf, "\\%03o", int(r))
		case unicode.IsControl(r):
			buf.WriteByte('\\')
			buf.WriteByte('^')
			buf.WriteRune(r + 0x40)
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

func decodeVis(s string) (string, error) {
	var buf strings.Builder

	for len(s) > 0 {
		meta := byte(0)
		t, ch := s, s[0]
		s = s[1:]

		switch ch {
		case '\\':
			if len(s) == 0 {
				return "", fmt.Errorf("invalid syntax")
			}
			ch, s = s[0], s[1:]
			switch ch {
			case '0', '1', '2', '3', '4', '5', '6', '7', 'x', '\\', 'a', 'b', 'f', 'n', 'r', 't', 'v':
				r, _, rem, err := strconv.UnquoteChar(t, 0)
				if err != nil {
					return "", err
				}
				buf.WriteRune(r)
				s = rem
			case 'M':
				if len(s) == 0 {
					return "", fmt.Errorf("invalid syntax")
				}
				meta = 0200
				ch, s = s[0], s[1:]
				switch ch {
				case '-':
					if len(s) == 0 {
						return "", fmt.Errorf("invalid syntax")
					}
					ch, s = s[0], s[1:]
					buf.WriteByte(ch | meta)
					continue
				case '^':
				default:
					return "", fmt.Errorf("invalid syntax")
				}
				fallthrough
			case '^':
				if len(s) == 0 {
					return "", fmt.Errorf("invalid syntax")
				}
				ch, s = s[0], s[1:]
				switch ch {
				case '?':
					buf.WriteByte(0177 | meta)
				default:
					buf.WriteByte((ch & 037) | meta)
				}
			case 's':
				buf.WriteByte(' ')
			case 'E':
				buf.WriteByte('\x1b')
			case '\n', '$':
			default:
				return "", fmt.Errorf("invalid syntax")
			}

		default:
			r, size := utf8.DecodeRuneInString(t)
			buf.WriteRune(r)
			s = t[size:]
		}
	}

	return buf.String(), nil
}

// decodeLegacy parses a fish-1.x/libedit-format history file body (every
// line after the cookie), oldest entry first.
func decodeLegacy(lines []string) ([]Item, error) {
	var items []Item
	for _, line := range lines {
		if line == "" {
			continue
		}
		text, err := decodeVis(line)
		if err != nil {
			return nil, err
		}
		items = append(items, Item{Text: text})
	}
	return items, nil
}
