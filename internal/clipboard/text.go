package clipboard

import (
	"html"
	"strconv"
	"strings"
)

func isRTF(text string) bool {
	return strings.HasPrefix(text, "{\\rtf") || strings.Contains(text, "\\rtf1")
}

func isHTML(text string) bool {
	t := strings.TrimSpace(text)
	return strings.HasPrefix(t, "<") &&
		(strings.Contains(t, "<html") || strings.Contains(t, "<body") || strings.Contains(t, "<div") || strings.Contains(t, "<p"))
}

// PlainText converts rich clipboard content to text suitable for a text
// shape: RTF and HTML are unwrapped, control characters dropped and line
// endings normalised to \n.
func PlainText(text string) string {
	switch {
	case isRTF(text):
		text = rtfText(text)
	case isHTML(text):
		text = htmlText(text)
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' || r >= 32 {
			b.WriteRune(r)
		}
	}
	out := strings.ReplaceAll(b.String(), "\r\n", "\n")
	return strings.ReplaceAll(out, "\r", "\n")
}

// rtfText keeps the literal text of an RTF document. \par and \line become
// newlines, \tab a tab and \'hh a Latin-1 byte; other control words and
// groups are skipped.
func rtfText(rtf string) string {
	var b strings.Builder
	b.Grow(len(rtf))

	for i := 0; i < len(rtf); i++ {
		ch := rtf[i]
		switch {
		case ch == '{' || ch == '}':
			continue
		case ch == '\\' && i+1 < len(rtf):
			next := rtf[i+1]
			switch {
			case next == '\\' || next == '{' || next == '}':
				b.WriteByte(next)
				i++
			case next == '\'' && i+3 < len(rtf):
				if v, err := strconv.ParseUint(rtf[i+2:i+4], 16, 8); err == nil {
					b.WriteRune(rune(v))
				}
				i += 3
			case next == '~':
				b.WriteByte(' ')
				i++
			case isLetter(next):
				j := i + 1
				for j < len(rtf) && isLetter(rtf[j]) {
					j++
				}
				word := rtf[i+1 : j]
				for j < len(rtf) && (rtf[j] == '-' || (rtf[j] >= '0' && rtf[j] <= '9')) {
					j++
				}
				if j < len(rtf) && rtf[j] == ' ' {
					j++
				}
				switch word {
				case "par", "line":
					b.WriteByte('\n')
				case "tab":
					b.WriteByte('\t')
				}
				i = j - 1
			default:
				i++
			}
		case ch == '\n' || ch == '\r':
			// raw newlines are formatting in RTF
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func htmlText(doc string) string {
	var b strings.Builder
	b.Grow(len(doc))
	inTag := false
	for _, r := range doc {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(html.UnescapeString(b.String()))
}
