package wizard

import (
	"regexp"
	"strings"

	tea "charm.land/bubbletea/v2"
)

// ansiEscapePattern matches CSI escape sequences such as colors and cursor moves.
var ansiEscapePattern = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// newlinePattern matches one or more newline characters.
var newlinePattern = regexp.MustCompile(`\n+`)

// SanitizePaste cleans pasted or externally edited text:
// ANSI escapes and control characters other than \n, \t and \r are dropped,
// CRLF becomes LF and trailing whitespace is trimmed.
func SanitizePaste(content string) string {
	content = ansiEscapePattern.ReplaceAllString(content, "")

	var b strings.Builder
	for _, r := range content {
		switch {
		case r == 0, r >= 1 && r <= 8, r == 11 || r == 12, r >= 14 && r <= 31, r == 127:
			continue
		default:
			b.WriteRune(r)
		}
	}
	content = strings.ReplaceAll(b.String(), "\r\n", "\n")
	return strings.TrimRight(content, " \t\n\r")
}

// SingleLine sanitizes content for a one-line input, collapsing newlines to spaces.
func SingleLine(content string) string {
	return strings.TrimSpace(newlinePattern.ReplaceAllString(SanitizePaste(content), " "))
}

// SanitizePasteMsg returns msg with its content sanitized. Other messages pass through.
func SanitizePasteMsg(msg tea.Msg, singleLine bool) tea.Msg {
	p, ok := msg.(tea.PasteMsg)
	if !ok {
		return msg
	}
	if singleLine {
		p.Content = SingleLine(p.Content)
	} else {
		p.Content = SanitizePaste(p.Content)
	}
	return p
}
