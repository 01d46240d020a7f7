package repl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// ctrlCommands are the available colon-prefixed commands.
var ctrlCommands = []string{"help", "list", "clear", "quit"}

// isWordRune reports whether the rune can appear in a completion word.
// Dots are included so dotted field paths complete as a single word.
func isWordRune(r rune) bool {
	return r == '.' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wordBounds returns the word at the cursor position and its byte boundaries
// within input. Words are maximal runs of identifier characters and dots, so
// for "port + svc.ho" with the cursor at the end, the word is "svc.ho".
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if !isWordRune(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if !isWordRune(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor. Candidates are colon commands when the input is a command, and the
// loaded module's dotted field paths otherwise. Matches are ranked
// best-first.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	var candidates []string

	if cmd, ok := strings.CutPrefix(input, ":"); ok {
		word, ws, we := wordBounds(cmd, max(cursor-1, 0))
		wordStart, wordEnd = ws+1, we+1

		if word == "" {
			return nil, wordStart, wordEnd
		}

		return fuzzy.Find(word, ctrlCommands), wordStart, wordEnd
	}

	word, ws, we := wordBounds(input, cursor)
	wordStart, wordEnd = ws, we
	candidates = m.session.FieldPaths()

	if word == "" || len(candidates) == 0 {
		return nil, wordStart, wordEnd
	}

	// When the word ends with a dot, offer every path below it.
	if prefix, ok := strings.CutSuffix(word, "."); ok {
		for _, c := range candidates {
			if strings.HasPrefix(c, prefix+".") {
				matches = append(matches, fuzzy.Match{Str: c})
			}
		}

		return matches, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its
// matched characters highlighted. The selected candidate (when tabbing) uses
// the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		selected := tabActive && i == suggIdx
		rendered := renderCandidate(match, selected)
		candidateWidth := lipgloss.Width(rendered)

		entryWidth := candidateWidth
		if i > 0 {
			entryWidth += sepWidth
		}

		// Check if adding this candidate would exceed width.
		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth

		// If this is the last candidate, no need to reserve ellipsis space.
		if i == len(matches)-1 {
			break
		}
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := matchedStyle

	if selected {
		baseStyle = selectedStyle
		highlightStyle = selectedMatchedStyle
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		ch := string(r)
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(ch))
		} else {
			b.WriteString(baseStyle.Render(ch))
		}
	}

	return b.String()
}
