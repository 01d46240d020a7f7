package repl

import (
	"slices"
	"testing"

	"github.com/ardnew/konfi/lang"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"after_plus", "a + fo", 6, "fo", 4, 6},
		{"after_paren", "(fo", 3, "fo", 1, 3},
		{"between_operators", "a+b", 2, "b", 2, 3},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		// Dots join identifiers into a single path word.
		{"dotted_path", "svc.po", 6, "svc.po", 0, 6},
		{"dotted_after_op", "a + svc.po", 10, "svc.po", 4, 10},
		{"trailing_dot", "svc.", 4, "svc.", 0, 4},
		{"underscore", "a_b", 3, "a_b", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

// loadSession builds a session over the given module source.
func loadSession(t *testing.T, source string) *lang.Session {
	t.Helper()

	mod, err := lang.ParseModule(source)
	if err != nil {
		t.Fatal(err)
	}

	sess := lang.NewSession()
	if _, err := sess.Load(mod); err != nil {
		t.Fatal(err)
	}

	return sess
}

func testModel(t *testing.T, source, input string, cursor int) model {
	t.Helper()

	m := newModel(
		t.Context(),
		loadSession(t, source),
		NewHistory(""),
		testLogger(t),
	)
	m.input.SetValue(input)
	m.input.SetCursor(cursor)

	return m
}

func matchStrings(matches []string, m model) []string {
	for _, match := range m.matches {
		matches = append(matches, match.Str)
	}

	return matches
}

func TestComputeMatches_FieldPaths(t *testing.T) {
	const source = `{
	port: 80
	svc: {
		host: "x"
		path: "/"
	}
}`

	tests := []struct {
		name   string
		input  string
		cursor int
		want   []string
	}{
		{"prefix", "po", 2, []string{"port"}},
		{"nested", "svc.ho", 6, []string{"svc.host"}},
		{"trailing_dot_lists_children", "svc.", 4, []string{
			"svc.host", "svc.path",
		}},
		{"no_match", "zz", 2, nil},
		{"empty_input", "", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testModel(t, source, tt.input, tt.cursor)
			m.refreshMatches()

			got := matchStrings(nil, m)
			if !slices.Equal(got, tt.want) {
				t.Errorf("matches for %q = %v, want %v",
					tt.input, got, tt.want)
			}
		})
	}
}

func TestComputeMatches_Commands(t *testing.T) {
	m := testModel(t, "{ a: 1 }", ":he", 3)
	m.refreshMatches()

	got := matchStrings(nil, m)
	if !slices.Contains(got, "help") {
		t.Errorf("matches for %q = %v, want to contain %q", ":he", got, "help")
	}
}

func TestReplaceCurrentWord(t *testing.T) {
	m := testModel(t, "{ port: 80 }", "1 + po", 6)
	m.refreshMatches()

	if len(m.matches) != 1 {
		t.Fatalf("matches = %v, want single match", m.matches)
	}

	m.replaceCurrentWord(m.matches[0].Str)

	if got := m.input.Value(); got != "1 + port" {
		t.Errorf("input after replace = %q, want %q", got, "1 + port")
	}

	if got := m.input.Position(); got != 8 {
		t.Errorf("cursor after replace = %d, want 8", got)
	}
}
