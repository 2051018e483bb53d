package pipeline

import "testing"

// ---------------------------------------------------------------------------
// TestLists - Bullet and numbered items
// ---------------------------------------------------------------------------

func TestLists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"dash bullets", "- one\n- two", "* one\n* two"},
		{"plus bullet", "+ one", "* one"},
		{"star bullet unchanged", "* one", "* one"},
		{"nested bullet keeps indent", "- a\n  - b", "* a\n  * b"},
		{"numbered", "1. first\n2. second", "#. first\n#. second"},
		{"paren numbered", "10) tenth", "#. tenth"},
		{"number without space", "3.14 is pi", "3.14 is pi"},
		{"dash without text", "- ", "- "},
		{"spaced dash break", "a\n- - -\nb", "a\n\n----\n\nb"},
		{"dash break alone", "- - -", "----"},
		{"dash break wide spacing", "-  -  -  -", "----"},
		{"dash break between blanks", "a\n\n- - -\n\nb", "a\n\n----\n\nb"},
		{"item made of dashes and text", "- - x", "* - x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := render(t, tt.source); got != tt.want {
				t.Errorf("body = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestQuotes - Note directives
// ---------------------------------------------------------------------------

func TestQuotes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "plain quote",
			source: "> read this\n",
			want:   ".. note::\n   read this\n",
		},
		{
			name:   "bold quote loses markers",
			source: "> **Warning**\n",
			want:   ".. note::\n   Warning\n",
		},
		{
			name:   "bold quote with rest",
			source: "> **Tip:** use it\n",
			want:   ".. note::\n   Tip: use it\n",
		},
		{
			name:   "consecutive lines join",
			source: "> line one\n> line two\n",
			want:   ".. note::\n   line one\n   line two\n",
		},
		{
			name:   "bare quote line is a paragraph break",
			source: "> one\n>\n> two\n",
			want:   ".. note::\n   one\n\n   two\n",
		},
		{
			name:   "separated from preceding paragraph",
			source: "Para\n> quote\n",
			want:   "Para\n\n.. note::\n   quote\n",
		},
		{
			name:   "separate quotes stay separate",
			source: "> a\n\n> b\n",
			want:   ".. note::\n   a\n\n.. note::\n   b\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := render(t, tt.source); got != tt.want {
				t.Errorf("body = %q, want %q", got, tt.want)
			}
		})
	}
}
