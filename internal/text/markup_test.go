package text

import (
	"testing"

	"github.com/drafter/drafter/internal/render"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarkup(t *testing.T) {
	red := render.RGB(255, 0, 0)
	tests := []struct {
		name string
		in   string
		want []Run
	}{
		{"plain", "hello &amp; bye", []Run{{Text: "hello & bye"}}},
		{"bold", "a <b>bold</b> b", []Run{{Text: "a "}, {Text: "bold", Bold: true}, {Text: " b"}}},
		{"nested", "<b><i>x</i></b>", []Run{{Text: "x", Bold: true, Italic: true}}},
		{"break", "a<br>b", []Run{{Text: "a"}, {Text: "\n"}, {Text: "b"}}},
		{
			"span",
			`<span color="rgb(255, 0, 0)" size="14" font="Courier" weight="bold">x</span>`,
			[]Run{{Text: "x", Color: &red, Size: 14, Family: "Courier", Bold: true}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMarkup(tt.in)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseMarkup(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParseMarkupErrors(t *testing.T) {
	for _, in := range []string{
		"<table>x</table>",
		`<span color="nope">x</span>`,
		`<span size="-1">x</span>`,
		`<span underline="single">x</span>`,
	} {
		_, err := ParseMarkup(in)
		assert.Error(t, err, in)
	}
}

func TestRunFont(t *testing.T) {
	base := render.Font{Family: "Helvetica", Size: 10}
	got := Run{Size: 12, Italic: true}.Font(base)
	assert.Equal(t, render.Font{Family: "Helvetica", Size: 12, Italic: true}, got)
}

func TestCollapseSpace(t *testing.T) {
	runs := []Run{
		{Text: "\n   Hello \t "},
		{Text: "  big", Bold: true},
		{Text: " world  "},
		{Text: "\n"},
		{Text: "  next\n line  "},
	}
	want := []Run{
		{Text: "Hello "},
		{Text: "big", Bold: true},
		{Text: " world"},
		{Text: "\n"},
		{Text: "next line"},
	}
	if diff := cmp.Diff(want, CollapseSpace(runs)); diff != "" {
		t.Errorf("CollapseSpace mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, CollapseSpace([]Run{{Text: "  \n\t "}}))
}
