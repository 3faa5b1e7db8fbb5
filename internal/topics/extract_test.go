package topics

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "mixed syllabus",
			text: strings.Join([]string{
				"Biology Syllabus",
				"1. Introduction to Cells",
				"2) Photosynthesis and Energy",
				"- Genetics Basics",
				"* Evolution Theory",
				"Chapter 5: Ecology Overview",
				"Overview of Scientific Method",
			}, "\n"),
			want: []string{
				"Introduction to Cells",
				"Photosynthesis and Energy",
				"Genetics Basics",
				"Evolution Theory",
				"Ecology Overview",
				"Overview of Scientific Method",
			},
		},
		{
			name: "duplicates keep first position",
			text: "1. Genetics Basics\n- Genetics Basics\n2. Mendelian Inheritance",
			want: []string{"Genetics Basics", "Mendelian Inheritance"},
		},
		{
			name: "headings match case-insensitively",
			text: "unit 3: cell division",
			want: []string{"cell division"},
		},
		{
			name: "title line rules",
			text: strings.Join([]string{
				"Theory",                          // too short
				"Application of Newton's laws.",   // trailing period
				"Concepts: energy and work",       // colon
				"introduction to thermodynamics",  // lowercase
				"Applications in Modern Industry", // ok
			}, "\n"),
			want: []string{"Applications in Modern Industry"},
		},
		{
			name: "falls back to leading sentences",
			text: "this is a long sentence without structure. short one. another fairly long sentence here!",
			want: []string{"this is a long sentence without structure", "another fairly long sentence here!"},
		},
		{
			name: "short candidates dropped before fallback",
			text: "1. Cells",
			want: nil,
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text))
		})
	}
}

func TestExtract_CapsAtFifteen(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 20; i++ {
		fmt.Fprintf(&b, "%d. Topic number %d\n", i, i)
	}
	got := Extract(b.String())
	assert.Len(t, got, MaxTopics)
	assert.Equal(t, "Topic number 1", got[0])
	assert.Equal(t, "Topic number 15", got[14])
}

func TestExtract_FallbackUsesFirstTenSentences(t *testing.T) {
	var parts []string
	for i := 0; i < 12; i++ {
		parts = append(parts, fmt.Sprintf("sentence %02d has enough words in it", i))
	}
	got := Extract(strings.Join(parts, ". "))
	assert.Len(t, got, 10)
	assert.Equal(t, "sentence 09 has enough words in it", got[9])
}
