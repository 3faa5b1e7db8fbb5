// Package topics turns syllabus images into text and text into an ordered
// list of topic strings.
package topics

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxTopics caps the list stored on a session.
	MaxTopics = 15

	minTopicLen = 5
	maxTopicLen = 150

	fallbackSentences = 10
)

var (
	numberedRe = regexp.MustCompile(`\d+[.)]\s*([A-Z][^\n]+)`)
	bulletRe   = regexp.MustCompile(`[-*•]\s*([A-Z][^\n]+)`)
	// Case-insensitive as a whole, so the capture may start lowercase.
	headingRe  = regexp.MustCompile(`(?i)(?:Chapter|Unit|Topic|Module)\s*\d*[:\-]?\s*([A-Z][^\n]+)`)
	sentenceRe = regexp.MustCompile(`[.!?]\s+`)

	titleKeywords = []string{"introduction", "overview", "concept", "theory", "application"}
)

// Extract pulls topic candidates out of OCR text: numbered items, bullets,
// chapter/unit headings and title-like lines mentioning a course keyword.
// Duplicates are dropped keeping first occurrence order. When nothing
// matches, the first sentences of the text stand in for topics.
func Extract(text string) []string {
	var candidates []string
	for _, re := range []*regexp.Regexp{numberedRe, bulletRe, headingRe} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			candidates = append(candidates, strings.TrimSpace(m[1]))
		}
	}
	candidates = append(candidates, titleLines(text)...)

	seen := make(map[string]bool, len(candidates))
	var out []string
	for _, c := range candidates {
		n := utf8.RuneCountInString(c)
		if seen[c] || n <= minTopicLen || n >= maxTopicLen {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}

	if len(out) == 0 {
		out = leadingSentences(text)
	}
	if len(out) > MaxTopics {
		out = out[:MaxTopics]
	}
	return out
}

func titleLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		n := utf8.RuneCountInString(line)
		if n <= 10 || n >= 100 {
			continue
		}
		first, _ := utf8.DecodeRuneInString(line)
		if !unicode.IsUpper(first) || strings.HasSuffix(line, ".") || strings.Contains(line, ":") {
			continue
		}
		lower := strings.ToLower(line)
		for _, kw := range titleKeywords {
			if strings.Contains(lower, kw) {
				out = append(out, line)
				break
			}
		}
	}
	return out
}

func leadingSentences(text string) []string {
	sentences := sentenceRe.Split(text, -1)
	if len(sentences) > fallbackSentences {
		sentences = sentences[:fallbackSentences]
	}
	var out []string
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if n := utf8.RuneCountInString(s); n > 20 && n < 200 {
			out = append(out, s)
		}
	}
	return out
}
