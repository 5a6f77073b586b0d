package resolve

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// ParseHTML extracts the document title and visible body text, skipping
// script/style/nav noise.
func ParseHTML(htmlContent string) (title string, text string) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", htmlContent
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "nav", "footer":
				return
			case "title":
				if title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
				return
			}
		}

		if n.Type == html.TextNode {
			trimmed := strings.TrimSpace(n.Data)
			if trimmed != "" {
				buf.WriteString(trimmed)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return title, strings.TrimSpace(buf.String())
}

var stopwords = map[string]bool{
	"the": true, "and": true, "that": true, "with": true, "from": true,
	"this": true, "have": true, "has": true, "was": true, "were": true,
	"been": true, "will": true, "would": true, "their": true, "they": true,
	"about": true, "after": true, "before": true, "which": true, "into": true,
	"said": true, "also": true, "more": true, "than": true, "when": true,
	"where": true, "what": true, "while": true, "over": true, "under": true,
	"between": true, "during": true, "other": true, "some": true, "such": true,
	"its": true, "are": true, "for": true, "but": true, "not": true,
	"year": true, "years": true, "new": true, "first": true, "last": true,
}

// DeriveTopics extracts up to max topic labels from title and body by
// word frequency, title words counting double.
func DeriveTopics(title, body string, max int) []string {
	if max <= 0 {
		max = 5
	}

	counts := make(map[string]int)
	order := make(map[string]int)
	next := 0

	count := func(text string, weight int) {
		for _, word := range strings.Fields(strings.ToLower(text)) {
			word = strings.Trim(word, ".,;:!?\"'()[]")
			if len(word) < 4 || stopwords[word] {
				continue
			}
			if _, seen := order[word]; !seen {
				order[word] = next
				next++
			}
			counts[word] += weight
		}
	}

	count(title, 2)
	count(body, 1)

	words := make([]string, 0, len(counts))
	for word := range counts {
		words = append(words, word)
	}
	sort.SliceStable(words, func(a, b int) bool {
		if counts[words[a]] != counts[words[b]] {
			return counts[words[a]] > counts[words[b]]
		}
		return order[words[a]] < order[words[b]]
	})

	if len(words) > max {
		words = words[:max]
	}
	return words
}

var positiveWords = []string{
	"agreement", "success", "growth", "improve", "win", "breakthrough",
	"record", "progress", "recovery", "boost", "celebrate", "peace",
}

var negativeWords = []string{
	"crisis", "decline", "death", "war", "collapse", "failure", "loss",
	"attack", "fraud", "scandal", "disaster", "threat", "outbreak",
}

// DeriveSentiment assigns a coarse sentiment label from lexicon counts.
func DeriveSentiment(body string) string {
	lower := strings.ToLower(body)

	positive, negative := 0, 0
	for _, word := range positiveWords {
		positive += strings.Count(lower, word)
	}
	for _, word := range negativeWords {
		negative += strings.Count(lower, word)
	}

	switch {
	case positive > negative:
		return "positive"
	case negative > positive:
		return "negative"
	default:
		return "neutral"
	}
}
