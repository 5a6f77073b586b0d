package resolve

import (
	"strings"
	"testing"
)

func TestParseHTML(t *testing.T) {
	page := `<html>
<head><title>Climate Pact Signed</title><style>body{color:red}</style></head>
<body>
<nav>Home | World | Science</nav>
<script>trackPageView();</script>
<p>Thirty countries signed the agreement.</p>
<footer>Copyright</footer>
</body></html>`

	title, text := ParseHTML(page)

	if title != "Climate Pact Signed" {
		t.Errorf("Title = %q", title)
	}
	if !strings.Contains(text, "Thirty countries signed") {
		t.Errorf("Body text missing: %q", text)
	}
	for _, noise := range []string{"trackPageView", "color:red", "Home | World", "Copyright"} {
		if strings.Contains(text, noise) {
			t.Errorf("Expected %q stripped from text, got %q", noise, text)
		}
	}
}

func TestDeriveTopics(t *testing.T) {
	title := "Climate summit opens"
	body := "The climate summit gathered delegates. Delegates debated emissions. Emissions targets dominated the climate debate."

	topics := DeriveTopics(title, body, 3)

	if len(topics) == 0 {
		t.Fatal("Expected topics")
	}
	if len(topics) > 3 {
		t.Errorf("Expected at most 3 topics, got %d", len(topics))
	}
	// "climate" appears in the title (double weight) and twice in the body.
	if topics[0] != "climate" {
		t.Errorf("Expected climate first, got %v", topics)
	}
	for _, topic := range topics {
		if stopwords[topic] {
			t.Errorf("Stopword %q leaked into topics", topic)
		}
		if len(topic) < 4 {
			t.Errorf("Short word %q leaked into topics", topic)
		}
	}
}

func TestDeriveSentiment(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"The peace agreement marked a breakthrough and progress for all.", "positive"},
		{"The crisis deepened after the collapse and widespread failure.", "negative"},
		{"Officials met on Tuesday to discuss scheduling.", "neutral"},
		{"", "neutral"},
	}

	for _, tt := range tests {
		if got := DeriveSentiment(tt.body); got != tt.want {
			t.Errorf("DeriveSentiment(%q) = %q, want %q", tt.body, got, tt.want)
		}
	}
}
