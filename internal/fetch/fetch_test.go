package fetch_test

import (
	"strings"
	"testing"

	"doclens/internal/fetch"
)

func TestFindDocumentURL(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain url", "see https://example.com/report.pdf please", "https://example.com/report.pdf"},
		{"no url", "just some words", ""},
		{"http is ignored", "http://example.com/report.pdf", ""},
		{"first of several", "https://a.example/x https://b.example/y", "https://a.example/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fetch.FindDocumentURL(tt.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDownloadIsPDF(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		data        string
		want        bool
	}{
		{"content type", "application/pdf", "whatever", true},
		{"magic bytes", "application/octet-stream", "%PDF-1.7 rest", true},
		{"html", "text/html; charset=utf-8", "<html></html>", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &fetch.Download{ContentType: tt.contentType, Data: []byte(tt.data)}
			if got := d.IsPDF(); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestHTMLText(t *testing.T) {
	html := `<html><head><title>T</title><style>body{color:red}</style></head>
<body>
<script>var hidden = 1;</script>
<h1>Contract   Terms</h1>
<p>First clause.</p>

<p>Second clause.</p>
</body></html>`

	got, err := fetch.HTMLText([]byte(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(got, "hidden") || strings.Contains(got, "color:red") {
		t.Fatalf("expected script/style content to be dropped, got %q", got)
	}

	for _, want := range []string{"Contract Terms", "First clause.", "Second clause."} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected output to contain %q, got %q", want, got)
		}
	}

	if strings.Contains(got, "\n\n") {
		t.Errorf("expected blank lines to be collapsed, got %q", got)
	}
}
