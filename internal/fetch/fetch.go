// Package fetch downloads documents referenced by URL in a chat message,
// so users can point the bot at a hosted PDF or web page instead of
// uploading a file.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"mvdan.cc/xurls/v2"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

	clientTimeout = 20 * time.Second

	// MaxDownloadBytes caps a single document download. Matches the Bot
	// API getFile ceiling so uploads and links share one limit.
	MaxDownloadBytes = 20 << 20

	pdfMagic = "%PDF-"
)

// Download is one fetched document, before any extraction.
type Download struct {
	URL         string
	FileName    string
	ContentType string
	Data        []byte
}

// IsPDF reports whether the download looks like a PDF, by declared
// content type or by magic bytes.
func (d *Download) IsPDF() bool {
	if strings.Contains(strings.ToLower(d.ContentType), "application/pdf") {
		return true
	}

	return len(d.Data) >= len(pdfMagic) && string(d.Data[:len(pdfMagic)]) == pdfMagic
}

type Fetcher struct {
	client *http.Client
	log    *slog.Logger
}

func NewFetcher(log *slog.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: clientTimeout},
		log:    log,
	}
}

// FindDocumentURL returns the first https URL in the text, or "" when
// the text contains none.
func FindDocumentURL(text string) (string, error) {
	httpsURLRe, err := xurls.StrictMatchingScheme("https://")
	if err != nil {
		return "", fmt.Errorf("create regexp: %w", err)
	}

	return strings.TrimSpace(httpsURLRe.FindString(text)), nil
}

func (f *Fetcher) Download(ctx context.Context, rawURL string) (*Download, error) {
	rawURL = strings.TrimSpace(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			f.log.WarnContext(ctx, "Failed to close response body",
				"error", closeErr,
				"url", rawURL)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %q", resp.StatusCode, rawURL)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) > MaxDownloadBytes {
		return nil, fmt.Errorf("document at %q exceeds %d bytes", rawURL, MaxDownloadBytes)
	}

	return &Download{
		URL:         rawURL,
		FileName:    fileNameFromURL(rawURL),
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func fileNameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return ""
	}

	return name
}

// HTMLText extracts readable text from an HTML page, dropping script and
// style content and collapsing blank lines.
func HTMLText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	raw := doc.Find("body").Text()
	if strings.TrimSpace(raw) == "" {
		raw = doc.Text()
	}

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n"), nil
}
