// Package datastore loads the site's three JSON documents. Each document is
// fetched independently; a failed fetch leaves that document absent instead
// of failing the load.
package datastore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ziadkadry99/scholarsite/internal/model"
)

// Document file names under the data root.
const (
	SiteFile         = "site.json"
	PublicationsFile = "publications.json"
	NewsFile         = "news.json"
)

// maxDocumentSize caps how much of a response body is decoded.
const maxDocumentSize = 8 << 20

// Data holds the loaded documents. A nil field means the document is absent.
type Data struct {
	Site         *model.SiteProfile
	Publications []model.Publication
	News         []model.NewsItem
}

// Store fetches documents relative to a base URL.
type Store struct {
	base   *url.URL
	client *http.Client
	logger *slog.Logger
}

// New creates a store reading documents under base (which should end in a
// slash). A nil client means http.DefaultClient.
func New(base *url.URL, client *http.Client, logger *slog.Logger) *Store {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{base: base, client: client, logger: logger.With("component", "datastore")}
}

// NewForPage creates a store for the page at pageURL, resolving the data
// directory with DataRoot.
func NewForPage(pageURL string, client *http.Client, logger *slog.Logger) (*Store, error) {
	page, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parsing page url: %w", err)
	}
	return New(page.ResolveReference(&url.URL{Path: DataRoot(page.Path)}), client, logger), nil
}

// NewForDir creates a store reading documents from a local directory
// through a file transport.
func NewForDir(dir string, logger *slog.Logger) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving data dir: %w", err)
	}
	transport := &http.Transport{}
	transport.RegisterProtocol("file", http.NewFileTransport(http.Dir(abs)))
	base := &url.URL{Scheme: "file", Path: "/"}
	return New(base, &http.Client{Transport: transport}, logger), nil
}

// NewForSource picks NewForDir or New depending on whether source is an
// http(s) URL.
func NewForSource(source string, logger *slog.Logger) (*Store, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		base, err := url.Parse(strings.TrimSuffix(source, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parsing data url: %w", err)
		}
		return New(base, nil, logger), nil
	}
	return NewForDir(source, logger)
}

// DataRoot returns the data directory relative to a page path: pages under
// a /pages/ segment sit one level below the site root.
func DataRoot(pagePath string) string {
	if strings.Contains(pagePath, "/pages/") {
		return "../data/"
	}
	return "data/"
}

// URL returns the absolute location of a document.
func (s *Store) URL(name string) string {
	return s.base.ResolveReference(&url.URL{Path: name}).String()
}

// Load fetches all three documents concurrently and waits for every fetch
// to settle. It never fails; absent documents are logged.
func (s *Store) Load(ctx context.Context) Data {
	var (
		data Data
		wg   sync.WaitGroup
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		var site model.SiteProfile
		if s.fetch(ctx, SiteFile, &site) {
			data.Site = &site
		}
	}()
	go func() {
		defer wg.Done()
		var pubs []model.Publication
		if s.fetch(ctx, PublicationsFile, &pubs) {
			if pubs == nil {
				pubs = []model.Publication{}
			}
			data.Publications = pubs
		}
	}()
	go func() {
		defer wg.Done()
		var news []model.NewsItem
		if s.fetch(ctx, NewsFile, &news) {
			if news == nil {
				news = []model.NewsItem{}
			}
			data.News = news
		}
	}()
	wg.Wait()

	s.logger.Debug("data loaded",
		"site", data.Site != nil,
		"publications", data.Publications != nil,
		"news", data.News != nil,
		"publication_count", len(data.Publications))
	return data
}

// fetch decodes one document into v and reports whether it is present.
func (s *Store) fetch(ctx context.Context, name string, v any) bool {
	u := s.URL(name)
	raw, err := s.get(ctx, u)
	if err != nil {
		s.logger.Warn("document unavailable", "url", u, "error", err)
		return false
	}
	if strings.TrimSpace(string(raw)) == "null" {
		s.logger.Warn("document unavailable", "url", u, "error", "null document")
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		s.logger.Warn("document unavailable", "url", u, "error", fmt.Errorf("decoding %s: %w", name, err))
		return false
	}
	return true
}

func (s *Store) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	return body, nil
}
