package services

import (
	"context"
	"errors"
	"path"
	"sort"
	"sync"

	"github.com/custodia-labs/static-mcpify/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/static-mcpify/internal/core/domain"
	"github.com/custodia-labs/static-mcpify/internal/core/ports/driven"
)

// mockSourceAdapter implements driven.SourceAdapter for testing.
// Downloads are recorded and stored in the memory store when one is set.
type mockSourceAdapter struct {
	entries     map[string][]domain.SourceEntry
	fetchErr    error
	downloadErr map[string]error
	store       *memory.ContentStore

	mu        sync.Mutex
	fetched   []string
	downloads []string
}

func (m *mockSourceAdapter) Name() string { return "mock" }

func (m *mockSourceAdapter) FetchEntries(_ context.Context, contentType string) ([]domain.SourceEntry, error) {
	m.mu.Lock()
	m.fetched = append(m.fetched, contentType)
	m.mu.Unlock()

	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.entries[contentType], nil
}

func (m *mockSourceAdapter) BuildMarkdown(entry *domain.SourceEntry, fieldNames []string) string {
	md := "# " + entry.Title + "\n\n"
	for _, name := range fieldNames {
		if v := entry.Fields.GetString(name); v != "" {
			md += "## " + name + "\n\n" + v + "\n\n"
		}
	}
	return md
}

func (m *mockSourceAdapter) DownloadAsset(_ context.Context, url, destPath string) error {
	if err, ok := m.downloadErr[url]; ok {
		return err
	}

	m.mu.Lock()
	m.downloads = append(m.downloads, url)
	m.mu.Unlock()

	if m.store != nil {
		m.store.PutAsset(path.Base(destPath), []byte(url))
	}
	return nil
}

func (m *mockSourceAdapter) downloadedURLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	urls := append([]string(nil), m.downloads...)
	sort.Strings(urls)
	return urls
}

// mockListerAdapter adds driven.ContentTypeLister to mockSourceAdapter.
type mockListerAdapter struct {
	mockSourceAdapter
	types    []domain.ContentTypeInfo
	typesErr error
}

func (m *mockListerAdapter) ContentTypes(_ context.Context) ([]domain.ContentTypeInfo, error) {
	return m.types, m.typesErr
}

// mockSourceFactory implements driven.SourceFactory for testing.
type mockSourceFactory struct {
	adapter   driven.SourceAdapter
	createErr error
	created   []string
}

func (f *mockSourceFactory) Create(_ context.Context, name string) (driven.SourceAdapter, error) {
	f.created = append(f.created, name)
	if f.createErr != nil {
		return nil, f.createErr
	}
	if name != domain.SourceContentful {
		return nil, errors.New("mock factory: unexpected source " + name)
	}
	return f.adapter, nil
}

func (f *mockSourceFactory) Supported() []string {
	return []string{domain.SourceContentful}
}

// sourceEntry builds a source entry with string fields in the given order.
func sourceEntry(id, title, slug string, kv ...string) domain.SourceEntry {
	fields := domain.NewObject()
	for i := 0; i+1 < len(kv); i += 2 {
		fields.Set(kv[i], domain.String(kv[i+1]))
	}
	return domain.SourceEntry{
		Title: title,
		Slug:  slug,
		Data: domain.NormalizedEntry{
			ID:          id,
			ContentType: "person",
			Title:       title,
			Slug:        slug,
			Fields:      fields,
		},
		Fields: fields,
	}
}
