package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/static-mcpify/internal/core/domain"
)

func TestContentStore_OutputConfig(t *testing.T) {
	ctx := context.Background()
	s := NewContentStore()

	_, err := s.ReadOutputConfig(ctx)
	assert.ErrorIs(t, err, domain.ErrConfigNotFound)

	source := domain.SourceContentful
	require.NoError(t, s.WriteOutputConfig(ctx, domain.OutputConfig{Source: &source}))

	cfg, err := s.ReadOutputConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "contentful", cfg.SourceName())
}

func TestContentStore_ContentTypeConfig(t *testing.T) {
	ctx := context.Background()
	s := NewContentStore()

	_, err := s.ReadContentTypeConfig(ctx, "person")
	assert.ErrorIs(t, err, domain.ErrConfigNotFound)

	err = s.WriteContentTypeConfig(ctx, domain.ContentTypeConfig{ContentType: "person"})
	assert.ErrorIs(t, err, domain.ErrConfigInvalid)

	err = s.WriteContentTypeConfig(ctx, domain.ContentTypeConfig{
		ContentType: "person",
		Tools:       []domain.ToolConfig{{Name: "bio"}},
	})
	assert.ErrorIs(t, err, domain.ErrConfigInvalid)

	cfg := domain.ContentTypeConfig{
		ContentType: "person",
		Tools:       []domain.ToolConfig{{Name: "bio", Fields: []string{"bio"}}},
	}
	require.NoError(t, s.WriteContentTypeConfig(ctx, cfg))

	got, err := s.ReadContentTypeConfig(ctx, "person")
	require.NoError(t, err)
	assert.Equal(t, cfg, *got)

	types, err := s.ListContentTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"person"}, types)
}

func TestContentStore_Entries(t *testing.T) {
	ctx := context.Background()
	s := NewContentStore()

	fields := domain.NewObject()
	fields.Set("bio", domain.String("<b>hi</b>"))
	data := domain.NormalizedEntry{ID: "e1", ContentType: "person", Title: "Ann", Slug: "ann", Fields: fields}

	require.NoError(t, s.WriteEntry(ctx, "person", "ann", data))
	require.NoError(t, s.WriteEntry(ctx, "person", "zed", data))
	require.NoError(t, s.WriteToolMarkdown(ctx, "person", "ann", "bio", "# Ann\n\n"))

	raw, err := s.ReadEntry(ctx, "person", "ann")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"bio\": \"<b>hi</b>\"\n}\n")

	slugs, err := s.ListEntries(ctx, "person")
	require.NoError(t, err)
	assert.Equal(t, []string{"ann", "zed"}, slugs)

	md, err := s.ReadToolMarkdown(ctx, "person", "ann", "bio")
	require.NoError(t, err)
	assert.Equal(t, "# Ann\n\n", string(md))

	_, err = s.ReadEntry(ctx, "person", "bob")
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
	_, err = s.ReadEntry(ctx, "article", "ann")
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
	_, err = s.ReadToolMarkdown(ctx, "person", "zed", "bio")
	assert.ErrorIs(t, err, domain.ErrToolNotFound)

	assert.ErrorIs(t, s.WriteEntry(ctx, "person", "a/b", data), domain.ErrInvalidInput)
}

func TestContentStore_Assets(t *testing.T) {
	ctx := context.Background()
	s := NewContentStore()

	s.PutAsset("b.png", []byte("b"))
	s.PutAsset("a.pdf", []byte("a"))

	names, err := s.ListAssets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdf", "b.png"}, names)

	ok, err := s.AssetExists(ctx, "a.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.AssetExists(ctx, "c.gif")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, ":memory:/content/assets/a.pdf", s.AssetPath("a.pdf"))
}

func TestContentStore_AddContentType(t *testing.T) {
	ctx := context.Background()
	s := NewContentStore()
	s.AddContentType("legacy")

	types, err := s.ListContentTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"legacy"}, types)

	_, err = s.ReadContentTypeConfig(ctx, "legacy")
	assert.ErrorIs(t, err, domain.ErrConfigNotFound)
}
