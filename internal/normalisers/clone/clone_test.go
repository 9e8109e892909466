package clone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/static-mcpify/internal/core/domain"
)

func mustJSON(t *testing.T, v domain.Value) string {
	t.Helper()
	obj := domain.NewObject()
	obj.Set("v", v)
	b, err := obj.MarshalJSON()
	require.NoError(t, err)
	return string(b)
}

func person(id, name string) *domain.Entry {
	fields := domain.NewObject()
	fields.Set("name", domain.String(name))
	return &domain.Entry{ID: id, ContentType: "person", Fields: fields}
}

func TestValue_Scalars(t *testing.T) {
	tests := []struct {
		name  string
		value domain.Value
	}{
		{"string", domain.String("hello")},
		{"number", domain.Number("3.14")},
		{"bool", domain.Bool(true)},
		{"null scalar", domain.Scalar{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.value, Value(tt.value))
		})
	}

	t.Run("nil passes through", func(t *testing.T) {
		assert.Nil(t, Value(nil))
	})
}

func TestValue_EntryLink(t *testing.T) {
	t.Run("resolved entry flattens to summary", func(t *testing.T) {
		link := &domain.EntryLink{ID: "p1", Entry: person("p1", "Ada")}

		got := Value(link)

		assert.Equal(t, `{"v":{"id":"p1","type":"Entry","contentType":"person","title":"Ada"}}`, mustJSON(t, got))
	})

	t.Run("title falls back to id", func(t *testing.T) {
		link := &domain.EntryLink{ID: "p2", Entry: &domain.Entry{ID: "p2", ContentType: "person"}}

		got := Value(link).(*domain.Object)

		assert.Equal(t, "p2", got.GetString("title"))
	})

	t.Run("unresolved entry keeps link metadata", func(t *testing.T) {
		got := Value(&domain.EntryLink{ID: "missing"})

		assert.Equal(t, `{"v":{"sys":{"type":"Link","linkType":"Entry","id":"missing"}}}`, mustJSON(t, got))
	})

	t.Run("bidirectional entries terminate", func(t *testing.T) {
		a := person("a", "Alice")
		b := person("b", "Bob")
		a.Fields.Set("friend", &domain.EntryLink{ID: "b", Entry: b})
		b.Fields.Set("friend", &domain.EntryLink{ID: "a", Entry: a})

		got := Fields(a.Fields)

		assert.Equal(t, `{"name":"Alice","friend":{"id":"b","type":"Entry","contentType":"person","title":"Bob"}}`,
			string(must(t, got)))
	})
}

func TestValue_AssetLink(t *testing.T) {
	file := domain.NewObject()
	file.Set("url", domain.String("//images.example/a.png"))
	details := domain.NewObject()
	details.Set("size", domain.Number("1024"))
	file.Set("details", details)

	asset := &domain.Asset{ID: "a1", Title: "Photo", File: file}

	t.Run("resolved asset flattens with cloned file", func(t *testing.T) {
		got := Value(&domain.AssetLink{ID: "a1", Asset: asset})

		assert.Equal(t,
			`{"v":{"id":"a1","title":"Photo","file":{"url":"//images.example/a.png","details":{"size":1024}}}}`,
			mustJSON(t, got))

		copied := got.(*domain.Object)
		f, _ := copied.Get("file")
		assert.NotSame(t, file, f)
	})

	t.Run("same asset twice is not a cycle", func(t *testing.T) {
		arr := domain.NewArray(
			&domain.AssetLink{ID: "a1", Asset: asset},
			&domain.AssetLink{ID: "a1", Asset: asset},
		)

		got := Value(arr)

		assert.NotContains(t, mustJSON(t, got), Circular)
	})

	t.Run("unresolved asset keeps link metadata", func(t *testing.T) {
		got := Value(&domain.AssetLink{ID: "gone"})
		assert.Equal(t, `{"v":{"sys":{"type":"Link","linkType":"Asset","id":"gone"}}}`, mustJSON(t, got))
	})
}

func TestValue_Cycles(t *testing.T) {
	t.Run("self referencing object", func(t *testing.T) {
		obj := domain.NewObject()
		obj.Set("name", domain.String("loop"))
		obj.Set("self", obj)

		got := Value(obj)

		assert.Equal(t, `{"v":{"name":"loop","self":"[Circular]"}}`, mustJSON(t, got))
	})

	t.Run("array containing its parent", func(t *testing.T) {
		obj := domain.NewObject()
		arr := domain.NewArray(domain.String("x"))
		obj.Set("items", arr)
		arr.Items = append(arr.Items, obj)

		got := Value(obj)

		assert.Equal(t, `{"v":{"items":["x","[Circular]"]}}`, mustJSON(t, got))
	})

	t.Run("shared sibling is copied twice", func(t *testing.T) {
		shared := domain.NewObject()
		shared.Set("k", domain.String("v"))
		obj := domain.NewObject()
		obj.Set("a", shared)
		obj.Set("b", shared)

		got := Value(obj)

		assert.Equal(t, `{"v":{"a":{"k":"v"},"b":{"k":"v"}}}`, mustJSON(t, got))
	})
}

func TestValue_Idempotent(t *testing.T) {
	inner := domain.NewObject()
	inner.Set("lat", domain.Number("51.5"))
	inner.Set("lon", domain.Number("-0.12"))

	obj := domain.NewObject()
	obj.Set("location", inner)
	obj.Set("tags", domain.NewArray(domain.String("a"), domain.Bool(false)))
	obj.Set("author", &domain.EntryLink{ID: "p1", Entry: person("p1", "Ada")})
	obj.Set("ref", &domain.AssetLink{ID: "x"})

	once := Value(obj)
	twice := Value(once)

	assert.Equal(t, mustJSON(t, once), mustJSON(t, twice))
}

func TestValue_Node(t *testing.T) {
	doc := &domain.Node{
		NodeType: domain.NodeDocument,
		Content: []*domain.Node{
			{
				NodeType: "paragraph",
				Content: []*domain.Node{
					{NodeType: domain.NodeText, Value: "Hi", Marks: []string{"bold"}},
				},
			},
			{
				NodeType: "embedded-entry-block",
				Target:   &domain.EntryLink{ID: "p1", Entry: person("p1", "Ada")},
			},
		},
	}

	got := Value(doc)

	want := `{"v":{"nodeType":"document","data":{},"content":[` +
		`{"nodeType":"paragraph","data":{},"content":[{"nodeType":"text","value":"Hi","marks":[{"type":"bold"}],"data":{}}]},` +
		`{"nodeType":"embedded-entry-block","data":{"target":{"id":"p1","type":"Entry","contentType":"person","title":"Ada"}},"content":[]}` +
		`]}}`
	assert.Equal(t, want, mustJSON(t, got))
}

func TestFields(t *testing.T) {
	fields := domain.NewObject()
	fields.Set("name", domain.String("Bob"))
	fields.Set("bio", &domain.Node{NodeType: domain.NodeDocument})
	fields.Set("age", domain.Number("40"))

	got := Fields(fields)

	assert.Equal(t, []string{"name", "age"}, got.Keys())
}

func must(t *testing.T, obj *domain.Object) []byte {
	t.Helper()
	b, err := obj.MarshalJSON()
	require.NoError(t, err)
	return b
}
