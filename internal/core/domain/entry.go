package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// TimestampFormat is the layout used for createdAt/updatedAt in data.json.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Entry is a link-resolved entry fetched from a source.
// Entries may reference each other through EntryLink.Entry, so a set of
// entries can form a cyclic graph.
type Entry struct {
	ID          string
	ContentType string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Fields      *Object
}

// DisplayTitle returns the first non-empty title or name field, falling back to the ID.
func (e *Entry) DisplayTitle() string {
	for _, key := range []string{"title", "name"} {
		if s := e.Fields.GetString(key); s != "" {
			return s
		}
	}
	return e.ID
}

// Asset is a binary file attached to a space.
type Asset struct {
	ID          string
	Title       string
	Description string
	// File holds url, fileName, contentType and details.
	File *Object
}

// URL returns the absolute download URL, or "" when the asset has no file.
// Protocol-relative URLs are resolved to https.
func (a *Asset) URL() string {
	url := a.File.GetString("url")
	if strings.HasPrefix(url, "//") {
		return "https:" + url
	}
	return url
}

// FileName returns the base name of the asset file.
func (a *Asset) FileName() string {
	name := a.File.GetString("fileName")
	if name == "" {
		return ""
	}
	return filepath.Base(filepath.Clean("/" + name))
}

// AssetReference is an asset an entry depends on.
type AssetReference struct {
	FileName string
	URL      string
}

// NormalizedEntry is the acyclic, JSON-serialisable form of an entry.
// Fields holds every non-rich-text field after structural cloning.
type NormalizedEntry struct {
	ID          string
	ContentType string
	Title       string
	Slug        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Fields      *Object
}

// Object flattens the header and fields into a single ordered object.
// A field sharing a header key's name replaces the header value in place.
func (n NormalizedEntry) Object() *Object {
	obj := NewObject()
	obj.Set("id", String(n.ID))
	obj.Set("contentType", String(n.ContentType))
	obj.Set("title", String(n.Title))
	obj.Set("slug", String(n.Slug))
	obj.Set("createdAt", String(formatTimestamp(n.CreatedAt)))
	obj.Set("updatedAt", String(formatTimestamp(n.UpdatedAt)))
	for _, key := range n.Fields.Keys() {
		v, _ := n.Fields.Get(key)
		obj.Set(key, v)
	}
	return obj
}

// MarshalJSON implements json.Marshaler.
func (n NormalizedEntry) MarshalJSON() ([]byte, error) {
	return n.Object().MarshalJSON()
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimestampFormat)
}

// SourceEntry is the per-entry output of a source adapter.
type SourceEntry struct {
	Title string
	Slug  string
	Data  NormalizedEntry
	// Fields are the raw entry fields used to render tool markdown.
	Fields *Object
	Assets []AssetReference
}

// ContentTypeInfo describes a content type available at the source.
type ContentTypeInfo struct {
	ID     string
	Name   string
	Fields []string
}

// HasField reports whether the content type declares the field id.
func (c ContentTypeInfo) HasField(id string) bool {
	for _, f := range c.Fields {
		if f == id {
			return true
		}
	}
	return false
}
