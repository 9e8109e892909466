package contentful

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/static-mcpify/internal/core/domain"
)

// Link types that resolve against fetched items.
const (
	linkTypeEntry = "Entry"
	linkTypeAsset = "Asset"
)

// decoder turns raw items into domain entries and assets.
// Links are collected while decoding and resolved once every page is seen.
type decoder struct {
	entries    map[string]*domain.Entry
	assets     map[string]*domain.Asset
	entryLinks []*domain.EntryLink
	assetLinks []*domain.AssetLink
}

func newDecoder() *decoder {
	return &decoder{
		entries: make(map[string]*domain.Entry),
		assets:  make(map[string]*domain.Asset),
	}
}

// addPage decodes a page's includes and items and returns its items in order.
func (d *decoder) addPage(page *entryPage) ([]*domain.Entry, error) {
	for _, raw := range page.Includes.Asset {
		if _, err := d.addAsset(raw); err != nil {
			return nil, err
		}
	}
	for _, raw := range page.Includes.Entry {
		if _, err := d.addEntry(raw); err != nil {
			return nil, err
		}
	}

	items := make([]*domain.Entry, 0, len(page.Items))
	for _, raw := range page.Items {
		entry, err := d.addEntry(raw)
		if err != nil {
			return nil, err
		}
		items = append(items, entry)
	}
	return items, nil
}

func (d *decoder) addEntry(raw rawItem) (*domain.Entry, error) {
	if existing, ok := d.entries[raw.Sys.ID]; ok {
		return existing, nil
	}

	fields, err := d.fields(raw.Fields)
	if err != nil {
		return nil, fmt.Errorf("decode entry %s: %w", raw.Sys.ID, err)
	}

	entry := &domain.Entry{
		ID:          raw.Sys.ID,
		ContentType: raw.Sys.ContentType.Sys.ID,
		CreatedAt:   raw.Sys.CreatedAt,
		UpdatedAt:   raw.Sys.UpdatedAt,
		Fields:      fields,
	}
	d.entries[entry.ID] = entry
	return entry, nil
}

func (d *decoder) addAsset(raw rawItem) (*domain.Asset, error) {
	if existing, ok := d.assets[raw.Sys.ID]; ok {
		return existing, nil
	}

	fields, err := d.fields(raw.Fields)
	if err != nil {
		return nil, fmt.Errorf("decode asset %s: %w", raw.Sys.ID, err)
	}

	asset := &domain.Asset{
		ID:          raw.Sys.ID,
		Title:       fields.GetString("title"),
		Description: fields.GetString("description"),
	}
	if file, ok := fields.Get("file"); ok {
		asset.File, _ = file.(*domain.Object)
	}
	d.assets[asset.ID] = asset
	return asset, nil
}

// resolve points every collected link at its decoded target.
func (d *decoder) resolve() {
	for _, link := range d.entryLinks {
		link.Entry = d.entries[link.ID]
	}
	for _, link := range d.assetLinks {
		link.Asset = d.assets[link.ID]
	}
}

// fields decodes a fields object, keeping key order.
func (d *decoder) fields(raw json.RawMessage) (*domain.Object, error) {
	if len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		return domain.NewObject(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("fields: expected object, got %v", tok)
	}
	return d.objectBody(dec)
}

func (d *decoder) value(dec *json.Decoder) (domain.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj, err := d.objectBody(dec)
			if err != nil {
				return nil, err
			}
			return d.classify(obj), nil
		case '[':
			return d.arrayBody(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	case string:
		return domain.String(t), nil
	case json.Number:
		return domain.Scalar{V: t}, nil
	case bool:
		return domain.Bool(t), nil
	case nil:
		return domain.Scalar{}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

// objectBody reads members up to and including the closing brace.
func (d *decoder) objectBody(dec *json.Decoder) (*domain.Object, error) {
	obj := domain.NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		v, err := d.value(dec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		obj.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func (d *decoder) arrayBody(dec *json.Decoder) (*domain.Array, error) {
	arr := domain.NewArray()
	for dec.More() {
		v, err := d.value(dec)
		if err != nil {
			return nil, err
		}
		arr.Items = append(arr.Items, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// classify turns link objects into links and document roots into nodes.
func (d *decoder) classify(obj *domain.Object) domain.Value {
	if sysVal, ok := obj.Get("sys"); ok {
		if sys, ok := sysVal.(*domain.Object); ok && sys.GetString("type") == "Link" {
			switch sys.GetString("linkType") {
			case linkTypeEntry:
				link := &domain.EntryLink{ID: sys.GetString("id")}
				d.entryLinks = append(d.entryLinks, link)
				return link
			case linkTypeAsset:
				link := &domain.AssetLink{ID: sys.GetString("id")}
				d.assetLinks = append(d.assetLinks, link)
				return link
			}
		}
	}

	if obj.GetString("nodeType") == domain.NodeDocument {
		return toNode(obj)
	}
	return obj
}

// toNode converts a rich text node object and its content into a Node tree.
func toNode(obj *domain.Object) *domain.Node {
	n := &domain.Node{
		NodeType: obj.GetString("nodeType"),
		Value:    obj.GetString("value"),
	}

	if v, ok := obj.Get("marks"); ok {
		if marks, ok := v.(*domain.Array); ok {
			for _, m := range marks.Items {
				if mark, ok := m.(*domain.Object); ok {
					n.Marks = append(n.Marks, mark.GetString("type"))
				}
			}
		}
	}

	if v, ok := obj.Get("data"); ok {
		if data, ok := v.(*domain.Object); ok {
			n.Data = domain.NewObject()
			for _, key := range data.Keys() {
				val, _ := data.Get(key)
				if key == "target" {
					n.Target = val
					continue
				}
				n.Data.Set(key, val)
			}
		}
	}

	if v, ok := obj.Get("content"); ok {
		if content, ok := v.(*domain.Array); ok {
			for _, item := range content.Items {
				switch child := item.(type) {
				case *domain.Object:
					n.Content = append(n.Content, toNode(child))
				case *domain.Node:
					n.Content = append(n.Content, child)
				}
			}
		}
	}

	return n
}
