// Package assets collects the asset files an entry's fields depend on.
package assets

import (
	"github.com/custodia-labs/static-mcpify/internal/core/domain"
)

// Extract walks fields depth-first in declaration order and returns every
// asset reachable through an asset link, deduplicated by asset ID with the
// first occurrence kept.
//
// Links resolve through lookup. Dangling links and assets without a
// downloadable file are skipped. Entry links are not followed.
func Extract(fields *domain.Object, lookup map[string]*domain.Asset) []domain.AssetReference {
	x := &extractor{
		lookup: lookup,
		seen:   make(map[string]struct{}),
		active: make(map[domain.Value]struct{}),
	}
	for _, key := range fields.Keys() {
		v, _ := fields.Get(key)
		x.walk(v)
	}
	return x.refs
}

type extractor struct {
	lookup map[string]*domain.Asset
	seen   map[string]struct{}
	active map[domain.Value]struct{}
	refs   []domain.AssetReference
}

func (x *extractor) walk(v domain.Value) {
	switch val := v.(type) {
	case *domain.AssetLink:
		x.add(val)
	case *domain.Array:
		if val == nil || !x.enter(val) {
			return
		}
		defer x.leave(val)
		for _, item := range val.Items {
			x.walk(item)
		}
	case *domain.Object:
		if val == nil || !x.enter(val) {
			return
		}
		defer x.leave(val)
		for _, key := range val.Keys() {
			item, _ := val.Get(key)
			x.walk(item)
		}
	case *domain.Node:
		if val == nil || !x.enter(val) {
			return
		}
		defer x.leave(val)
		for _, child := range val.Content {
			x.walk(child)
		}
		if val.Target != nil {
			x.walk(val.Target)
		}
	}
}

func (x *extractor) enter(v domain.Value) bool {
	if _, ok := x.active[v]; ok {
		return false
	}
	x.active[v] = struct{}{}
	return true
}

func (x *extractor) leave(v domain.Value) {
	delete(x.active, v)
}

func (x *extractor) add(link *domain.AssetLink) {
	asset := link.Asset
	if asset == nil {
		asset = x.lookup[link.ID]
	}
	if asset == nil {
		return
	}
	if _, dup := x.seen[asset.ID]; dup {
		return
	}

	url := asset.URL()
	name := asset.FileName()
	if url == "" || name == "" {
		return
	}

	x.seen[asset.ID] = struct{}{}
	x.refs = append(x.refs, domain.AssetReference{FileName: name, URL: url})
}
