package clone

import (
	"github.com/custodia-labs/static-mcpify/internal/core/domain"
)

// Circular replaces a container that is revisited while it is being copied.
const Circular = "[Circular]"

// Value returns an acyclic copy of v built only from Scalar, *Array and
// *Object values.
//
// Resolved entry links flatten to {id, type, contentType, title} and resolved
// asset links to {id, title, file}. Unresolved links keep their link
// metadata. A container met again inside its own subtree becomes the
// Circular marker.
func Value(v domain.Value) domain.Value {
	c := &cloner{active: make(map[domain.Value]struct{})}
	return c.value(v)
}

// Fields copies every field of obj that is not a rich document.
// Each field is cloned independently.
func Fields(obj *domain.Object) *domain.Object {
	out := domain.NewObject()
	for _, key := range obj.Keys() {
		v, _ := obj.Get(key)
		if domain.IsRichDocument(v) {
			continue
		}
		out.Set(key, Value(v))
	}
	return out
}

// cloner tracks the containers on the current descent path.
type cloner struct {
	active map[domain.Value]struct{}
}

func (c *cloner) value(v domain.Value) domain.Value {
	switch val := v.(type) {
	case nil:
		return nil
	case domain.Scalar:
		return val
	case *domain.Array:
		if val == nil {
			return nil
		}
		return c.guard(val, func() domain.Value { return c.array(val) })
	case *domain.Object:
		if val == nil {
			return nil
		}
		return c.guard(val, func() domain.Value { return c.object(val) })
	case *domain.EntryLink:
		return c.entryLink(val)
	case *domain.AssetLink:
		return c.assetLink(val)
	case *domain.Node:
		if val == nil {
			return nil
		}
		return c.guard(val, func() domain.Value { return c.node(val) })
	default:
		return nil
	}
}

func (c *cloner) guard(key domain.Value, copyFn func() domain.Value) domain.Value {
	if _, ok := c.active[key]; ok {
		return domain.String(Circular)
	}
	c.active[key] = struct{}{}
	defer delete(c.active, key)
	return copyFn()
}

func (c *cloner) array(a *domain.Array) domain.Value {
	items := make([]domain.Value, len(a.Items))
	for i, item := range a.Items {
		items[i] = c.value(item)
	}
	return domain.NewArray(items...)
}

func (c *cloner) object(o *domain.Object) domain.Value {
	out := domain.NewObject()
	for _, key := range o.Keys() {
		v, _ := o.Get(key)
		out.Set(key, c.value(v))
	}
	return out
}

func (c *cloner) entryLink(l *domain.EntryLink) domain.Value {
	if l.Entry == nil {
		return unresolvedLink("Entry", l.ID)
	}
	out := domain.NewObject()
	out.Set("id", domain.String(l.Entry.ID))
	out.Set("type", domain.String("Entry"))
	out.Set("contentType", domain.String(l.Entry.ContentType))
	out.Set("title", domain.String(l.Entry.DisplayTitle()))
	return out
}

func (c *cloner) assetLink(l *domain.AssetLink) domain.Value {
	if l.Asset == nil {
		return unresolvedLink("Asset", l.ID)
	}
	out := domain.NewObject()
	out.Set("id", domain.String(l.Asset.ID))
	out.Set("title", domain.String(l.Asset.Title))
	if l.Asset.File != nil {
		out.Set("file", c.value(l.Asset.File))
	}
	return out
}

func (c *cloner) node(n *domain.Node) domain.Value {
	out := domain.NewObject()
	out.Set("nodeType", domain.String(n.NodeType))
	if n.NodeType == domain.NodeText {
		out.Set("value", domain.String(n.Value))
		marks := make([]domain.Value, len(n.Marks))
		for i, m := range n.Marks {
			mark := domain.NewObject()
			mark.Set("type", domain.String(m))
			marks[i] = mark
		}
		out.Set("marks", domain.NewArray(marks...))
	}

	data := domain.NewObject()
	if n.Target != nil {
		data.Set("target", c.value(n.Target))
	}
	if n.Data != nil {
		if copied, ok := c.value(n.Data).(*domain.Object); ok {
			for _, key := range copied.Keys() {
				v, _ := copied.Get(key)
				data.Set(key, v)
			}
		}
	}
	out.Set("data", data)

	if n.NodeType != domain.NodeText {
		content := make([]domain.Value, 0, len(n.Content))
		for _, child := range n.Content {
			content = append(content, c.value(child))
		}
		out.Set("content", domain.NewArray(content...))
	}
	return out
}

func unresolvedLink(linkType, id string) domain.Value {
	sys := domain.NewObject()
	sys.Set("type", domain.String("Link"))
	sys.Set("linkType", domain.String(linkType))
	sys.Set("id", domain.String(id))

	out := domain.NewObject()
	out.Set("sys", sys)
	return out
}
