package richtext

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/static-mcpify/internal/core/domain"
)

// blockTags maps structural node types to their HTML element.
var blockTags = map[string]atom.Atom{
	"paragraph":         atom.P,
	"heading-1":         atom.H1,
	"heading-2":         atom.H2,
	"heading-3":         atom.H3,
	"heading-4":         atom.H4,
	"heading-5":         atom.H5,
	"heading-6":         atom.H6,
	"unordered-list":    atom.Ul,
	"ordered-list":      atom.Ol,
	"list-item":         atom.Li,
	"blockquote":        atom.Blockquote,
	"table":             atom.Table,
	"table-row":         atom.Tr,
	"table-cell":        atom.Td,
	"table-header-cell": atom.Th,
}

// markTags maps text marks to their HTML element. Unknown marks are ignored.
var markTags = map[string]atom.Atom{
	"bold":          atom.Strong,
	"italic":        atom.Em,
	"underline":     atom.U,
	"code":          atom.Code,
	"superscript":   atom.Sup,
	"subscript":     atom.Sub,
	"strikethrough": atom.S,
}

// toHTML converts a rich document into a detached <div> element.
func toHTML(doc *domain.Node) (*html.Node, error) {
	root := element(atom.Div)
	if err := appendNodes(root, doc.Content); err != nil {
		return nil, err
	}
	return root, nil
}

func appendNodes(parent *html.Node, nodes []*domain.Node) error {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if err := appendNode(parent, n); err != nil {
			return err
		}
	}
	return nil
}

//nolint:gocyclo // One case per rich text node type.
func appendNode(parent *html.Node, n *domain.Node) error {
	if a, ok := blockTags[n.NodeType]; ok {
		el := element(a)
		parent.AppendChild(el)
		return appendNodes(el, n.Content)
	}

	switch n.NodeType {
	case domain.NodeText:
		parent.AppendChild(textWithMarks(n.Value, n.Marks))
		return nil

	case "hr":
		parent.AppendChild(element(atom.Hr))
		return nil

	case "hyperlink":
		a := element(atom.A, html.Attribute{Key: "href", Val: n.Data.GetString("uri")})
		parent.AppendChild(a)
		return appendNodes(a, n.Content)

	case "asset-hyperlink":
		href := ""
		if asset := targetAsset(n); asset != nil {
			href = asset.URL()
		}
		a := element(atom.A, html.Attribute{Key: "href", Val: href})
		parent.AppendChild(a)
		return appendNodes(a, n.Content)

	case "entry-hyperlink", "resource-hyperlink":
		span := element(atom.Span)
		parent.AppendChild(span)
		return appendNodes(span, n.Content)

	case "embedded-entry-block":
		p := element(atom.P)
		p.AppendChild(strong(targetEntryTitle(n)))
		parent.AppendChild(p)
		return nil

	case "embedded-entry-inline":
		parent.AppendChild(strong(targetEntryTitle(n)))
		return nil

	case "embedded-asset-block":
		asset := targetAsset(n)
		if asset == nil || asset.URL() == "" {
			return nil
		}
		p := element(atom.P)
		p.AppendChild(element(atom.Img,
			html.Attribute{Key: "src", Val: asset.URL()},
			html.Attribute{Key: "alt", Val: asset.Title},
		))
		parent.AppendChild(p)
		return nil

	case "embedded-resource-block", "embedded-resource-inline":
		return nil

	default:
		return fmt.Errorf("%w: unsupported node type %q", domain.ErrRenderFailure, n.NodeType)
	}
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func htmlText(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func strong(s string) *html.Node {
	el := element(atom.Strong)
	el.AppendChild(htmlText(s))
	return el
}

func textWithMarks(value string, marks []string) *html.Node {
	node := htmlText(value)
	for _, m := range marks {
		a, ok := markTags[m]
		if !ok {
			continue
		}
		wrapper := element(a)
		wrapper.AppendChild(node)
		node = wrapper
	}
	return node
}

func targetAsset(n *domain.Node) *domain.Asset {
	if link, ok := n.Target.(*domain.AssetLink); ok {
		return link.Asset
	}
	return nil
}

func targetEntryTitle(n *domain.Node) string {
	link, ok := n.Target.(*domain.EntryLink)
	if !ok {
		return ""
	}
	if link.Entry == nil {
		return link.ID
	}
	return strings.TrimSpace(link.Entry.DisplayTitle())
}
