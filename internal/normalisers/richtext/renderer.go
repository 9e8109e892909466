// Package richtext renders entry fields into the markdown served by tools.
//
// Rich documents are converted to an HTML tree and then to markdown with
// html-to-markdown. Other values follow a fixed layout: strings verbatim,
// arrays as bullet lists, objects as fenced JSON blocks.
package richtext

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/custodia-labs/static-mcpify/internal/core/domain"
	"github.com/custodia-labs/static-mcpify/internal/logger"
	"github.com/custodia-labs/static-mcpify/internal/normalisers/clone"
)

// FailurePlaceholder replaces the body of a rich text field that could not be rendered.
const FailurePlaceholder = "[Rich text conversion failed]"

// Renderer turns entry fields into markdown sections.
// It is safe for concurrent use.
type Renderer struct {
	conv *converter.Converter
}

// New creates a renderer.
func New() *Renderer {
	return &Renderer{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(
					commonmark.WithHorizontalRule("---"),
				),
				table.NewTablePlugin(),
				strikethrough.NewStrikethroughPlugin(),
			),
		),
	}
}

// RenderDocument converts a rich document to markdown.
func (r *Renderer) RenderDocument(doc *domain.Node) (string, error) {
	if !doc.IsDocument() {
		return "", fmt.Errorf("%w: not a document node", domain.ErrRenderFailure)
	}

	root, err := toHTML(doc)
	if err != nil {
		return "", err
	}

	md, err := r.conv.ConvertNode(root)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrRenderFailure, err)
	}
	return strings.TrimSpace(string(md)), nil
}

// RenderField renders one field as a level-2 section.
// Null fields render as nothing. Rich text failures degrade to
// FailurePlaceholder and are logged.
func (r *Renderer) RenderField(name string, v domain.Value) string {
	if isNull(v) {
		return ""
	}
	body := r.body(name, v)
	if body == "" {
		return "## " + name + "\n\n"
	}
	return "## " + name + "\n\n" + body + "\n\n"
}

// BuildMarkdown renders a tool document: a level-1 title followed by the
// named fields in order. Fields missing from the entry are skipped.
func (r *Renderer) BuildMarkdown(title string, fields *domain.Object, names []string) string {
	var b strings.Builder
	b.WriteString("# " + title + "\n\n")
	for _, name := range names {
		v, ok := fields.Get(name)
		if !ok {
			continue
		}
		b.WriteString(r.RenderField(name, v))
	}
	return b.String()
}

func (r *Renderer) body(name string, v domain.Value) string {
	switch val := v.(type) {
	case nil:
		return ""
	case domain.Scalar:
		return scalarText(val)
	case *domain.Node:
		if val.IsDocument() {
			md, err := r.RenderDocument(val)
			if err != nil {
				logger.Warn("Rich text field %s: %v", name, err)
				return FailurePlaceholder
			}
			return md
		}
		return fencedJSON(val)
	case *domain.Array:
		return bulletList(val)
	default:
		return fencedJSON(val)
	}
}

func isNull(v domain.Value) bool {
	if v == nil {
		return true
	}
	s, ok := v.(domain.Scalar)
	return ok && s.V == nil
}

func scalarText(s domain.Scalar) string {
	switch v := s.V.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func bulletList(a *domain.Array) string {
	lines := make([]string, 0, len(a.Items))
	for _, item := range a.Items {
		if s, ok := item.(domain.Scalar); ok {
			if str, ok := s.AsString(); ok {
				lines = append(lines, "- "+str)
				continue
			}
		}
		lines = append(lines, "- "+compactJSON(item))
	}
	return strings.Join(lines, "\n")
}

func compactJSON(v domain.Value) string {
	b, err := marshal(clone.Value(v))
	if err != nil {
		return "null"
	}
	return string(b)
}

func fencedJSON(v domain.Value) string {
	b, err := marshal(clone.Value(v))
	if err != nil {
		return "```json\nnull\n```"
	}
	var out bytes.Buffer
	if err := json.Indent(&out, b, "", "  "); err != nil {
		return "```json\n" + string(b) + "\n```"
	}
	return "```json\n" + out.String() + "\n```"
}

// marshal encodes a cloned value without HTML escaping.
func marshal(v domain.Value) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return []byte("null"), nil
	case json.Marshaler:
		return val.MarshalJSON()
	default:
		return nil, fmt.Errorf("%w: %s value has no JSON form", domain.ErrInvalidInput, v.Kind())
	}
}
