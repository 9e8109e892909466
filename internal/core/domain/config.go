package domain

// SourceContentful is the name of the built-in Contentful source.
const SourceContentful = "contentful"

// OutputConfig is the top-level config.json of an output directory.
// A nil Source means no source has been chosen yet.
type OutputConfig struct {
	Source *string `json:"source"`
}

// SourceName returns the configured source, or "" when unset.
func (c OutputConfig) SourceName() string {
	if c.Source == nil {
		return ""
	}
	return *c.Source
}

// ContentTypeConfig lists the tools generated for every entry of a content type.
type ContentTypeConfig struct {
	ContentType string       `json:"contentType"`
	Tools       []ToolConfig `json:"tools"`
}

// ToolConfig selects the fields rendered into one tool's markdown.
type ToolConfig struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Fields      []string `json:"fields"`
}

// ContentTypeSpec is a content type selection made during init.
type ContentTypeSpec struct {
	ContentType string
	Tools       []ToolConfig
}
