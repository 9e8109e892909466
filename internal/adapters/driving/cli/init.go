package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/static-mcpify/internal/core/domain"
	"github.com/custodia-labs/static-mcpify/internal/core/ports/driving"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize an output folder with config files and content structure",
	Long: `Creates <output>/config.json, the content folder layout and one
config.json per selected content type.

Each tool is declared with --tool <contentType>:<name>=<field>,<field>...
Content types named by a tool are selected automatically.

Use --list to print the content types offered by the source.

Examples:
  smcp init --output ./out --list
  smcp init --output ./out --tool person:biography=name,bio --tool person:summary=name`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("output", "", "output directory path")
	initCmd.Flags().StringSlice("content-type", nil, "content type to configure (repeatable)")
	initCmd.Flags().StringArray("tool", nil, "tool as <contentType>:<name>=<field>,... (repeatable)")
	initCmd.Flags().Bool("list", false, "list the source's content types and exit")
	_ = initCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	output, _ := cmd.Flags().GetString("output")
	contentTypes, _ := cmd.Flags().GetStringSlice("content-type")
	tools, _ := cmd.Flags().GetStringArray("tool")
	list, _ := cmd.Flags().GetBool("list")

	service, err := newInitService(output)
	if err != nil {
		return err
	}
	out := newPrinter(cmd.OutOrStdout())

	if list {
		return listContentTypes(cmd, out, service)
	}

	specs, err := contentTypeSpecs(contentTypes, tools)
	if err != nil {
		return err
	}
	if err := service.Init(cmd.Context(), driving.InitRequest{ContentTypes: specs}); err != nil {
		return fmt.Errorf("init failed: %w", err)
	}

	out.success(fmt.Sprintf("Initialized %s", output))
	for _, spec := range specs {
		names := make([]string, len(spec.Tools))
		for i, t := range spec.Tools {
			names[i] = t.Name
		}
		out.dim(fmt.Sprintf("  %s: %s", spec.ContentType, strings.Join(names, ", ")))
	}
	out.plain("")
	out.plain(fmt.Sprintf("Next: set CONTENTFUL_API_TOKEN and SPACE_ID, then run \"smcp build --output %s\"", output))
	return nil
}

func listContentTypes(cmd *cobra.Command, out *printer, service driving.InitService) error {
	types, err := service.AvailableContentTypes(cmd.Context())
	if err != nil {
		return fmt.Errorf("list content types: %w", err)
	}
	if len(types) == 0 {
		out.plain("No content types found.")
		return nil
	}

	out.header("Content types")
	for _, ct := range types {
		out.plain(fmt.Sprintf("  %s (%s)", ct.ID, ct.Name))
		out.dim("    fields: " + strings.Join(ct.Fields, ", "))
	}
	return nil
}

// contentTypeSpecs groups --tool flags by content type. Content types keep
// the order they are first named in, --content-type flags first.
func contentTypeSpecs(contentTypes, tools []string) ([]domain.ContentTypeSpec, error) {
	var order []string
	byType := make(map[string]*domain.ContentTypeSpec)
	add := func(ct string) *domain.ContentTypeSpec {
		spec, ok := byType[ct]
		if !ok {
			spec = &domain.ContentTypeSpec{ContentType: ct}
			byType[ct] = spec
			order = append(order, ct)
		}
		return spec
	}

	for _, ct := range contentTypes {
		ct = strings.TrimSpace(ct)
		if ct == "" {
			return nil, fmt.Errorf("%w: empty --content-type", domain.ErrInvalidInput)
		}
		add(ct)
	}
	for _, raw := range tools {
		ct, tool, err := parseToolFlag(raw)
		if err != nil {
			return nil, err
		}
		spec := add(ct)
		for _, existing := range spec.Tools {
			if existing.Name == tool.Name {
				return nil, fmt.Errorf("%w: tool %q declared twice for %s", domain.ErrInvalidInput, tool.Name, ct)
			}
		}
		spec.Tools = append(spec.Tools, tool)
	}

	specs := make([]domain.ContentTypeSpec, 0, len(order))
	for _, ct := range order {
		specs = append(specs, *byType[ct])
	}
	return specs, nil
}

// parseToolFlag parses "<contentType>:<name>=<field>,<field>".
func parseToolFlag(raw string) (string, domain.ToolConfig, error) {
	invalid := func(reason string) error {
		return fmt.Errorf("%w: --tool %q: %s (want <contentType>:<name>=<field>,...)", domain.ErrInvalidInput, raw, reason)
	}

	ct, rest, ok := strings.Cut(raw, ":")
	if !ok {
		return "", domain.ToolConfig{}, invalid("missing ':'")
	}
	name, fieldList, ok := strings.Cut(rest, "=")
	if !ok {
		return "", domain.ToolConfig{}, invalid("missing '='")
	}

	ct, name = strings.TrimSpace(ct), strings.TrimSpace(name)
	if ct == "" || name == "" {
		return "", domain.ToolConfig{}, invalid("content type and tool name are required")
	}

	var fields []string
	for _, f := range strings.Split(fieldList, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return "", domain.ToolConfig{}, invalid("at least one field is required")
	}
	return ct, domain.ToolConfig{Name: name, Fields: fields}, nil
}
