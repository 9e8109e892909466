package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/static-mcpify/internal/core/ports/driving"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Pull content from the configured source and build local files",
	Long: `Fetches every entry of the configured content types and writes
data.json, one markdown file per tool and the referenced assets.

Assets already present in content/assets are not downloaded again.

Examples:
  smcp build --output ./out
  smcp build --output ./out --content-type person,article`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "output directory path")
	buildCmd.Flags().StringSlice("content-type", nil, "only build these content types")
	_ = buildCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	output, _ := cmd.Flags().GetString("output")
	contentTypes, _ := cmd.Flags().GetStringSlice("content-type")

	service, err := newBuildService(output)
	if err != nil {
		return err
	}

	out := newPrinter(cmd.OutOrStdout())
	report, err := service.Build(cmd.Context(), driving.BuildOptions{
		ContentTypes: contentTypes,
		Progress:     buildProgress(out),
	})
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	out.plain("")
	out.success("Build complete!")
	out.dim(fmt.Sprintf("  %d entries, %d assets downloaded, %d already present (%s)",
		report.TotalEntries(), report.AssetsDownloaded, report.AssetsSkipped, report.Duration.Round(time.Millisecond)))
	return nil
}

func buildProgress(out *printer) func(driving.BuildEvent) {
	return func(ev driving.BuildEvent) {
		switch ev.Kind {
		case driving.BuildEventContentType:
			out.header("Building content type: " + ev.ContentType)
		case driving.BuildEventEntry:
			out.dim("  ✓ " + ev.Name)
		case driving.BuildEventAssetDownloaded:
			out.dim("  ↓ " + ev.Name)
		}
	}
}
