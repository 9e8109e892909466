// Package cli implements the smcp command line.
package cli

import (
	"context"
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/static-mcpify/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "smcp",
	Short: "Build and serve static MCP servers from CMS content",
	Long: `static-mcpify pulls structured content from a CMS into a local folder
and serves that folder as a set of read-only MCP tools.

Typical workflow:
  smcp init --output ./out --content-type person --tool person:biography=name,bio
  smcp build --output ./out
  smcp mcp serve --content-dir ./out/content

Contentful credentials are read from CONTENTFUL_API_TOKEN and SPACE_ID.
A .env file in the working directory is loaded at startup.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
}

// SetVersion sets the version reported by "smcp version".
func SetVersion(v string) {
	version = v
}

// ExecuteContext loads .env and runs the root command. Cancelling ctx stops
// long-running commands such as mcp serve.
func ExecuteContext(ctx context.Context) error {
	loadDotEnv(".env")
	return rootCmd.ExecuteContext(ctx)
}

// loadDotEnv loads variables from path without overriding the environment.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Failed to load %s: %v", path, err)
	}
}
