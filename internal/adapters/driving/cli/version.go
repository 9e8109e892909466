package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/static-mcpify/internal/adapters/driving/mcp"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("smcp version %s\n", version)
		cmd.Printf("MCP server %s %s\n", mcp.ServerName, mcp.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
