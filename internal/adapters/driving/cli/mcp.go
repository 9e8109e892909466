package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/static-mcpify/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a built content folder as MCP tools",
	Long: `Start the Model Context Protocol server over a built content folder.

The folder is scanned once at startup. Use --watch to rescan it whenever
files change, for example while "smcp build" runs in another terminal.

By default, the server communicates over stdio using JSON-RPC. Use --port to
start an HTTP server instead, serving the MCP endpoint at /mcp and a health
check at /health.

Examples:
  # Stdio mode (default, for Claude Desktop)
  smcp mcp serve --content-dir ./out/content

  # HTTP mode (for MCP Inspector, remote access)
  smcp mcp serve --content-dir ./out/content --port 3100

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "my-content": {
        "command": "/path/to/smcp",
        "args": ["mcp", "serve", "--content-dir", "/path/to/out/content"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().String("content-dir", "content", "content folder produced by smcp build")
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().Bool("watch", false, "reload tools when the content folder changes")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	contentDir, _ := cmd.Flags().GetString("content-dir")
	watch, _ := cmd.Flags().GetBool("watch")
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	contentDir, err = resolveContentDir(contentDir)
	if err != nil {
		return err
	}

	ports := &mcp.Ports{
		Tools:      newToolSurface(contentDir),
		ContentDir: contentDir,
	}

	server, err := mcp.NewServer(cmd.Context(), ports)
	if err != nil {
		return err
	}

	if watch {
		if err := server.Watch(cmd.Context()); err != nil {
			return err
		}
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		out := newPrinter(cmd.OutOrStdout())
		out.success(fmt.Sprintf("MCP server running at http://localhost%s/mcp", addr))
		out.dim("  Content dir: " + contentDir)
		out.dim(fmt.Sprintf("  Health: http://localhost%s/health", addr))
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}

// resolveContentDir makes dir absolute and checks that it is a directory.
func resolveContentDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("content directory %s: %w\nRun \"smcp build\" first", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("content directory %s is not a directory", abs)
	}
	return abs, nil
}
