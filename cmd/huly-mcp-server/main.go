// huly-mcp-server exposes Huly project-tracker operations as MCP tools.
//
// Usage:
//
//	huly-mcp-server serve              # start the MCP server (stdio transport)
//	huly-mcp-server version
//
// Configuration comes from HULY_* environment variables, flags on the
// serve command, or $HOME/.huly-mcp-server.yaml.
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oculairmedia/huly-mcp-server/internal/config"
	hulyserver "github.com/oculairmedia/huly-mcp-server/internal/server"
)

var rootCmd = &cobra.Command{
	Use:   "huly-mcp-server",
	Short: "MCP server for Huly project-tracker operations",
	Long: `huly-mcp-server bridges an MCP client (Claude Code, Cursor, ...) to a
Huly workspace: projects, issues, components, milestones and templates,
with cascading deletion, dry-run simulation and impact analysis.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		// Stdout belongs to the MCP transport; everything else goes to
		// stderr.
		return server.ServeStdio(hulyserver.New(cfg))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the server version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("huly-mcp-server v%s\n", hulyserver.Version)
	},
}

func init() {
	serveCmd.Flags().String("config", "", "config file (default is $HOME/.huly-mcp-server.yaml)")
	serveCmd.Flags().String("url", "", "Huly platform URL")
	serveCmd.Flags().String("workspace", "", "Huly workspace identifier")
	serveCmd.Flags().String("token", "", "Huly API token")

	for _, name := range []string{"config", "url", "workspace", "token"} {
		_ = viper.BindPFlag(name, serveCmd.Flags().Lookup(name))
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
