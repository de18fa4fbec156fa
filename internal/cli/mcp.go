package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akolanti/rfqflow/internal/app"
	"github.com/akolanti/rfqflow/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server exposing two tools:

  extract_rfq_fields  extract RFQ fields from a base64 encoded PDF or DOCX
  render_rfq          render fields into the RFQ draft (never sends email)

By default the server speaks JSON-RPC over stdio. Use --port to serve the
streamable HTTP transport instead.`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	service, err := buildService(cmd, app.Options{UseRedis: true})
	if err != nil {
		return err
	}
	server, err := mcpserver.NewServer(service)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}
	return server.Run(cmd.Context())
}
