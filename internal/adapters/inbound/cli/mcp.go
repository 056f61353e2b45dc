package cli

import (
	mcpadapter "github.com/abdidvp/stockroom/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the stockroom MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(g))
	return cmd
}

func newMCPServeCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start stockroom MCP server (stdio)",
		Long:  "Start the stockroom MCP server using stdio transport. Tools list, search and update the inventory data file; every change is saved before the tool returns.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := openService(cmd, g)
			if err != nil {
				return err
			}
			s := mcpadapter.NewStockroomMCPServer(svc, cfg, version)
			return server.ServeStdio(s)
		},
	}
}
