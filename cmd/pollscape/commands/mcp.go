package commands

import (
	"pollscape/internal/mcp"
	"pollscape/internal/session"
	"pollscape/internal/views"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the scenario explorer as MCP tools over stdio",
	RunE:  runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	parties, err := loadParties()
	if err != nil {
		return err
	}
	sess, err := session.New(parties, sessionOptions(views.TaskLeader, views.Variant{}))
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	log.Info().Msg("MCP Server starting Stdio loop")
	server := mcp.NewServer(sess, mcp.Options{
		Version:             Version,
		EnableMermaidCharts: cfg.EnableMermaidCharts,
	})
	return server.Serve(ctx)
}
