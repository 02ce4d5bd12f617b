package commands

import (
	"pollscape/internal/views"
	"pollscape/internal/web"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	serveAddr string
	serveOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API and the browser renderer",
	RunE: func(cmd *cobra.Command, args []string) error {
		parties, err := loadParties()
		if err != nil {
			return err
		}
		addr := cfg.HTTPAddr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}

		srv := web.NewServer(parties, web.Options{
			Addr:    addr,
			Session: sessionOptions(views.TaskLeader, views.Variant{}),
			OnListen: func(url string) {
				if !serveOpen {
					return
				}
				if err := browser.OpenURL(url); err != nil {
					log.Warn().Err(err).Str("url", url).Msg("Could not open browser")
				}
			},
		})

		ctx, stop := signalContext(cmd.Context())
		defer stop()
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address (overrides HTTP_ADDR)")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the renderer in the default browser")
	rootCmd.AddCommand(serveCmd)
}
