package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/jakechorley/parks-scoring/pkg/api"
)

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scoring engines as a JSON API for the admin dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = app.Cfg.ServerAddr()
			}

			gin.SetMode(gin.ReleaseMode)
			server := api.NewServer(api.Dependencies{
				Activities: app.Activities,
				Volunteers: app.Volunteers,
				Estimator:  app.Estimator,
				Checker:    app.Checker,
				Logger:     app.Logger,
				Location:   app.Location,
			}, app.Cfg.Server.AllowedOrigins)

			ctx, stop := signal.NotifyContext(app.Ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Run(ctx, addr)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (overrides server.addr from config)")

	return cmd
}
