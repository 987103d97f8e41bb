package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/goalpost-app/goalpost/internal/api"
)

// newServeCmd runs the HTTP API. Identity comes from the proxy headers;
// locally the CLI user doubles as the dev fallback.
func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			devUser := os.Getenv("GOALPOST_DEV_EMAIL")
			if devUser == "" {
				devUser = app.User
			}

			srv := api.NewServer(app.Goals, app.Tasks, app.Rebalance, logger,
				api.WithDevUser(devUser))

			fmt.Printf("Listening on %s\n", addr)
			return http.ListenAndServe(addr, srv.Handler())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8090", "Listen address")

	return cmd
}
