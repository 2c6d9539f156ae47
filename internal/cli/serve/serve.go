// Package serve implements the command that runs the HTTP API
package serve

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ordo/internal/cli"
	"github.com/thenoetrevino/ordo/internal/httpapi"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board over HTTP",
		Long: `Run the JSON HTTP API for the board until interrupted. Host, port and
CORS origins come from the config file or ORDO_HOST / ORDO_PORT /
ORDO_ALLOWED_ORIGINS; the flags below take precedence.

Prometheus metrics are exposed at /metrics.

Examples:
  ordo serve
  ordo serve --host 127.0.0.1 --port 9000
`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("host", "", "Interface to listen on (default from config)")
	cmd.Flags().Int("port", 0, "Port to listen on, 0 picks a free one (default from config)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	formatter := cli.Formatter(cmd)

	// A long-running server logs to stderr unless a log file is configured
	opts := cli.OptionsFromContext(cmd.Context())
	opts.Foreground = true
	ctx := cli.WithOptions(cmd.Context(), opts)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	server := cliInstance.Config.Server
	if cmd.Flags().Changed("host") {
		server.Host, _ = cmd.Flags().GetString("host")
	}
	if cmd.Flags().Changed("port") {
		server.Port, _ = cmd.Flags().GetInt("port")
	}

	a := cliInstance.App
	srv, err := httpapi.NewServer(server.Addr(), httpapi.NewHandler(a, server.AllowedOrigins), a.Logger())
	if err != nil {
		return formatter.Fail(err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving board API on %s\n", displayURL(srv.Addr()))
	if err := srv.Start(ctx); err != nil {
		return formatter.Fail(err)
	}
	fmt.Println("Server stopped")
	return nil
}

// displayURL turns the bound address into a URL a browser can open
func displayURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if ip := net.ParseIP(host); ip != nil && ip.IsUnspecified() {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
