package main

import (
	"net/http"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"go-object-inspector/internal/catalog"
	"go-object-inspector/internal/config"
	"go-object-inspector/internal/fixtures"
	"go-object-inspector/internal/inspector"
	"go-object-inspector/internal/log"
	handlers "go-object-inspector/internal/server"
)

type Options struct {
	ConfigFile string
	Mode       string
	Addr       string
	Path       string
}

func main() {
	if err := NewCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewCommand returns the command serving inspection tools over MCP.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "inspect-server",
		Short:        "Serves object inspection reports over the Model Context Protocol.",
		SilenceUsage: true,
	}

	opts := Options{}
	cmd.Flags().StringVar(&opts.ConfigFile, "config", opts.ConfigFile, "Path to a yaml, json or toml config file")
	cmd.Flags().StringVar(&opts.Mode, "mode", opts.Mode, "Transport mode: stdio or sse (overrides config)")
	cmd.Flags().StringVar(&opts.Addr, "addr", opts.Addr, "HTTP listen address for SSE (overrides config)")
	cmd.Flags().StringVar(&opts.Path, "path", opts.Path, "HTTP path for SSE connections (overrides config)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return run(opts)
	}
	return cmd
}

func run(opts Options) error {
	cfg := config.LoadOrDefault()
	if opts.ConfigFile != "" {
		loaded, err := config.Load(opts.ConfigFile)
		if err != nil {
			log.Error(err, "Failed to load config")
			return err
		}
		cfg = loaded
	}
	if opts.Mode != "" {
		cfg.Server.Mode = opts.Mode
	}
	if opts.Addr != "" {
		cfg.Server.Addr = opts.Addr
	}
	if opts.Path != "" {
		cfg.Server.Path = opts.Path
	}
	if err := cfg.Validate(); err != nil {
		log.Error(err, "Invalid configuration")
		return err
	}
	log.SetLogger(log.New(cfg.Log.Level, cfg.Log.Development))

	objects := catalog.New()
	if err := fixtures.Register(objects); err != nil {
		log.Error(err, "Failed to register demo objects")
		return err
	}

	s := server.NewMCPServer(
		"Go Object Inspector",
		"1.0.0",
		server.WithToolCapabilities(false),
	)
	handlers.NewHandlers(objects, cfg.Inspect, inspector.DefaultRegistry).RegisterTools(s)

	switch cfg.Server.Mode {
	case "sse":
		sseServer := server.NewSSEServer(s)

		// The message endpoint sits next to the SSE endpoint: "/mcp/sse"
		// pairs with "/mcp/message", anything else gets "/message" appended.
		ssePath := cfg.Server.Path
		messagePath := strings.Replace(ssePath, "/sse", "/message", 1)
		if messagePath == ssePath {
			messagePath = strings.TrimRight(ssePath, "/") + "/message"
		}

		mux := http.NewServeMux()
		mux.Handle(ssePath, sseServer.SSEHandler())
		mux.Handle(messagePath, sseServer.MessageHandler())

		log.Info("Starting SSE server", "addr", cfg.Server.Addr, "sse", ssePath, "message", messagePath)
		if err := http.ListenAndServe(cfg.Server.Addr, mux); err != nil {
			log.Error(err, "HTTP server error")
			return err
		}
	default:
		if err := server.ServeStdio(s); err != nil {
			log.Error(err, "Server error")
			return err
		}
	}
	return nil
}
