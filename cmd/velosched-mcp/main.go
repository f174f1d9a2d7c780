// velosched-mcp runs the MCP server on stdio. With -server it proxies a
// remote velosched instance over its REST API; otherwise it opens the
// database directly using the same config file as the main server.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mikevelosports/velosched/internal/config"
	"github.com/mikevelosports/velosched/internal/mcp"
	"github.com/mikevelosports/velosched/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "remote velosched base URL (e.g. http://velosched:80); empty for direct database access")
	apiKey := flag.String("api-key", os.Getenv("VELOSCHED_API_KEY"), "API key for remote mutating calls")
	configPath := flag.String("config", "config.yaml", "path to config file (direct database mode)")
	flag.Parse()

	// Logs go to stderr: stdout carries the MCP protocol.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource

	if *serverURL != "" {
		ds = mcp.NewHTTPClient(*serverURL, *apiKey)
		log.Info("velosched-mcp starting", "version", Version, "mode", "remote", "server", *serverURL)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		ds = &mcp.LocalSource{DB: db}
		log.Info("velosched-mcp starting", "version", Version, "mode", "local")
	}

	s := mcp.New(ds, Version, log)
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
