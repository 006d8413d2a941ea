package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/interactome/biographdb/internal/mcp"
	"github.com/interactome/biographdb/internal/server"
	"github.com/interactome/biographdb/pkg/engine"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (flags override it)")
	httpAddr := flag.String("http-addr", "", "Address and port for the REST API (e.g. :9092)")
	dataDir := flag.String("data-dir", "", "Directory holding the graph and mapping snapshots")
	authToken := flag.String("auth-token", "", "Bearer token required on query endpoints (empty disables auth)")
	directed := flag.Bool("directed", false, "Load the directed interaction graph")
	mcpMode := flag.Bool("mcp", false, "Serve the Model Context Protocol over stdio instead of HTTP")

	flag.Parse()

	cfg := server.DefaultConfig()
	if *configPath != "" {
		loaded, err := server.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Cannot load config: %v", err)
		}
		cfg = loaded
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *authToken != "" {
		cfg.AuthToken = *authToken
	}
	if *directed {
		cfg.Directed = true
	}

	opts := engine.DefaultOptions(cfg.DataDir)
	opts.Directed = cfg.Directed
	eng, err := engine.Open(opts)
	if err != nil {
		log.Fatalf("Cannot open the interaction graph: %v", err)
	}

	if *mcpMode {
		// Stdio transport: the process speaks MCP on stdin/stdout and
		// exits when the client disconnects.
		srv := mcp.NewMCPServer(eng)
		if err := srv.Run(context.Background(), &mcpsdk.StdioTransport{}); err != nil {
			log.Fatalf("MCP server error: %v", err)
		}
		return
	}

	srv := server.NewServer(eng, cfg.HTTPAddr, cfg.AuthToken)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Run(); err != nil {
			log.Fatal(err)
		}
	}()

	<-shutdownChan

	srv.Shutdown()
}
