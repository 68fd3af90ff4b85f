package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/expenseflow/spaserver/internal/api"
	"github.com/expenseflow/spaserver/internal/buildcfg"
	"github.com/expenseflow/spaserver/internal/config"
	"github.com/expenseflow/spaserver/internal/logging"
	"github.com/expenseflow/spaserver/internal/server"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	case "override-config":
		if err := runOverrideConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "override-config: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("spaserver %s\n", version)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: spaserver <command>

Commands:
  serve            Start the static asset server
  override-config  Apply the source-map override to a bundler config (JSON)
  version          Print version information
`)
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logCloser, err := logging.Setup(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logCloser.Close()

	slog.Info("starting spaserver",
		"version", version,
		"port", cfg.Port,
		"buildDir", cfg.BuildDir,
		"logLevel", cfg.LogLevel,
	)

	// The build output must at least carry the index document; anything else
	// missing is handled per request, but a missing index is a deployment
	// fault worth failing fast on.
	indexPath := filepath.Join(cfg.BuildDir, config.IndexFileName)
	if _, err := os.Stat(indexPath); err != nil {
		return fmt.Errorf("%w: %s: %v", config.ErrIndexMissing, indexPath, err)
	}

	api.Version = version
	router := api.NewRouter(cfg, os.DirFS(cfg.BuildDir))

	srv := server.New(cfg, router)
	if err := srv.Start(); err != nil {
		return err
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	if err := waitForShutdown(done, srv.Err()); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		return err
	}

	slog.Info("server stopped gracefully")
	return nil
}

// waitForShutdown blocks until a termination signal arrives or the serve
// loop fails. A signal is the normal way down and yields nil so the process
// exits 0 after the graceful stop.
func waitForShutdown(done <-chan os.Signal, errCh <-chan error) error {
	select {
	case sig := <-done:
		slog.Info("termination signal received, shutting down", "signal", sig.String())
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server serve error: %w", err)
		}
		return nil
	}
}

func runOverrideConfig() error {
	fs := flag.NewFlagSet("override-config", flag.ExitOnError)
	inPath := fs.String("in", "-", "Input bundler config JSON file (- for stdin)")
	outPath := fs.String("out", "-", "Output file (- for stdout)")
	fs.Parse(os.Args[2:])

	var in io.Reader = os.Stdin
	if *inPath != "-" {
		f, err := os.Open(*inPath)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	var cfg buildcfg.Config
	if err := json.NewDecoder(in).Decode(&cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	buildcfg.Apply(&cfg)

	var out io.Writer = os.Stdout
	if *outPath != "-" {
		f, err := os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return nil
}
