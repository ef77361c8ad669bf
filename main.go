package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/joho/godotenv"

	"github.com/leadmarket/leadmarket/pkg/apis/options"
	"github.com/leadmarket/leadmarket/pkg/logger"
	"github.com/leadmarket/leadmarket/pkg/storage"
	"github.com/leadmarket/leadmarket/pkg/validation"
)

// VERSION is set at build time via ldflags.
var VERSION = "undefined"

func main() {
	logger.SetFlags(logger.Lshortfile)

	// Local development convenience, missing files are fine.
	_ = godotenv.Load()

	flagSet := options.NewFlagSet()
	config := flagSet.String("config", "", "path to config file")
	showVersion := flagSet.Bool("version", false, "print version string")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		logger.Fatalf("ERROR: failed to parse flags: %v", err)
	}

	if *showVersion {
		fmt.Printf("leadmarket %s (built with %s)\n", VERSION, runtime.Version())
		return
	}

	opts := options.NewOptions()
	if err := options.Load(*config, flagSet, opts); err != nil {
		logger.Fatalf("ERROR: failed to load configuration: %v", err)
	}

	if err := validation.Validate(opts); err != nil {
		logger.Fatalf("%s", err)
	}
	validation.SetupLogger(opts)

	ctx := context.Background()
	store, err := storage.Connect(ctx, opts.DatabaseURL)
	if err != nil {
		logger.Fatalf("ERROR: failed to open storage: %v", err)
	}
	defer store.Close()

	leadMarket, err := NewLeadMarket(opts, store)
	if err != nil {
		logger.Fatalf("ERROR: failed to build app: %v", err)
	}

	server := &Server{
		Handler: leadMarket,
		Addr:    opts.HTTPAddress,
	}
	if err := server.ListenAndServe(ctx); err != nil {
		logger.Fatalf("ERROR: %v", err)
	}
}
