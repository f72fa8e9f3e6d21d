package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aurelienperez/grease-the-groove/internal/backup"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "gtg server URL (e.g. https://gtg.tail1234.ts.net)")
	apiKey := flag.String("api-key", os.Getenv("GTG_AUTH_API_KEY"), "API key for restore (defaults to GTG_AUTH_API_KEY)")
	exportDir := flag.String("export", "", "snapshot server state into this directory")
	importFile := flag.String("import", "", "restore server state from this backup JSON file")
	dryRun := flag.Bool("dry-run", false, "fetch and report but don't write or restore")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("gtg-backup", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" || (*exportDir == "" && *importFile == "") {
		fmt.Fprintf(os.Stderr, "Usage: gtg-backup -server <URL> (-export <dir> | -import <file>) [-dry-run]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *exportDir != "" && *importFile != "" {
		fmt.Fprintf(os.Stderr, "Error: -export and -import are mutually exclusive\n")
		os.Exit(1)
	}

	*serverURL = strings.TrimRight(*serverURL, "/")
	client := backup.NewClient(*serverURL, *apiKey)

	if *importFile != "" {
		if *apiKey == "" && !*dryRun {
			fmt.Fprintf(os.Stderr, "Error: -api-key (or GTG_AUTH_API_KEY) is required for restore\n")
			os.Exit(1)
		}
		snap := backup.NewSnapshotter(client, nil, "", *dryRun, log)
		if err := snap.Restore(*importFile); err != nil {
			log.Error("restore failed", "error", err)
			os.Exit(1)
		}
		log.Info("restore complete", "file", *importFile)
		return
	}

	state, err := backup.OpenStateDB(*exportDir)
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	if *dryRun {
		log.Info("DRY RUN mode — state will be fetched but nothing written")
	}

	snap := backup.NewSnapshotter(client, state, *exportDir, *dryRun, log)
	stats, err := snap.Run()
	if err != nil {
		log.Error("snapshot failed", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("=== Snapshot Summary ===")
	fmt.Printf("  Exercises:  %d\n", stats.Exercises)
	fmt.Printf("  Logs:       %d\n", stats.Logs)
	fmt.Printf("  Templates:  %d\n", stats.Templates)
	if stats.Skipped {
		fmt.Println("  Skipped: state unchanged since last snapshot")
	} else if !*dryRun {
		fmt.Printf("  JSON:       %s\n", stats.JSONPath)
		fmt.Printf("  CSV:        %s\n", stats.CSVPath)
	}
	fmt.Println()
}
