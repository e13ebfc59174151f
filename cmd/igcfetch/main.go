package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/s3blob"

	"github.com/flugbuch/igcfetch/internal/config"
	"github.com/flugbuch/igcfetch/internal/download"
	"github.com/flugbuch/igcfetch/internal/storage"
)

func main() {
	// Command line flags
	var (
		urlsFlag     = flag.String("url", "", "Results page URL(s) to download from (newline-separated)")
		outputFlag   = flag.String("output", "", "Output directory (overrides config)")
		bucketFlag   = flag.String("bucket", "", "Bucket URL to upload into instead of a directory (e.g. s3://tracklogs)")
		configFlag   = flag.String("config", "", "Path to config file")
		delayFlag    = flag.Int("delay", -1, "Milliseconds between download starts (overrides config)")
		allTasksFlag = flag.Bool("alltasks", false, "Download every task of the competition")
		verboseFlag  = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag   = flag.Bool("dry-run", false, "Parse results pages without downloading")
	)

	flag.Parse()

	// CLI mode - require URL
	if *urlsFlag == "" && flag.NArg() == 0 {
		fmt.Println("IGC Fetch - Download competition track logs")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  igcfetch -url <URL> [options]")
		fmt.Println("  igcfetch <URL> [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: igcfetch-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Diagnostics go to stderr so they never mix with progress output
	logLevel := slog.LevelWarn
	if *verboseFlag {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *outputFlag != "" {
		settings.DownloadsPath = *outputFlag
	}
	if *delayFlag >= 0 {
		settings.DownloadDelayMs = *delayFlag
	}
	if *allTasksFlag {
		settings.DownloadAllTasks = true
	}

	// Get URLs
	urls := *urlsFlag
	if urls == "" && flag.NArg() > 0 {
		urls = flag.Arg(0)
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	// Pick the sink: a bucket when one is configured, the downloads
	// directory otherwise
	bucketURL := *bucketFlag
	if bucketURL == "" {
		bucketURL = settings.BucketURL
	}

	var sink storage.Sink
	if bucketURL != "" {
		bucket, err := storage.OpenBucket(ctx, bucketURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening bucket: %v\n", err)
			os.Exit(1)
		}
		defer bucket.Close()
		sink = bucket
	} else {
		sink = storage.NewDir(settings.DownloadsPath)
	}

	// Create manager with progress callback
	manager := download.NewManager(settings, sink, func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case download.LevelError:
			prefix = "❌ "
		case download.LevelWarning:
			prefix = "⚠️  "
		case download.LevelSuccess:
			prefix = "✅ "
		case download.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	})

	// Initialize
	fmt.Println("🪂 IGC Fetch")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	if err := manager.Initialize(ctx, urls); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		os.Exit(1)
	}

	if *dryRunFlag {
		fmt.Println("\n[Dry run - not downloading]")
		return
	}

	// Start downloads
	fmt.Println("\n📥 Starting downloads...")
	fmt.Println()

	if err := manager.StartDownloads(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error during download: %v\n", err)
		os.Exit(1)
	}

	if ctx.Err() != nil {
		fmt.Println("\nDownload cancelled.")
		os.Exit(130)
	}

	tally := manager.Tally()
	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✨ Complete! %s\n", tally)
	if tally.Failed > 0 {
		os.Exit(1)
	}
}
