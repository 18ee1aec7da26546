// Package main provides the CLI entry point for vidcomply.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mattvenn/vidcomply/internal/errors"
	"github.com/mattvenn/vidcomply/internal/logging"
	"github.com/mattvenn/vidcomply/internal/processing"
	"github.com/mattvenn/vidcomply/internal/remediation"
	"github.com/mattvenn/vidcomply/internal/reporter"
	"github.com/mattvenn/vidcomply/internal/standards"
)

const (
	appName    = "vidcomply"
	appVersion = "0.3.0"
)

type cliFlags struct {
	dir        string
	convert    bool
	verbose    bool
	compliance bool
	standards  string
	naming     string
	logDir     string
	noLog      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.IsCancelled(err) {
			fmt.Fprintln(os.Stderr, "Cancelled")
			os.Exit(130)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &cliFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Analyze and remediate video delivery compliance",
		Long: appName + ` scans a directory of video assets, checks each one
against a delivery-standards catalog, and optionally transcodes
non-compliant files into a compliant form using NVENC.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVarP(&flags.dir, "dir", "d", "", "directory containing video files (required)")
	cmd.Flags().BoolVarP(&flags.convert, "convert", "c", false, "remediate non-compliant files into an H264 subdirectory")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "show per-file technical metadata")
	cmd.Flags().BoolVar(&flags.compliance, "compliance", false, "run delivery-standards compliance analysis")
	cmd.Flags().StringVar(&flags.standards, "standards", "", "path to a TOML standards catalog (defaults to built-in)")
	cmd.Flags().StringVar(&flags.naming, "naming", "preserve", "output naming policy: preserve or suffix")
	cmd.Flags().StringVar(&flags.logDir, "log-dir", "", "run log directory (defaults to DIR/logs)")
	cmd.Flags().BoolVar(&flags.noLog, "no-log", false, "disable the run log file")
	_ = cmd.MarkFlagRequired("dir")

	cmd.AddCommand(newVersionCmd())

	ctx, cancel := context.WithCancel(context.Background())
	cmd.SetContext(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, appVersion)
		},
	}
}

func run(ctx context.Context, flags *cliFlags) error {
	naming, err := remediation.ParseNamingPolicy(flags.naming)
	if err != nil {
		return err
	}

	catalog := standards.Default()
	if flags.standards != "" {
		catalog, err = standards.Load(flags.standards)
		if err != nil {
			return err
		}
	}

	logDir := flags.logDir
	if logDir == "" {
		logDir = filepath.Join(flags.dir, "logs")
	}
	runLog, err := logging.Setup(logDir, flags.verbose, flags.noLog)
	if err != nil {
		return err
	}
	defer func() { _ = runLog.Close() }()

	level := slog.LevelInfo
	if flags.verbose {
		level = slog.LevelDebug
	}
	logging.Init(level, runLog.Writer())

	runLog.Info("scanning %s (convert=%v compliance=%v naming=%s)",
		flags.dir, flags.convert, flags.compliance, flags.naming)

	rep := reporter.NewTerminalReporter(flags.verbose)
	proc := processing.New(processing.Options{
		Catalog: catalog,
		Naming:  naming,
	}, rep)

	outcome, err := proc.ProcessDirectory(ctx, processing.Request{
		InputDir:   flags.dir,
		Convert:    flags.convert,
		Compliance: flags.compliance,
	})
	if err != nil {
		runLog.Error("run failed: %v", err)
		return err
	}

	runLog.Info("run complete: %d analyzed, %d fixed, %d skipped, %d failed",
		outcome.Processing.TotalVideos,
		len(outcome.Batch.FixedFiles),
		len(outcome.Batch.SkippedFiles),
		len(outcome.Batch.FailedFiles))

	if len(outcome.Batch.FailedFiles) > 0 {
		return errors.NewOperationFailedError(
			fmt.Sprintf("%d file(s) failed processing", len(outcome.Batch.FailedFiles)), nil)
	}
	return nil
}
