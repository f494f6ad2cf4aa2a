// Package cmd wires the CLI surface: flag parsing, configuration merge,
// backend selection, signal handling, and report printing. All sweep logic
// lives in the internal packages it assembles.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/NadjaSenpai/remove-junk-files/internal/collector"
	"github.com/NadjaSenpai/remove-junk-files/internal/config"
	"github.com/NadjaSenpai/remove-junk-files/internal/logger"
	"github.com/NadjaSenpai/remove-junk-files/internal/rules"
	"github.com/NadjaSenpai/remove-junk-files/internal/runlock"
	"github.com/NadjaSenpai/remove-junk-files/internal/sweep"
	"github.com/NadjaSenpai/remove-junk-files/internal/xattrs"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-junk-files",
		Short: "Remove OS-generated junk files and provenance markers from a directory tree",
		Long: `remove-junk-files walks a directory tree, deletes OS-generated metadata
artifacts (.DS_Store, Thumbs.db, editor backups, ...), deletes downloaded-file
Zone.Identifier marker files, and strips matching extended attributes.

Files are classified against a fixed name and glob rule set and processed
concurrently. Interrupting the run (Ctrl+C) stops it cleanly and prints the
totals for whatever completed.

Examples:
  # Dry run over the current directory
  remove-junk-files --dry-run

  # Clean a tree, skipping version-control directories
  remove-junk-files --path ~/Downloads --exclude-git

  # Also strip a custom extended attribute, show affected paths
  remove-junk-files -a user.custom.tag --summary

  # Stream affected files to CSV with no console noise
  remove-junk-files --csv cleaned.csv --quiet`,
		Version:      Version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runSweep,
	}

	cmd.Flags().StringP("path", "p", "", "Target directory (default: current directory)")
	cmd.Flags().BoolP("dry-run", "n", false, "Report what would be removed without touching anything")
	cmd.Flags().StringArrayP("attr", "a", nil, "Extra extended attribute name to remove (repeatable)")
	cmd.Flags().BoolP("exclude-git", "g", false, "Skip version-control directories (.git, .hg, .svn, .bzr)")
	cmd.Flags().Bool("recursive", true, "Walk subdirectories (use --recursive=false for top level only)")
	cmd.Flags().Int("workers", 0, "Worker pool size (0 = number of CPUs)")
	cmd.Flags().BoolP("summary", "s", false, "List every affected path after the totals")
	cmd.Flags().BoolP("quiet", "q", false, "Suppress progress and count printing")
	cmd.Flags().String("csv", "", "Write affected files to this CSV file")
	cmd.Flags().String("log-level", "", "Console verbosity (trace, debug, info, warn, error)")
	cmd.Flags().String("config", "", "Path to config file (default: .junkfiles.yaml)")
	cmd.Flags().Bool("legacy-attr-report", false, "Count an attribute as removed on probe success even if removal fails")

	return cmd
}

// defaultConfigFile is consulted when --config is not given.
const defaultConfigFile = ".junkfiles.yaml"

// runSweep implements the sweep command logic.
func runSweep(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigFile
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Build flag pointers for merge (only explicitly set values).
	var rootPtr *string
	if cmd.Flags().Changed("path") {
		v, _ := cmd.Flags().GetString("path")
		rootPtr = &v
	}
	var dryRunPtr *bool
	if cmd.Flags().Changed("dry-run") {
		v, _ := cmd.Flags().GetBool("dry-run")
		dryRunPtr = &v
	}
	var attrsPtr *[]string
	if cmd.Flags().Changed("attr") {
		v, _ := cmd.Flags().GetStringArray("attr")
		attrsPtr = &v
	}
	var excludeVCSPtr *bool
	if cmd.Flags().Changed("exclude-git") {
		v, _ := cmd.Flags().GetBool("exclude-git")
		excludeVCSPtr = &v
	}
	var recursivePtr *bool
	if cmd.Flags().Changed("recursive") {
		v, _ := cmd.Flags().GetBool("recursive")
		recursivePtr = &v
	}
	var workersPtr *int
	if cmd.Flags().Changed("workers") {
		v, _ := cmd.Flags().GetInt("workers")
		workersPtr = &v
	}
	var summaryPtr *bool
	if cmd.Flags().Changed("summary") {
		v, _ := cmd.Flags().GetBool("summary")
		summaryPtr = &v
	}
	var quietPtr *bool
	if cmd.Flags().Changed("quiet") {
		v, _ := cmd.Flags().GetBool("quiet")
		quietPtr = &v
	}
	var csvPtr *string
	if cmd.Flags().Changed("csv") {
		v, _ := cmd.Flags().GetString("csv")
		csvPtr = &v
	}
	var logLevelPtr *string
	if cmd.Flags().Changed("log-level") {
		v, _ := cmd.Flags().GetString("log-level")
		logLevelPtr = &v
	}
	var confirmRemovalPtr *bool
	if cmd.Flags().Changed("legacy-attr-report") {
		legacy, _ := cmd.Flags().GetBool("legacy-attr-report")
		confirmed := !legacy
		confirmRemovalPtr = &confirmed
	}

	cfg.MergeWithFlags(rootPtr, dryRunPtr, attrsPtr, excludeVCSPtr, recursivePtr, workersPtr, summaryPtr, quietPtr, csvPtr, logLevelPtr, confirmRemovalPtr)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// One sweep per tree: concurrent runs would race each other's
	// deletions. Dry runs mutate nothing and skip the lock.
	if !cfg.DryRun {
		lock, err := runlock.Acquire(cfg.Root)
		if err != nil {
			return err
		}
		defer lock.Release()
	}

	// Console logging honors quiet mode with a nil writer.
	var consoleLog *logger.ConsoleLogger
	if cfg.Quiet {
		consoleLog = logger.NewConsoleLogger(nil, cfg.LogLevel)
	} else {
		consoleLog = logger.NewConsoleLogger(os.Stderr, cfg.LogLevel)
	}

	// Interruption is a controlled early stop, never an error: the same
	// final report is printed either way. Core logic only ever observes
	// the context; the handler is installed here at the boundary.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := executeSweep(ctx, cfg, consoleLog)
	if err != nil {
		return err
	}

	printReport(cmd, cfg, summary)
	return nil
}

// executeSweep collects candidate files and runs the scheduler over them.
func executeSweep(ctx context.Context, cfg *config.Config, consoleLog *logger.ConsoleLogger) (sweep.Summary, error) {
	backend := xattrs.ForPlatform()
	consoleLog.Debugf("attribute backend: %s (supported: %v)", backend.Name(), backend.Supported())
	consoleLog.Tracef("junk names: %s", strings.Join(rules.JunkNames(), ", "))
	consoleLog.Tracef("junk patterns: %s", strings.Join(rules.JunkPatterns(), ", "))

	consoleLog.Infof("collecting files under %s", cfg.Root)
	result, err := collector.Collect(cfg.Root, collector.Options{
		Recursive:  cfg.Recursive,
		ExcludeVCS: cfg.ExcludeVCS,
	})
	if err != nil {
		return sweep.Summary{}, fmt.Errorf("failed to collect files: %w", err)
	}
	for _, collectErr := range result.Errors {
		consoleLog.Warnf("%v", collectErr)
	}
	consoleLog.Infof("%d candidate files", len(result.Files))

	worker := sweep.NewWorker(cfg, backend)
	sched := sweep.NewScheduler(worker, cfg.EffectiveWorkers())
	sched.KeepAffected = cfg.Summary

	// Optional collaborators consume the outcome stream: an interactive
	// progress bar and a structured CSV writer.
	var csvWriter *logger.CSVWriter
	if cfg.CSVPath != "" {
		csvWriter, err = logger.NewCSVWriter(cfg.CSVPath)
		if err != nil {
			return sweep.Summary{}, err
		}
		defer func() {
			if closeErr := csvWriter.Close(); closeErr != nil {
				consoleLog.Warnf("%v", closeErr)
			}
		}()
	}

	showProgress := !cfg.Quiet && isatty.IsTerminal(os.Stderr.Fd())
	progress := logger.NewProgressBar(len(result.Files), 30, showProgress && !color.NoColor)
	progress.SetPrefix("Sweeping ")

	sched.OnOutcome = func(o sweep.Outcome) {
		if o.Affected() {
			consoleLog.Debugf("affected: %s", o.Path)
		}
		if csvWriter != nil {
			if writeErr := csvWriter.WriteOutcome(o); writeErr != nil {
				consoleLog.Warnf("%v", writeErr)
			}
		}
		progress.Increment()
		if showProgress {
			progress.Draw(os.Stderr)
		}
	}

	summary := sched.Run(ctx, result.Files)
	if showProgress {
		fmt.Fprintln(os.Stderr)
	}
	if summary.Interrupted {
		consoleLog.Warnf("interrupted, reporting partial results")
	}
	return summary, nil
}

// printReport writes the final totals and the optional itemized summary.
// Interrupted and completed runs share the exact same report shape.
func printReport(cmd *cobra.Command, cfg *config.Config, summary sweep.Summary) {
	if cfg.Quiet {
		return
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "\nSweep Summary:\n")
	fmt.Fprintf(out, "  Files scanned:       %d\n", summary.Scanned)
	fmt.Fprintf(out, "  Junk files deleted:  %d\n", summary.JunkDeleted)
	fmt.Fprintf(out, "  Markers deleted:     %d\n", summary.FilesDeleted)
	fmt.Fprintf(out, "  Attributes removed:  %d\n", summary.AttrsRemoved)
	fmt.Fprintf(out, "  Duration:            %s\n", summary.Duration.Round(time.Millisecond))
	if cfg.DryRun {
		fmt.Fprintf(out, "  (dry run: nothing was modified)\n")
	}
	if summary.Interrupted {
		fmt.Fprintf(out, "  (interrupted: totals cover completed files only)\n")
	}

	if cfg.Summary && len(summary.Affected) > 0 {
		fmt.Fprintf(out, "\nAffected files:\n")
		for _, o := range summary.Affected {
			fmt.Fprintf(out, "  %s", o.Path)
			var tags []string
			if o.Junk {
				tags = append(tags, "junk")
			}
			if o.File {
				tags = append(tags, "marker")
			}
			for _, attr := range o.Attrs {
				tags = append(tags, "attr:"+attr)
			}
			fmt.Fprintf(out, " [%s]\n", strings.Join(tags, ", "))
		}
	}
}
