// Package cli wires the mkv2mp4 command tree: the root command converts,
// and the plan, inspect and check subcommands expose the stages on their
// own.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/backmassage/mkv2mp4/internal/check"
	"github.com/backmassage/mkv2mp4/internal/config"
	"github.com/backmassage/mkv2mp4/internal/display"
	"github.com/backmassage/mkv2mp4/internal/logging"
	"github.com/backmassage/mkv2mp4/internal/pipeline"
)

var (
	version = "dev"
	commit  = "unknown"

	sectionTitleColor = color.New(color.FgBlue, color.Bold)
)

// missingInputMessage follows the help text when no input was given.
const missingInputMessage = "Missing input argument."

// exitError carries a process exit code without an extra message; the
// command has already logged what went wrong.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// SetVersion records the build version and commit shown by --version and
// the run header.
func SetVersion(v, c string) {
	if v != "" {
		version = v
	}
	if c != "" {
		commit = c
	}
}

// Execute runs the command tree against os.Args and returns the process
// exit code.
func Execute() int {
	return execute(os.Args[1:], os.Stdout, os.Stderr)
}

func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintf(stderr, "mkv2mp4: %v\n", err)
	return 1
}

func newRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()
	var overrides *config.Overrides

	root := &cobra.Command{
		Use:   "mkv2mp4 (-f FILE | -d DIR | -D DIR) [flags]",
		Short: "Convert MKV files to MP4 without re-encoding",
		Long: `mkv2mp4 remuxes Matroska files into MP4 containers.

Video and audio are stream-copied. Text (subrip) subtitles are converted to
mov_text; subtitle formats MP4 cannot carry are left out. TrueHD audio gets
relaxed compliance (-strict -2) so the muxer accepts it.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides.Apply(&cfg)
			cfg.Normalize()
			if err := cfg.Validate(true); err != nil {
				if errors.Is(err, config.ErrMissingInput) {
					cmd.Help()
					fmt.Fprintln(cmd.ErrOrStderr(), missingInputMessage)
					return &exitError{code: 1}
				}
				return err
			}
			return runConvert(&cfg)
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("mkv2mp4 {{.Version}} (%s)\n", commit))
	root.Flags().BoolP("version", "V", false, "Print version and exit")
	overrides = config.BindFlags(root.Flags(), &cfg)
	root.Flags().SortFlags = false
	root.SetHelpFunc(helpFunc)

	root.AddCommand(newPlanCmd(), newInspectCmd(), newCheckCmd())
	return root
}

// runConvert is the conversion flow: logger, banner, header, dependency
// check, signal handling, then the batch.
func runConvert(cfg *config.Config) error {
	log, err := logging.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	display.PrintBanner()

	input, recursive := cfg.Input()
	log.Info("=== mkv2mp4 %s (%s) ===", version, commit)
	if recursive {
		log.Info("In:  %s (recursive)", input)
	} else {
		log.Info("In:  %s", input)
	}
	if cfg.OutputDir != "" {
		log.Info("Out: %s", cfg.OutputDir)
	}
	if cfg.DryRun {
		log.Warn("DRY RUN: no files will be written")
	}
	log.Info("")

	// Fail fast if ffmpeg/ffprobe are unavailable.
	if err := check.CheckDeps(); err != nil {
		log.Error("%v", err)
		return &exitError{code: 1}
	}

	ctx, stop := interruptContext(log)
	defer stop()

	stats, err := pipeline.Run(ctx, cfg, log)
	if err != nil {
		log.Error("%v", err)
		return &exitError{code: 1}
	}
	if stats.Failed > 0 {
		return &exitError{code: 1}
	}
	return nil
}

// interruptContext cancels the returned context on SIGINT/SIGTERM so the
// batch stops between files.
func interruptContext(log *logging.Logger) (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Received interrupt, stopping after running conversions…")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

// newSubLogger builds a logger for a subcommand after applying its
// display flags.
func newSubLogger(cfg *config.Config, o *config.Overrides) (*logging.Logger, error) {
	o.Apply(cfg)
	if err := cfg.Validate(false); err != nil {
		return nil, err
	}
	return logging.NewLogger(cfg)
}

// helpFunc prints help with colored section titles.
func helpFunc(cmd *cobra.Command, args []string) {
	var help strings.Builder

	if cmd.Long != "" {
		help.WriteString(cmd.Long)
		help.WriteString("\n\n")
	} else if cmd.Short != "" {
		help.WriteString(cmd.Short)
		help.WriteString("\n\n")
	}

	help.WriteString(sectionTitleColor.Sprint("Usage:"))
	help.WriteString("\n")
	fmt.Fprintf(&help, "  %s\n\n", cmd.UseLine())

	hasSub := false
	for _, c := range cmd.Commands() {
		if !c.IsAvailableCommand() {
			continue
		}
		if !hasSub {
			help.WriteString(sectionTitleColor.Sprint("Commands:"))
			help.WriteString("\n")
			hasSub = true
		}
		fmt.Fprintf(&help, "  %-9s %s\n", c.Name(), c.Short)
	}
	if hasSub {
		help.WriteString("\n")
	}

	if cmd.HasAvailableLocalFlags() || cmd.HasAvailableInheritedFlags() {
		help.WriteString(sectionTitleColor.Sprint("Flags:"))
		help.WriteString("\n")
		help.WriteString(cmd.LocalFlags().FlagUsages())
		help.WriteString(cmd.InheritedFlags().FlagUsages())
		help.WriteString("\n")
	}

	if hasSub {
		fmt.Fprintf(&help, "Use \"%s [command] --help\" for more information about a command.\n", cmd.CommandPath())
	}
	fmt.Fprint(cmd.OutOrStdout(), help.String())
}
