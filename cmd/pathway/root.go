package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mrsinham/pathway/cmd/pathway/wizard"
	"github.com/mrsinham/pathway/internal/config"
	"github.com/mrsinham/pathway/internal/debug"
	"github.com/mrsinham/pathway/internal/session"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// deps are the side effects of the commands, swapped out in tests.
type deps struct {
	fs  afero.Fs
	out io.Writer
	run func(ctx context.Context, opts wizard.Options) error
}

func defaultDeps() deps {
	return deps{fs: afero.NewOsFs(), out: os.Stdout, run: wizard.Run}
}

type rootFlags struct {
	configPath string
	resume     bool
	debug      bool
}

func newRootCmd(d deps) *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "pathway [files...]",
		Short: "Patient pathway analyzer",
		Long: `Walks a patient case through four phases: Scan & Detect, Review & Annotate,
Diagnose & Plan, Finalize & Share.

Files and directories given as arguments are analyzed in the Scan & Detect
phase (PDF, JPEG and DICOM are recognised). Without arguments a demonstration
set of documents is used.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyzer(cmd.Context(), d, flags, args)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", config.DefaultFile, "configuration file (YAML)")
	cmd.Flags().BoolVar(&flags.resume, "resume", false, "resume the saved session")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "write debug logs to the configured log file")

	cmd.AddCommand(newSampleCmd(d, &flags))
	cmd.AddCommand(newConfigCmd(d, &flags))
	cmd.AddCommand(newVersionCmd(d))
	return cmd
}

func runAnalyzer(ctx context.Context, d deps, flags rootFlags, args []string) error {
	cfg, err := config.Load(d.fs, flags.configPath)
	if err != nil {
		return err
	}

	if flags.debug || cfg.Debug {
		if err := debug.Enable(cfg.LogFile); err != nil {
			return err
		}
		defer func() { _ = debug.Close() }()
	}

	opts := wizard.Options{Config: cfg, Fs: d.fs, Inputs: args}
	if flags.resume {
		snap, err := session.Load(d.fs, cfg.SessionFile)
		if err != nil {
			return fmt.Errorf("resume: %w", err)
		}
		st := snap.State()
		opts.Resume = &st
		debug.Logf("resuming session saved at %s", snap.SavedAt)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	return d.run(ctx, opts)
}

func newVersionCmd(d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(d.out, "pathway %s\n", version)
		},
	}
}
