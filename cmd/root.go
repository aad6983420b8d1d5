package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/itsmostafa/reduceindex/internal/config"
	"github.com/itsmostafa/reduceindex/internal/logging"
	"github.com/itsmostafa/reduceindex/internal/output"
	"github.com/itsmostafa/reduceindex/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// ErrWrongWorkdir is returned when the working directory lacks the
	// configured marker path.
	ErrWrongWorkdir = errors.New("must be executed from the top source directory")
	// ErrWouldChange is returned by --check when the file is not reduced.
	ErrWouldChange = errors.New("index commands are not reduced")
)

// options holds flag values for one command instance.
type options struct {
	configPath    string
	workdirMarker string
	dryRun        bool
	check         bool
	watch         bool
	verbose       bool

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "reduceindex <file>",
		Short: "Consolidate the index commands of an OMhelp source file",
		Long: `reduceindex rewrites an OMhelp documentation source in place.

For every $begin ... $end section the explicit index terms are filtered:
stopwords, words already in the section's $section, $head or $subhead
commands (and their naive singular or plural), repeated words, and words
covered by a more specific underscore compound such as ad_vector are
dropped. The remaining terms replace all of the section's index commands
with one $mindex command placed after $section. All other text is kept
byte for byte.`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.logger = logging.New(cmd.ErrOrStderr(), opts.verbose)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReduce(cmd, opts, args[0])
		},
	}

	cmd.Version = version.Version
	cmd.SetVersionTemplate(fmt.Sprintf("reduceindex %s\n", version.String()))

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", config.DefaultPath, "Path to a YAML config file")
	flags.StringVar(&opts.workdirMarker, "workdir-marker", "", "Path that must exist in the working directory (empty disables the check)")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Write the reduced document to stdout instead of the file")
	flags.BoolVar(&opts.check, "check", false, "Fail if the file is not already reduced; never writes")
	flags.BoolVar(&opts.watch, "watch", false, "Reduce again whenever the file changes")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging and print statistics")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "check", "watch")

	return cmd
}

// Execute runs the root command
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		output.FormatError(os.Stderr, err)
		os.Exit(1)
	}
}
