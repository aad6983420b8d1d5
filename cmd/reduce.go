package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/itsmostafa/reduceindex/internal/config"
	"github.com/itsmostafa/reduceindex/internal/fsutil"
	"github.com/itsmostafa/reduceindex/internal/output"
	"github.com/itsmostafa/reduceindex/internal/reduce"
	"github.com/itsmostafa/reduceindex/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runReduce(cmd *cobra.Command, opts *options, path string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	if err := checkWorkdir(cfg.WorkdirMarker); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file %s does not exist", path)
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}

	// Invocation is valid; later failures are about the file, not usage
	cmd.SilenceUsage = true

	r := reduce.New(cfg, opts.logger)
	opts.logger.Debug("reducing", zap.String("path", path), zap.Int("stopwords", len(cfg.AllStopwords())))

	if opts.watch {
		return watchFile(cmd, opts, cfg, r, path)
	}
	return reduceFile(cmd, opts, r, path)
}

// loadConfig reads the config file and applies flag overrides. An explicit
// --config must exist; the default path is optional.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	if cmd.Flags().Changed("config") {
		if _, err := os.Stat(opts.configPath); err != nil {
			return nil, fmt.Errorf("config file %s: %w", opts.configPath, err)
		}
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("workdir-marker") {
		cfg.WorkdirMarker = opts.workdirMarker
	}
	return cfg, nil
}

func checkWorkdir(marker string) error {
	if marker == "" {
		return nil
	}
	if _, err := os.Stat(marker); err != nil {
		return fmt.Errorf("%w (%s not found)", ErrWrongWorkdir, marker)
	}
	return nil
}

// reduceFile runs one reduction. The file is only replaced when its content
// changes, and only after the whole document was processed.
func reduceFile(cmd *cobra.Command, opts *options, r *reduce.Reducer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	res, err := r.Reduce(string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	switch {
	case opts.dryRun:
		_, err := fmt.Fprint(out, res.Text)
		return err
	case opts.check:
		if res.Changed {
			return fmt.Errorf("%s: %w", path, ErrWouldChange)
		}
	case res.Changed:
		if err := fsutil.WriteFileAtomic(path, []byte(res.Text)); err != nil {
			return err
		}
	}

	output.FormatDone(out, path, res.Changed)
	if opts.verbose {
		output.FormatStats(out, res.Stats)
	}
	return nil
}

func watchFile(cmd *cobra.Command, opts *options, cfg *config.Config, r *reduce.Reducer, path string) error {
	debounce, err := cfg.DebounceDuration()
	if err != nil {
		return err
	}

	w, err := watch.New(path, debounce, opts.logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := func() error { return reduceFile(cmd, opts, r, path) }
	if err := run(); err != nil {
		output.FormatError(cmd.ErrOrStderr(), err)
	}
	return w.Run(ctx, run)
}
