package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/ixtext/internal/configloader"
	"github.com/yaklabco/ixtext/internal/logging"
	"github.com/yaklabco/ixtext/pkg/config"
)

// session is the resolved state shared by commands that read interaction text.
type session struct {
	ctx     context.Context
	cfg     *config.Config
	workDir string
	logger  *log.Logger
}

// newSession loads the layered configuration with cliCfg on top and returns
// it along with the command's logger and working directory.
func newSession(cmd *cobra.Command, cliCfg *config.Config) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	if cmd.Flags().Changed("color") {
		color, err := cmd.Flags().GetString("color")
		if err != nil {
			return nil, fmt.Errorf("get color flag: %w", err)
		}
		cliCfg.Color = config.ColorMode(color)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldContentDir, cfg.ContentDir,
		logging.FieldUnterminated, cfg.Unterminated,
		logging.FieldKeepTrailing, cfg.ParseOptions().KeepTrailingSegment,
		logging.FieldJobs, cfg.Jobs,
	)

	return &session{
		ctx:     ctx,
		cfg:     cfg,
		workDir: workDir,
		logger:  logger,
	}, nil
}

// contentDir returns the configured content directory as an absolute path.
func (s *session) contentDir() string {
	if filepath.IsAbs(s.cfg.ContentDir) {
		return s.cfg.ContentDir
	}
	return filepath.Join(s.workDir, s.cfg.ContentDir)
}

// color returns the configured color mode, defaulting to auto.
func (s *session) color() string {
	if s.cfg.Color == "" {
		return string(config.ColorAuto)
	}
	return string(s.cfg.Color)
}

// addParseFlags registers the flags shared by commands that parse text.
// Only flags the user changes are copied into cfg, by applyParseFlags.
func addParseFlags(cmd *cobra.Command, flags *parseFlags) {
	cmd.Flags().StringVar(&flags.unterminated, "unterminated", "",
		"label of text still styled at the end of a line: styled, regular")
	cmd.Flags().BoolVar(&flags.keepTrailing, "keep-trailing", false,
		"parse text after the final newline instead of dropping it")
	cmd.Flags().IntVar(&flags.maxBlockBytes, "max-line-bytes", 0,
		"truncate longer lines (0 = unlimited)")
}

// parseFlags holds the flags shared by commands that parse text.
type parseFlags struct {
	format        string
	unterminated  string
	keepTrailing  bool
	maxBlockBytes int
}

// applyParseFlags copies the changed parse flags into cfg.
func applyParseFlags(cmd *cobra.Command, flags *parseFlags, cfg *config.Config) {
	cfg.Format = config.OutputFormat(flags.format)
	cfg.Unterminated = flags.unterminated
	if cmd.Flags().Changed("keep-trailing") {
		keep := flags.keepTrailing
		cfg.KeepTrailingSegment = &keep
	}
	if cmd.Flags().Changed("max-line-bytes") {
		limit := flags.maxBlockBytes
		cfg.MaxBlockBytes = &limit
	}
}
