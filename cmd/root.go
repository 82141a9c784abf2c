package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/AliArsal1512/clarifai-app/internal/config"
	"github.com/AliArsal1512/clarifai-app/internal/diagram"
	"github.com/AliArsal1512/clarifai-app/internal/logging"
	"github.com/AliArsal1512/clarifai-app/internal/measure"
)

var version = "0.3.0"

var (
	Brand  = color.New(color.FgHiCyan, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

var (
	configPath string
	logFile    string
	logLevel   string

	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "astview",
	Short: "astview: interactive AST diagrams in the terminal",
	Long: Brand.Sprint("astview") + " explores class/method trees produced by the analysis service\n" +
		Subtle.Sprint("Expand and collapse nodes, read comments, export PNG or text"),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.Path()
		}
		c, err := config.Load(path)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			c.Log.Level = logLevel
		}
		if cmd.Flags().Changed("log-file") {
			c.Log.File = logFile
		}
		l, closer, err := logging.Setup(c.Log.Level, c.Log.File)
		if err != nil {
			return err
		}
		cfg, logger, logCloser = c, l, closer
		logger.Debug("configuration loaded", slog.String("path", path))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

func init() {
	rootCmd.SetVersionTemplate("astview {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default "+config.Path()+")")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		viewCmd(),
		exportCmd(),
		classesCmd(),
		configCmd(),
	)
}

// Execute runs the root command and prints any error.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		Bad.Fprintf(rootCmd.ErrOrStderr(), "astview: %v\n", err)
	}
	return err
}

// newDiagram builds an engine from the loaded config. Non-empty mode and
// theme override the config values.
func newDiagram(mode, theme string) (*diagram.Diagram, *measure.Text, error) {
	if mode != "" {
		cfg.View.Mode = mode
	}
	if theme != "" {
		cfg.View.Theme = theme
	}
	opts, err := cfg.DiagramOptions()
	if err != nil {
		return nil, nil, err
	}
	text, err := measure.New(cfg.Layout.MeasureCache)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up label measurement: %w", err)
	}
	opts.Measurer = text
	opts.Logger = logger
	return diagram.New(opts), text, nil
}
