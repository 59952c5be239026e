// Package cli contains the reportview commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mediareport/internal/backend"
	"mediareport/internal/config"
	"mediareport/internal/logger"
	"mediareport/internal/report"
)

// Version is the current version of reportview.
var Version = "0.1.0"

// defaultConfigPath is tried when --config is not given.
const defaultConfigPath = "configs/reportview.yaml"

// Input errors.
var (
	ErrNoInput        = errors.New("either --file or --id is required")
	ErrConflictingArg = errors.New("--file and --id are mutually exclusive")
)

// options holds the persistent flags shared by every command.
type options struct {
	configPath string
	logLevel   string
	output     string

	file    string
	modules string
	id      string

	baseURL  string
	apiKey   string
	email    string
	password string
}

// NewRootCommand builds the reportview command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "reportview",
		Short: "Inspect and export media monitoring reports",
		Long: `reportview computes the headline values and page layout of a media report.

A report is read from a JSON file (--file, with an optional --modules file) or
fetched from the report backend by id (--id).

Examples:
  reportview summary --file report.json
  reportview contents --file report.json --modules modules.json
  reportview page 5 --id 65f0c1 --base-url https://api.example.com
  reportview export --file report.json --out report.md --sign`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to YAML configuration file (default: "+defaultConfigPath+" if present)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	flags.StringVarP(&opts.output, "output", "o", "", "Output format (markdown|json|yaml)")
	flags.StringVarP(&opts.file, "file", "f", "", "Path to report JSON file")
	flags.StringVar(&opts.modules, "modules", "", "Path to modules JSON file (default: modules embedded in the report)")
	flags.StringVar(&opts.id, "id", "", "Report id to fetch from the backend")
	flags.StringVar(&opts.baseURL, "base-url", "", "Backend base URL")
	flags.StringVar(&opts.apiKey, "api-key", os.Getenv("REPORT_API_KEY"), "Backend API key")
	flags.StringVar(&opts.email, "email", os.Getenv("REPORT_EMAIL"), "Backend login email")
	flags.StringVar(&opts.password, "password", os.Getenv("REPORT_PASSWORD"), "Backend login password")

	root.AddCommand(
		newSummaryCommand(opts),
		newContentsCommand(opts),
		newPageCommand(opts),
		newExportCommand(opts),
		newFormatCommand(opts),
		newVerifyCommand(),
		newValidateCommand(opts),
		newBatchCommand(opts),
	)

	return root
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// env is the resolved runtime state of one command invocation.
type env struct {
	cfg *config.Config
	log *logger.Logger
}

// setup loads the configuration, applies flag overrides and builds the logger.
func (o *options) setup(stderr io.Writer) (*env, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}

	if o.output != "" {
		cfg.Output.Format = o.output
	}

	if o.baseURL != "" {
		cfg.Backend.BaseURL = o.baseURL
	}

	if o.apiKey != "" {
		cfg.Backend.APIKey = o.apiKey
	}

	if o.email != "" {
		cfg.Backend.Email = o.email
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.New(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: stderr,
	})

	return &env{cfg: cfg, log: log}, nil
}

func (o *options) loadConfig() (*config.Config, error) {
	path := o.configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err != nil {
			return config.DefaultConfig(), nil
		}

		path = defaultConfigPath
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	return cfg, nil
}

// loadSource reads the report from disk or fetches it from the backend.
func (o *options) loadSource(ctx context.Context, e *env) (*report.Source, error) {
	switch {
	case o.file != "" && o.id != "":
		return nil, ErrConflictingArg
	case o.file != "":
		e.log.Debug("loading report from file", "file", o.file, "modules", o.modules)
		return report.LoadFiles(o.file, o.modules)
	case o.id != "":
		return o.fetchSource(ctx, e)
	default:
		return nil, ErrNoInput
	}
}

func (o *options) fetchSource(ctx context.Context, e *env) (*report.Source, error) {
	if e.cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("%w: --base-url or backend.base_url is required with --id", config.ErrInvalidBaseURL)
	}

	loader := backend.NewLoader(e.cfg.Backend, e.log)

	if e.cfg.Backend.Email != "" && o.password != "" {
		if err := loader.Authenticate(ctx, e.cfg.Backend.Email, o.password); err != nil {
			e.log.Warn("authentication failed, continuing with API key", "error", err)
		}
	}

	return loader.Load(ctx, o.id)
}

// loadView resolves everything a view command needs.
func (o *options) loadView(cmd *cobra.Command) (*env, *report.View, error) {
	e, err := o.setup(cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}

	src, err := o.loadSource(cmd.Context(), e)
	if err != nil {
		return nil, nil, err
	}

	labels, err := e.cfg.Labels()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load labels: %w", err)
	}

	v := report.Build(src.Report, src.Modules, report.Options{
		MediaTypes: e.cfg.Report.MediaTypes,
		Labels:     labels,
		Logger:     e.log,
	})

	return e, v, nil
}
