package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phrazzld/scry-notes/internal/app"
	"github.com/phrazzld/scry-notes/internal/config"
	"github.com/phrazzld/scry-notes/internal/platform/logger"
)

// Output formats accepted by --output.
const (
	outputJSON = "json"
	outputText = "text"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	provider        string
	apiKey          string
	envFile         string
	live            bool
	simulateLatency bool
	failureRate     float64
	seed            int64
	output          string
	logLevel        string

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	opts := &options{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "notetaker",
		Short: "Summarize notes and turn them into flashcards",
		Long: `notetaker analyzes note text with one of several providers.

Text is read from the file argument, or from stdin when the argument is
omitted or "-". Provider failures never abort a command: the result reports
the failure and carries locally generated fallback content.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.validate()
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.provider, "provider", "p", "", "provider to use (default from configuration)")
	flags.StringVar(&opts.apiKey, "api-key", "", "credential for the selected provider, overriding the environment")
	flags.StringVar(&opts.envFile, "env-file", "", "dotenv file holding provider credentials (default from configuration)")
	flags.BoolVar(&opts.live, "live", false, "call the real backends instead of the simulated transport")
	flags.BoolVar(&opts.simulateLatency, "simulate-latency", false, "keep the configured simulated latency and failure rate")
	flags.Float64Var(&opts.failureRate, "failure-rate", -1, "override the simulated failure rate (0 to 1)")
	flags.Int64Var(&opts.seed, "seed", 0, "seed for simulated latency, failures and question wording")
	flags.StringVarP(&opts.output, "output", "o", outputJSON, "output format: json or text")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level for stderr: debug, info, warn or error")

	root.AddCommand(
		newProvidersCmd(opts),
		newSummarizeCmd(opts),
		newFlashcardsCmd(opts),
		newAnalyzeCmd(opts),
	)
	return root
}

func (o *options) validate() error {
	switch o.output {
	case outputJSON, outputText:
	default:
		return fmt.Errorf("unknown output format %q", o.output)
	}
	if o.failureRate > 1 {
		return fmt.Errorf("failure rate %v is above 1", o.failureRate)
	}
	if _, ok := logger.ParseLevel(o.logLevel); !ok {
		return fmt.Errorf("unknown log level %q", o.logLevel)
	}
	return nil
}

// config loads the application configuration and applies the flags.
func (o *options) config() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if o.envFile != "" {
		cfg.EnvFile = o.envFile
	}
	if o.live {
		cfg.Providers.Transport = app.TransportLive
	}

	sim := &cfg.Providers.Simulation
	if !o.simulateLatency {
		sim.MinLatencyMillis = 0
		sim.MaxLatencyMillis = 0
		sim.FailureRate = 0
	}
	if o.failureRate >= 0 {
		sim.FailureRate = o.failureRate
	}
	if o.seed != 0 {
		sim.Seed = o.seed
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// build assembles the application and applies --api-key to the selected
// provider's credential.
func (o *options) build(cmd *cobra.Command) (*app.App, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}

	log := logger.New(o.errOut, o.logLevel)
	slog.SetDefault(log)

	a, err := app.New(cmd.Context(), cfg, log, app.Options{})
	if err != nil {
		return nil, err
	}

	if key := strings.TrimSpace(o.apiKey); key != "" {
		p, err := a.Registry.Get(o.provider)
		if err != nil {
			return nil, err
		}
		if err := a.Credentials.Set(p.Variant().CredentialKey, key); err != nil {
			return nil, err
		}
	}
	return a, nil
}
