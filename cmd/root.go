package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/sherine-k/jobrecency/pkg/config"
	"github.com/sherine-k/jobrecency/pkg/jobs"
	"github.com/sherine-k/jobrecency/pkg/report"
	"github.com/sherine-k/jobrecency/pkg/simulation"
)

const envPrefix = "JOBRECENCY"

// Execute runs the root command
func Execute() error {
	return RootCmd().Execute()
}

// RootCmd builds the command tree. Flags can also be set through
// JOBRECENCY_* environment variables.
func RootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "jobrecency",
		Short: "Causal job history features",
		Long: `A CLI tool that replays a cluster job log and derives, for every job,
the running times of the submitting user's two most recently completed jobs.

Only completions that happened strictly before a job was submitted are taken
into account, so the features can be computed for jobs that have not run yet.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, v)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "config.yaml", "Path to configuration file")
	flags.String("mode", "", "Override the configured mode (training or inference)")
	flags.String("log-level", "", "Override the configured log level")
	cmd.Flags().StringP("jobs", "j", "", "Override the configured job log pattern")
	cmd.Flags().StringP("output", "o", "", "Write feature rows as YAML to this file")
	cmd.Flags().BoolP("rows", "r", false, "Show feature rows")
	cmd.Flags().IntP("rows-limit", "l", 50, "Limit number of feature rows to display")
	cmd.Flags().BoolP("summary", "s", true, "Show feature summary")
	_ = v.BindPFlags(flags)
	_ = v.BindPFlags(cmd.Flags())

	cmd.AddCommand(generateCmd(v))
	return cmd
}

// loadConfig reads the configuration file and applies flag and environment overrides.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	configFile := v.GetString("config")
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to load configuration")
	}
	if mode := v.GetString("mode"); mode != "" {
		cfg.Mode = config.Mode(mode)
	}
	if level := v.GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if pattern := v.GetString("jobs"); pattern != "" {
		cfg.JobLog = pattern
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if err := configureLogging(cfg.LogLevel); err != nil {
		return nil, err
	}
	logrus.Infof("Loaded configuration from %s", configFile)
	return cfg, nil
}

func configureLogging(level string) error {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level == "" {
		logrus.SetLevel(logrus.InfoLevel)
		return nil
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.WithStack(err)
	}
	logrus.SetLevel(parsed)
	return nil
}

func runReplay(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	log := logrus.WithField("jobLog", cfg.JobLog)

	raw, err := config.LoadJobLog(cfg.JobLog)
	if err != nil {
		return err
	}
	records, malformed := jobs.Ingest(raw)
	if malformed != nil {
		log.Warnf("Skipped %d malformed records", len(malformed.Errors))
	}
	if len(records) == 0 {
		if malformed != nil {
			return errors.WithMessage(malformed.ErrorOrNil(), "no well-formed records in job log")
		}
		return errors.New("job log is empty")
	}
	log.Infof("Loaded %d records", len(records))

	sim := simulation.NewSimulator(cfg, log)
	rows, err := sim.Run(records)
	if errors.Is(err, simulation.ErrEmptyInput) {
		log.Warn("No admissible jobs left after filtering; nothing to emit")
		return nil
	}
	if err != nil {
		return errors.WithMessage(err, "feature extraction failed")
	}

	if output := v.GetString("output"); output != "" {
		data, err := yaml.Marshal(rows)
		if err != nil {
			return errors.WithStack(err)
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return errors.Wrap(err, "failed to write feature rows")
		}
		log.Infof("Wrote %d rows to %s", len(rows), output)
	}

	out := cmd.OutOrStdout()
	g := report.NewGenerator()
	if v.GetBool("summary") {
		fmt.Fprintln(out, g.GenerateSummary(rows, sim.GetReplayed()))
	}
	if malformed != nil {
		fmt.Fprintln(out, g.GenerateRejected(malformed))
	}
	if v.GetBool("rows") {
		fmt.Fprintln(out, g.GenerateFeatureTable(rows, v.GetInt("rows-limit")))
	}

	return nil
}
