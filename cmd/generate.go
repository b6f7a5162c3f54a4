package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sherine-k/jobrecency/pkg/config"
	"github.com/sherine-k/jobrecency/pkg/simulation"
)

func generateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic job log from the configured workload",
		Long: `Expands the cron schedules of the workload section of the configuration
into a job log that can be fed back to the root command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cmd.Flags().GetString("output")
			if err != nil {
				return err
			}
			return runGenerate(cmd, v, output)
		},
	}
	cmd.Flags().StringP("output", "o", "", "Write the job log to this file instead of stdout")
	return cmd
}

func runGenerate(cmd *cobra.Command, v *viper.Viper, output string) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	if cfg.Workload == nil {
		return errors.New("configuration has no workload section")
	}

	records, err := simulation.GenerateWorkload(cfg.Workload)
	if err != nil {
		return err
	}
	data, err := config.MarshalJobLog(records)
	if err != nil {
		return err
	}
	logrus.Infof("Generated %d jobs for %d users", len(records), len(cfg.Workload.Users))

	if output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return errors.WithStack(err)
	}
	return errors.Wrap(os.WriteFile(output, data, 0o644), "failed to write job log")
}
