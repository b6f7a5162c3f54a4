package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads and parses the configuration file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}
	return ParseConfig(data)
}

// ParseConfig parses and validates a YAML configuration
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks a configuration that may have been altered after parsing
func Validate(config *Config) error {
	if err := validateConfig(config); err != nil {
		return errors.WithMessage(err, "invalid configuration")
	}
	return nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if config.Mode != ModeTraining && config.Mode != ModeInference {
		return errors.Errorf("mode must be either '%s' or '%s'", ModeTraining, ModeInference)
	}

	if config.Mode == ModeTraining && !config.UpperBound.IsZero() {
		return errors.New("upperBound only applies to inference mode")
	}

	if config.Mode == ModeInference && !config.TrainingCutoff.IsZero() {
		return errors.New("trainingCutoff only applies to training mode")
	}

	if !config.WindowStart.IsZero() && !config.WindowEnd.IsZero() && !config.WindowEnd.After(config.WindowStart) {
		return errors.New("windowEnd must be after windowStart")
	}

	if config.Workload != nil {
		if err := validateWorkload(config.Workload); err != nil {
			return errors.WithMessage(err, "workload")
		}
	}

	return nil
}

func validateWorkload(w *Workload) error {
	if w.Start.IsZero() {
		return errors.New("start is required")
	}

	if w.Duration <= 0 {
		return errors.New("duration must be greater than 0")
	}

	if len(w.Users) == 0 {
		return errors.New("at least one user must be defined")
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	for i, user := range w.Users {
		if user.TimeLimit <= 0 {
			return errors.Errorf("user %d (#%d): timeLimit must be greater than 0", user.User, i)
		}

		if user.RunTime <= 0 {
			return errors.Errorf("user %d (#%d): runTime must be greater than 0", user.User, i)
		}

		if user.CronSchedule == "" {
			return errors.Errorf("user %d (#%d): cronSchedule is required", user.User, i)
		}

		if _, err := parser.Parse(user.CronSchedule); err != nil {
			return errors.Wrapf(err, "user %d (#%d): invalid cronSchedule", user.User, i)
		}

		if user.Jitter < 0 || user.QueueDelay < 0 || user.FailEvery < 0 {
			return errors.Errorf("user %d (#%d): jitter, queueDelay and failEvery must not be negative", user.User, i)
		}
	}

	return nil
}
