package config

import (
	"time"
)

// Config represents the entire configuration for feature extraction
type Config struct {
	Mode Mode `yaml:"mode"`
	// JobLog is a glob pattern matching one or more YAML job log files.
	JobLog string `yaml:"jobLog,omitempty"`

	// Inference only. Jobs submitted at or after UpperBound are dropped before replay.
	UpperBound time.Time `yaml:"upperBound,omitempty"`
	// Training only. Jobs ending at or after TrainingCutoff are dropped before replay.
	TrainingCutoff time.Time `yaml:"trainingCutoff,omitempty"`

	// Rows are emitted only for jobs submitted in [WindowStart, WindowEnd).
	// Either bound may be left unset.
	WindowStart time.Time `yaml:"windowStart,omitempty"`
	WindowEnd   time.Time `yaml:"windowEnd,omitempty"`

	LogLevel string    `yaml:"logLevel,omitempty"`
	Workload *Workload `yaml:"workload,omitempty"`
}

// Mode selects which jobs may populate the histories of later jobs
type Mode string

const (
	// ModeTraining admits every replayed job into the completion queue.
	// The job log is expected to hold completed jobs only.
	ModeTraining Mode = "training"
	// ModeInference admits only jobs that are known to have completed.
	ModeInference Mode = "inference"
)

// AdmitsAll reports whether every job is admitted regardless of its state.
func (m Mode) AdmitsAll() bool {
	return m == ModeTraining
}

// Workload describes a synthetic job log
type Workload struct {
	Start    time.Time      `yaml:"start"`
	Duration time.Duration  `yaml:"duration"`
	Seed     int64          `yaml:"seed,omitempty"`
	Users    []UserTemplate `yaml:"users"`
}

// UserTemplate describes the recurring jobs of a single user
type UserTemplate struct {
	User     int64 `yaml:"user"`
	Qos      int64 `yaml:"qos"`
	Cpus     int64 `yaml:"cpus"`
	Nodes    int64 `yaml:"nodes"`
	Priority int64 `yaml:"priority"`
	// TimeLimit is in minutes.
	TimeLimit    int64         `yaml:"timeLimit"`
	CronSchedule string        `yaml:"cronSchedule"`
	RunTime      time.Duration `yaml:"runTime"`
	QueueDelay   time.Duration `yaml:"queueDelay,omitempty"`
	// A random duration in [0, Jitter) is added to every run time.
	Jitter time.Duration `yaml:"jitter,omitempty"`
	// Every FailEvery-th job of the user is recorded as failed. Zero disables failures.
	FailEvery int `yaml:"failEvery,omitempty"`
}
