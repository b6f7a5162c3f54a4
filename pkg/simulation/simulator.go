package simulation

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sherine-k/jobrecency/pkg/config"
	"github.com/sherine-k/jobrecency/pkg/jobs"
)

// ErrEmptyInput is returned when no admissible job is left to replay.
// Callers should skip any downstream model call rather than treat it as corrupt input.
var ErrEmptyInput = errors.New("no admissible jobs to replay")

// Simulator runs the causal feature extraction over a job log.
type Simulator struct {
	config *config.Config
	log    *logrus.Entry
	rows   []FeatureRow
	// Number of admissible jobs that took part in the replay.
	replayed int
}

// NewSimulator creates a new simulator
func NewSimulator(cfg *config.Config, log *logrus.Entry) *Simulator {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Simulator{
		config: cfg,
		log:    log.WithField("mode", cfg.Mode),
	}
}

// Run filters and truncates the records according to the configured mode,
// replays them and returns the rows whose submission falls inside the
// configured window. Rows outside the window still shape the histories of
// the rows inside it.
func (s *Simulator) Run(records []jobs.JobRecord) ([]FeatureRow, error) {
	admissible := jobs.FilterAdmissible(records)
	s.log.Debugf("%d of %d jobs admissible", len(admissible), len(records))

	candidates := s.truncate(admissible)
	if len(candidates) == 0 {
		return nil, errors.WithStack(ErrEmptyInput)
	}
	s.replayed = len(candidates)

	rows := replay(SortBySubmit(candidates), s.config.Mode, s.log)
	s.rows = s.window(rows)
	s.log.Infof("Replayed %d jobs, emitting %d rows", s.replayed, len(s.rows))
	return s.rows, nil
}

// truncate drops jobs that must not take part in the replay at all.
func (s *Simulator) truncate(records []jobs.JobRecord) []jobs.JobRecord {
	kept := make([]jobs.JobRecord, 0, len(records))
	switch s.config.Mode {
	case config.ModeInference:
		bound := unixOrZero(s.config.UpperBound)
		for _, r := range records {
			if bound != 0 && r.Submit >= bound {
				continue
			}
			kept = append(kept, r)
		}
	case config.ModeTraining:
		cutoff := unixOrZero(s.config.TrainingCutoff)
		for _, r := range records {
			if !r.Completed() {
				continue
			}
			if cutoff != 0 && r.End >= cutoff {
				continue
			}
			kept = append(kept, r)
		}
	}
	return kept
}

// window keeps the rows submitted in [WindowStart, WindowEnd).
func (s *Simulator) window(rows []FeatureRow) []FeatureRow {
	start := unixOrZero(s.config.WindowStart)
	end := unixOrZero(s.config.WindowEnd)
	if start == 0 && end == 0 {
		return rows
	}
	kept := make([]FeatureRow, 0, len(rows))
	for _, row := range rows {
		if start != 0 && row.Submit < start {
			continue
		}
		if end != 0 && row.Submit >= end {
			continue
		}
		kept = append(kept, row)
	}
	return kept
}

// GetRows returns the rows emitted by the last run
func (s *Simulator) GetRows() []FeatureRow {
	return s.rows
}

// GetReplayed returns the number of jobs replayed by the last run
func (s *Simulator) GetReplayed() int {
	return s.replayed
}
