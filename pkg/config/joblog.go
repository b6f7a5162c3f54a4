package config

import (
	"os"

	"github.com/mattn/go-zglob"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"github.com/sherine-k/jobrecency/pkg/jobs"
)

// LoadJobLog reads every YAML job log matching pattern, in file name order,
// and returns their rows concatenated. Rows are left unparsed.
func LoadJobLog(pattern string) ([]jobs.RawRecord, error) {
	if pattern == "" {
		return nil, errors.New("no job log given")
	}
	filePaths, err := zglob.Glob(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to expand job log pattern %q", pattern)
	}
	if len(filePaths) == 0 {
		return nil, errors.Errorf("no job log matches %q", pattern)
	}
	slices.Sort(filePaths)

	var rows []jobs.RawRecord
	for _, path := range filePaths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read job log")
		}
		fileRows, err := ParseJobLog(data)
		if err != nil {
			return nil, errors.WithMessage(err, path)
		}
		rows = append(rows, fileRows...)
	}
	return rows, nil
}

// ParseJobLog parses a YAML sequence of job log rows.
func ParseJobLog(data []byte) ([]jobs.RawRecord, error) {
	var rows []jobs.RawRecord
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, errors.Wrap(err, "failed to parse job log")
	}
	return rows, nil
}

// MarshalJobLog renders records in the format read by ParseJobLog.
func MarshalJobLog(records []jobs.JobRecord) ([]byte, error) {
	data, err := yaml.Marshal(records)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return data, nil
}
