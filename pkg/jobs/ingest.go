package jobs

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Column names of the job log.
const (
	ColumnUser       = "id_user"
	ColumnQos        = "id_qos"
	ColumnCpusReq    = "cpus_req"
	ColumnNodesAlloc = "nodes_alloc"
	ColumnTimeLimit  = "timelimit"
	ColumnSubmit     = "time_submit"
	ColumnStart      = "time_start"
	ColumnEnd        = "time_end"
	ColumnPriority   = "priority"
	ColumnState      = "state"
)

// RawRecord is an unparsed job log row keyed by column name.
type RawRecord map[string]string

// MalformedRecordError is returned when a row misses a required column or a
// column does not hold an integral number.
type MalformedRecordError struct {
	Row    int
	Column string
	Value  string
	// Missing is set when the column is absent rather than unparseable.
	Missing bool
}

func (e *MalformedRecordError) Error() string {
	if e.Missing {
		return fmt.Sprintf("row %d: missing column %q", e.Row, e.Column)
	}
	return fmt.Sprintf("row %d: column %q is not an integral number: %q", e.Row, e.Column, e.Value)
}

// ParseRecord converts a raw row into a JobRecord. row is only used for error reporting.
func ParseRecord(row int, raw RawRecord) (JobRecord, error) {
	var (
		r     JobRecord
		state int64
	)
	fields := []struct {
		column string
		dst    *int64
	}{
		{ColumnUser, &r.User},
		{ColumnQos, &r.Qos},
		{ColumnCpusReq, &r.CpusReq},
		{ColumnNodesAlloc, &r.NodesAlloc},
		{ColumnTimeLimit, &r.TimeLimit},
		{ColumnSubmit, &r.Submit},
		{ColumnStart, &r.Start},
		{ColumnEnd, &r.End},
		{ColumnPriority, &r.Priority},
		{ColumnState, &state},
	}
	for _, f := range fields {
		value, ok := raw[f.column]
		if !ok {
			return JobRecord{}, &MalformedRecordError{Row: row, Column: f.column, Missing: true}
		}
		v, ok := parseInteger(value)
		if !ok {
			return JobRecord{}, &MalformedRecordError{Row: row, Column: f.column, Value: value}
		}
		*f.dst = v
	}
	r.State = State(state)
	return r, nil
}

// parseInteger accepts plain integers and integral values written as
// floats ("3.0", "1.7042e+09"), as exported by dataframe tools.
func parseInteger(value string) (int64, bool) {
	value = strings.TrimSpace(value)
	if v, err := strconv.ParseInt(value, 10, 64); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// Ingest parses every raw row, skipping malformed ones. The returned
// *multierror.Error collects one MalformedRecordError per skipped row and is
// nil when every row parsed.
func Ingest(rows []RawRecord) ([]JobRecord, *multierror.Error) {
	var malformed *multierror.Error
	records := make([]JobRecord, 0, len(rows))
	for i, raw := range rows {
		r, err := ParseRecord(i, raw)
		if err != nil {
			malformed = multierror.Append(malformed, err)
			continue
		}
		records = append(records, r)
	}
	return records, malformed
}
