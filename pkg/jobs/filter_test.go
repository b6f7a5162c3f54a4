package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRecord() JobRecord {
	return JobRecord{
		User:      1,
		TimeLimit: 10,
		Submit:    100,
		Start:     110,
		End:       410,
		State:     StateCompleted,
	}
}

func TestIsAdmissible(t *testing.T) {
	tests := map[string]struct {
		mutate   func(r *JobRecord)
		expected bool
	}{
		"valid":                {mutate: func(r *JobRecord) {}, expected: true},
		"zero submit":          {mutate: func(r *JobRecord) { r.Submit = 0 }, expected: false},
		"zero start":           {mutate: func(r *JobRecord) { r.Start = 0 }, expected: false},
		"zero end":             {mutate: func(r *JobRecord) { r.End = 0 }, expected: false},
		"zero time limit":      {mutate: func(r *JobRecord) { r.TimeLimit = 0 }, expected: false},
		"exactly at limit":     {mutate: func(r *JobRecord) { r.End = r.Start + 600 }, expected: true},
		"inside grace period":  {mutate: func(r *JobRecord) { r.End = r.Start + 660 }, expected: true},
		"beyond grace period":  {mutate: func(r *JobRecord) { r.End = r.Start + 661 }, expected: false},
		"state is not checked": {mutate: func(r *JobRecord) { r.State = StateFailed }, expected: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			r := validRecord()
			tc.mutate(&r)
			assert.Equal(t, tc.expected, IsAdmissible(r))
		})
	}
}

func TestFilterAdmissible_PreservesOrder(t *testing.T) {
	a := validRecord()
	b := validRecord()
	b.Submit = 0
	c := validRecord()
	c.User = 2

	assert.Equal(t, []JobRecord{a, c}, FilterAdmissible([]JobRecord{a, b, c}))
	assert.Empty(t, FilterAdmissible(nil))
}

func TestJobRecord_Durations(t *testing.T) {
	r := validRecord()
	assert.Equal(t, int64(300), r.RunningTime())
	assert.Equal(t, int64(600), r.TimeLimitSeconds())
	assert.True(t, r.Completed())
	assert.Equal(t, "COMPLETED", r.State.String())
	assert.Equal(t, "UNKNOWN", State(42).String())
}
