package simulation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sherine-k/jobrecency/pkg/config"
	"github.com/sherine-k/jobrecency/pkg/jobs"
)

func testWorkload() *config.Workload {
	return &config.Workload{
		Start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Duration: 24 * time.Hour,
		Seed:     42,
		Users: []config.UserTemplate{
			{
				User:         1,
				Qos:          2,
				Cpus:         4,
				Nodes:        1,
				Priority:     10,
				TimeLimit:    60,
				CronSchedule: "0 */6 * * *",
				RunTime:      30 * time.Minute,
				QueueDelay:   time.Minute,
				FailEvery:    2,
			},
			{
				User:         2,
				TimeLimit:    120,
				CronSchedule: "30 8 * * *",
				RunTime:      time.Hour,
				Jitter:       10 * time.Minute,
			},
		},
	}
}

func TestGenerateWorkload(t *testing.T) {
	records, err := GenerateWorkload(testWorkload())
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.True(t, IsSortedBySubmit(records))

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
	first := records[0]
	assert.Equal(t, jobs.JobRecord{
		User:       1,
		Qos:        2,
		CpusReq:    4,
		NodesAlloc: 1,
		TimeLimit:  60,
		Submit:     start,
		Start:      start + 60,
		End:        start + 60 + 1800,
		Priority:   10,
		State:      jobs.StateCompleted,
	}, first)

	var user1States []jobs.State
	for _, r := range records {
		if r.User == 1 {
			user1States = append(user1States, r.State)
		} else {
			assert.Equal(t, start+8*3600+30*60, r.Submit)
			assert.GreaterOrEqual(t, r.RunningTime(), int64(3600))
			assert.Less(t, r.RunningTime(), int64(3600+600))
		}
	}
	assert.Equal(t, []jobs.State{jobs.StateCompleted, jobs.StateFailed, jobs.StateCompleted, jobs.StateFailed}, user1States)

	for _, r := range records {
		assert.True(t, jobs.IsAdmissible(r))
	}
}

func TestGenerateWorkload_IsDeterministic(t *testing.T) {
	a, err := GenerateWorkload(testWorkload())
	require.NoError(t, err)
	b, err := GenerateWorkload(testWorkload())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateWorkload_InvalidSchedule(t *testing.T) {
	w := testWorkload()
	w.Users[1].CronSchedule = "not a schedule"
	_, err := GenerateWorkload(w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user 2")
}
