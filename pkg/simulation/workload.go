package simulation

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/sherine-k/jobrecency/pkg/config"
	"github.com/sherine-k/jobrecency/pkg/jobs"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// GenerateWorkload expands the workload templates into a synthetic job log
// sorted by submission time. Generation is deterministic for a given seed.
func GenerateWorkload(w *config.Workload) ([]jobs.JobRecord, error) {
	seed := w.Seed
	if seed == 0 {
		seed = 1
	}
	rng := rand.New(rand.NewSource(seed))
	end := w.Start.Add(w.Duration)

	var records []jobs.JobRecord
	for i := range w.Users {
		template := &w.Users[i]
		instances, err := generateCronInstances(template, w.Start, end, rng)
		if err != nil {
			return nil, err
		}
		records = append(records, instances...)
	}
	return SortBySubmit(records), nil
}

// generateCronInstances generates one job per cron firing in [start, end).
func generateCronInstances(template *config.UserTemplate, start, end time.Time, rng *rand.Rand) ([]jobs.JobRecord, error) {
	schedule, err := cronParser.Parse(template.CronSchedule)
	if err != nil {
		return nil, errors.Wrapf(err, "user %d: invalid cron schedule %q", template.User, template.CronSchedule)
	}

	var instances []jobs.JobRecord
	// Next returns times strictly after its argument, so step back one second to include start itself.
	submit := schedule.Next(start.Add(-time.Second))
	for n := 1; !submit.IsZero() && submit.Before(end); n++ {
		runTime := template.RunTime
		if template.Jitter > 0 {
			runTime += time.Duration(rng.Int63n(int64(template.Jitter)))
		}
		startTime := submit.Add(template.QueueDelay)
		state := jobs.StateCompleted
		if template.FailEvery > 0 && n%template.FailEvery == 0 {
			state = jobs.StateFailed
		}
		instances = append(instances, jobs.JobRecord{
			User:       template.User,
			Qos:        template.Qos,
			CpusReq:    template.Cpus,
			NodesAlloc: template.Nodes,
			TimeLimit:  template.TimeLimit,
			Submit:     submit.Unix(),
			Start:      startTime.Unix(),
			End:        startTime.Add(runTime).Unix(),
			Priority:   template.Priority,
			State:      state,
		})
		submit = schedule.Next(submit)
	}
	return instances, nil
}
