package simulation

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"github.com/sherine-k/jobrecency/pkg/config"
	"github.com/sherine-k/jobrecency/pkg/jobs"
)

// FeatureRow is the feature vector emitted for one job.
type FeatureRow struct {
	SubmissionIndex int   `yaml:"index"`
	User            int64 `yaml:"id_user"`
	Qos             int64 `yaml:"id_qos"`
	CpusReq         int64 `yaml:"cpus_req"`
	NodesAlloc      int64 `yaml:"nodes_alloc"`
	// TimeLimit is in seconds.
	TimeLimit   int64      `yaml:"timelimit"`
	Submit      int64      `yaml:"time_submit"`
	Priority    int64      `yaml:"priority"`
	State       jobs.State `yaml:"state"`
	RunningTime int64      `yaml:"running_time"`
	// Top1Time is the running time of the user's most recently submitted
	// completed job that had finished before this job was submitted.
	Top1Time int64 `yaml:"top1_time"`
	// Top2Time is the running time of the second most recent one.
	Top2Time int64   `yaml:"top2_time"`
	Top2Mean float64 `yaml:"top2_mean"`
	// Priors is how many completed jobs of the user were visible, from 0 to 2.
	Priors        int `yaml:"priors"`
	jobs.Calendar `yaml:",inline"`
}

func lessBySubmit(a, b jobs.JobRecord) bool {
	return a.Submit < b.Submit
}

// IsSortedBySubmit reports whether records are in ascending submission order.
func IsSortedBySubmit(records []jobs.JobRecord) bool {
	return slices.IsSortedFunc(records, lessBySubmit)
}

// SortBySubmit returns a copy of records stably sorted by submission time.
func SortBySubmit(records []jobs.JobRecord) []jobs.JobRecord {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, lessBySubmit)
	return sorted
}

// Replay computes the feature row of every job, in submission order.
// A job only sees completions strictly before its own submission.
// Input that is not sorted by submission time is stably re-sorted first.
func Replay(records []jobs.JobRecord, mode config.Mode) []FeatureRow {
	return replay(records, mode, logrus.NewEntry(logrus.StandardLogger()))
}

func replay(records []jobs.JobRecord, mode config.Mode, log *logrus.Entry) []FeatureRow {
	if !IsSortedBySubmit(records) {
		log.Warn("Job log is not sorted by submission time; re-sorting")
		records = SortBySubmit(records)
	}

	queue := NewCompletionQueue(len(records))
	histories := make(map[int64]*UserHistory)
	rows := make([]FeatureRow, len(records))
	drained := 0
	admitted := 0

	for i, job := range records {
		now := job.Submit
		for {
			next, ok := queue.PeekMin()
			if !ok || next.CompletionTime >= now {
				break
			}
			queue.PopMin()
			finished := records[next.JobIndex]
			h, ok := histories[finished.User]
			if !ok {
				h = &UserHistory{}
				histories[finished.User] = h
			}
			h.Push(next.JobIndex, finished.RunningTime())
			drained++
		}

		var top1, top2 int64
		priors := 0
		if h, ok := histories[job.User]; ok {
			top1, top2 = h.recencyTimes()
			priors = h.Len()
		}

		if mode.AdmitsAll() || job.Completed() {
			queue.PushEvent(CompletionEvent{CompletionTime: job.End, JobIndex: i})
			admitted++
		}

		rows[i] = FeatureRow{
			SubmissionIndex: i,
			User:            job.User,
			Qos:             job.Qos,
			CpusReq:         job.CpusReq,
			NodesAlloc:      job.NodesAlloc,
			TimeLimit:       job.TimeLimitSeconds(),
			Submit:          job.Submit,
			Priority:        job.Priority,
			State:           job.State,
			RunningTime:     job.RunningTime(),
			Top1Time:        top1,
			Top2Time:        top2,
			Top2Mean:        float64(top1+top2) / 2.0,
			Priors:          priors,
			Calendar:        jobs.DeriveCalendar(job.Submit),
		}
	}

	log.WithFields(logrus.Fields{
		"jobs":     len(records),
		"admitted": admitted,
		"drained":  drained,
		"users":    len(histories),
	}).Debug("Replay finished")
	return rows
}
