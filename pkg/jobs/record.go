package jobs

// State is the job state code as stored by the Slurm accounting database.
type State int

const (
	StatePending   State = 0
	StateRunning   State = 1
	StateSuspended State = 2
	StateCompleted State = 3
	StateCancelled State = 4
	StateFailed    State = 5
	StateTimeout   State = 6
	StateNodeFail  State = 7
	StatePreempted State = 8
	StateBootFail  State = 9
	StateDeadline  State = 10
	StateOOM       State = 11
)

var stateNames = map[State]string{
	StatePending:   "PENDING",
	StateRunning:   "RUNNING",
	StateSuspended: "SUSPENDED",
	StateCompleted: "COMPLETED",
	StateCancelled: "CANCELLED",
	StateFailed:    "FAILED",
	StateTimeout:   "TIMEOUT",
	StateNodeFail:  "NODE_FAIL",
	StatePreempted: "PREEMPTED",
	StateBootFail:  "BOOT_FAIL",
	StateDeadline:  "DEADLINE",
	StateOOM:       "OUT_OF_MEMORY",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// timeLimitGrace is how far past its time limit a job may run and still be considered.
const timeLimitGrace = 60

// JobRecord is a single row of the cluster job log.
// All timestamps are Unix seconds.
type JobRecord struct {
	User       int64 `yaml:"id_user"`
	Qos        int64 `yaml:"id_qos"`
	CpusReq    int64 `yaml:"cpus_req"`
	NodesAlloc int64 `yaml:"nodes_alloc"`
	// TimeLimit is in minutes, as recorded by the scheduler.
	TimeLimit int64 `yaml:"timelimit"`
	Submit    int64 `yaml:"time_submit"`
	Start     int64 `yaml:"time_start"`
	End       int64 `yaml:"time_end"`
	Priority  int64 `yaml:"priority"`
	State     State `yaml:"state"`
}

// RunningTime returns how long the job ran, in seconds.
func (r JobRecord) RunningTime() int64 {
	return r.End - r.Start
}

// TimeLimitSeconds returns the time limit converted to seconds.
func (r JobRecord) TimeLimitSeconds() int64 {
	return r.TimeLimit * 60
}

// Completed reports whether the job finished successfully.
func (r JobRecord) Completed() bool {
	return r.State == StateCompleted
}
