package simulation

// historyCapacity is the number of completed jobs remembered per user.
const historyCapacity = 2

// HistoryEntry is a completed job remembered in a user's history.
type HistoryEntry struct {
	SubmissionIndex int
	RunningTime     int64
}

// UserHistory remembers the two most recently submitted completed jobs of one user.
// Submission indices are unique, so there are never ties to break.
type UserHistory struct {
	// slots[0] is the more recent entry when n == 2.
	slots [historyCapacity]HistoryEntry
	n     int
}

// Push records a completed job. If the history is full, the entry with the
// smallest submission index is evicted, which may be the pushed entry itself.
func (h *UserHistory) Push(submissionIndex int, runningTime int64) {
	e := HistoryEntry{SubmissionIndex: submissionIndex, RunningTime: runningTime}
	switch h.n {
	case 0:
		h.slots[0] = e
		h.n = 1
	case 1:
		if e.SubmissionIndex > h.slots[0].SubmissionIndex {
			h.slots[0], h.slots[1] = e, h.slots[0]
		} else {
			h.slots[1] = e
		}
		h.n = 2
	default:
		if e.SubmissionIndex > h.slots[0].SubmissionIndex {
			h.slots[0], h.slots[1] = e, h.slots[0]
		} else if e.SubmissionIndex > h.slots[1].SubmissionIndex {
			h.slots[1] = e
		}
	}
}

// Query returns the remembered entries, most recently submitted first.
func (h *UserHistory) Query() []HistoryEntry {
	entries := make([]HistoryEntry, h.n)
	copy(entries, h.slots[:h.n])
	return entries
}

// Len returns the number of remembered entries, at most two.
func (h *UserHistory) Len() int {
	return h.n
}

// recencyTimes returns top1 and top2 running times for the history.
func (h *UserHistory) recencyTimes() (top1, top2 int64) {
	switch h.n {
	case 0:
		return 0, 0
	case 1:
		return h.slots[0].RunningTime, h.slots[0].RunningTime
	default:
		return h.slots[0].RunningTime, h.slots[1].RunningTime
	}
}
