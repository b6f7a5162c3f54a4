package jobs

// IsAdmissible reports whether a record can take part in feature extraction.
// Submit, start, end and time limit must all be set, and the job must not have
// overrun its time limit by more than the grace period.
func IsAdmissible(r JobRecord) bool {
	if r.Submit == 0 || r.Start == 0 || r.End == 0 || r.TimeLimit == 0 {
		return false
	}
	return r.RunningTime() <= r.TimeLimitSeconds()+timeLimitGrace
}

// FilterAdmissible returns the admissible records, preserving their order.
func FilterAdmissible(records []JobRecord) []JobRecord {
	admissible := make([]JobRecord, 0, len(records))
	for _, r := range records {
		if IsAdmissible(r) {
			admissible = append(admissible, r)
		}
	}
	return admissible
}
