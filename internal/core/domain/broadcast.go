package domain

import "time"

// BroadcastReport is the final accounting of one fan-out run.
// Success+Failure always equals the size of the recipient snapshot.
type BroadcastReport struct {
	RunID     string
	Success   int
	Failure   int
	Elapsed   time.Duration
	Cancelled bool
}

func (r BroadcastReport) Recipients() int {
	return r.Success + r.Failure
}
