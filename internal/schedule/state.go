package schedule

// State is the refresh loop lifecycle.
type State string

const (
	StateIdle      State = "idle"
	StateFetching  State = "fetching"
	StateScheduled State = "scheduled"
	StateStopped   State = "stopped"
)
