package state

// Session tracks one user's progress through a calculator flow: which flow
// is active, which step is awaited next, and the values collected so far.
type Session struct {
	Flow   string
	Step   int
	Values map[string]float64
}

// Storage defines the per-user session persistence. At most one session
// exists per user; setting a new one overwrites the previous.
type Storage interface {
	Get(userID int64) (*Session, bool)
	Set(userID int64, session *Session)
	Delete(userID int64)
}
