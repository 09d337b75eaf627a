package state

// Manager owns the per-user session mapping on top of a Storage
// implementation, so handlers never touch the mapping directly.
type Manager struct {
	storage Storage
}

func NewManager(storage Storage) *Manager {
	return &Manager{storage: storage}
}

func (m *Manager) Get(userID int64) (*Session, bool) {
	return m.storage.Get(userID)
}

func (m *Manager) Set(userID int64, session *Session) {
	m.storage.Set(userID, session)
}

// Delete removes the user's session and reports whether one existed.
func (m *Manager) Delete(userID int64) bool {
	_, existed := m.storage.Get(userID)
	m.storage.Delete(userID)
	return existed
}
