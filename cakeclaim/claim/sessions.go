package claim

import (
	"context"
	"sync"
	"time"
)

// Manager tracks in-flight payment verifications so one payment hash is
// processed by at most one request at a time in this process.
type Manager struct {
	activeSessions sync.Map
	lockDuration   time.Duration
	now            func() time.Time
}

func NewManager(lockDuration time.Duration) *Manager {
	return &Manager{
		lockDuration: lockDuration,
		now:          time.Now,
	}
}

func (m *Manager) HasActiveSession(key string) bool {
	expiry, exists := m.activeSessions.Load(key)
	return exists && m.now().Before(expiry.(time.Time))
}

// Lock starts a session for key. It fails while another unexpired session
// holds the key.
func (m *Manager) Lock(key string) bool {
	expiry := m.now().Add(m.lockDuration)
	for {
		current, loaded := m.activeSessions.LoadOrStore(key, expiry)
		if !loaded {
			return true
		}
		if m.now().Before(current.(time.Time)) {
			return false
		}
		if m.activeSessions.CompareAndSwap(key, current, expiry) {
			return true
		}
	}
}

func (m *Manager) Release(key string) {
	m.activeSessions.Delete(key)
}

func (m *Manager) cleanupExpiredLocks() {
	now := m.now()
	m.activeSessions.Range(func(key, value interface{}) bool {
		if now.After(value.(time.Time)) {
			m.activeSessions.CompareAndDelete(key, value)
		}
		return true
	})
}

func (m *Manager) StartCleanupRoutine(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.cleanupExpiredLocks()
			}
		}
	}()
}
