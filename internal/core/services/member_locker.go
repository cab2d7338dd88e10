package services

import "sync"

// memberLocker serialises work per member inside this process.
// Entries are dropped once no goroutine holds or waits for them.
type memberLocker struct {
	mu    sync.Mutex
	locks map[string]*memberLock
}

type memberLock struct {
	mu   sync.Mutex
	refs int
}

func newMemberLocker() *memberLocker {
	return &memberLocker{locks: make(map[string]*memberLock)}
}

// Lock blocks until memberID is free and returns the matching unlock function.
func (l *memberLocker) Lock(memberID string) func() {
	l.mu.Lock()
	ml, ok := l.locks[memberID]
	if !ok {
		ml = &memberLock{}
		l.locks[memberID] = ml
	}
	ml.refs++
	l.mu.Unlock()

	ml.mu.Lock()
	return func() {
		ml.mu.Unlock()
		l.mu.Lock()
		ml.refs--
		if ml.refs == 0 {
			delete(l.locks, memberID)
		}
		l.mu.Unlock()
	}
}
