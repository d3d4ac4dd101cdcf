package service

import "sync"

// UserLocks serializes wallet and order mutations per user. Cross-user
// operations never contend on the same mutex.
type UserLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewUserLocks() *UserLocks {
	return &UserLocks{
		locks: map[int64]*sync.Mutex{},
	}
}

func (l *UserLocks) Lock(userID int64) {
	l.userLock(userID).Lock()
}

func (l *UserLocks) Unlock(userID int64) {
	l.userLock(userID).Unlock()
}

func (l *UserLocks) userLock(userID int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[userID] = lock
	}

	return lock
}
