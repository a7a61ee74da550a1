package bootstrap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/bnema/tabstrip/internal/domain/entity"
)

const (
	lockDirPerm  = 0o755
	lockFilePerm = 0o600
)

// sessionLock is an flock held for the lifetime of a session. Another
// process can tell a crashed session from a live one by trying to take it.
type sessionLock struct {
	file *os.File
	path string
}

func sessionLockPath(lockDir string, sessionID entity.SessionID) string {
	return filepath.Join(lockDir, fmt.Sprintf("session_%s.lock", sessionID))
}

func lockSession(lockDir string, sessionID entity.SessionID) (*sessionLock, error) {
	if lockDir == "" {
		return nil, errors.New("lock dir is empty")
	}
	if err := os.MkdirAll(lockDir, lockDirPerm); err != nil {
		return nil, err
	}

	path := sessionLockPath(lockDir, sessionID)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFilePerm)
	if err != nil {
		return nil, err
	}

	locked, err := tryLockExclusiveNonBlocking(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if !locked {
		_ = f.Close()
		return nil, errors.New("session lock already held")
	}
	return &sessionLock{file: f, path: path}, nil
}

func (l *sessionLock) release() {
	if l == nil || l.file == nil {
		return
	}
	_ = unlockAndClose(l.file)
	_ = os.Remove(l.path)
	l.file = nil
}

// lockIsStale reports whether the session's lock file exists and no process
// holds it. Sessions without a lock file are never considered stale.
func lockIsStale(lockDir string, sessionID entity.SessionID) bool {
	f, err := os.OpenFile(sessionLockPath(lockDir, sessionID), os.O_RDWR, lockFilePerm)
	if err != nil {
		return false
	}
	locked, err := tryLockExclusiveNonBlocking(f)
	if err != nil || !locked {
		_ = f.Close()
		return false
	}
	_ = unlockAndClose(f)
	return true
}

func removeLock(lockDir string, sessionID entity.SessionID) {
	_ = os.Remove(sessionLockPath(lockDir, sessionID))
}

func tryLockExclusiveNonBlocking(f *os.File) (bool, error) {
	if f == nil {
		return false, errors.New("nil file")
	}
	err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, unix.EWOULDBLOCK) {
		return false, nil
	}
	return false, err
}

func unlockAndClose(f *os.File) error {
	if f == nil {
		return nil
	}
	_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
	return f.Close()
}
