// Package lock serialises scalerui processes that target the same framework
// directory using an advisory flock on a file in the system temp directory.
package lock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"github.com/scalerapps/scalerui/internal/messages"
)

type fileLock struct {
	file *os.File
}

var flockFn = unix.Flock
var lockSleep = time.Sleep
var lockDir = os.TempDir

var (
	lockWaitTimeout = 5 * time.Second
	lockPollEvery   = 100 * time.Millisecond
)

// ErrTimeout is returned when another process holds the lock past the wait timeout.
var ErrTimeout = errors.New("lock wait timed out")

// PathFor returns the lock file path for frameworkDir. Different spellings of
// the same absolute directory share a lock.
func PathFor(frameworkDir string) string {
	key := frameworkDir
	if abs, err := filepath.Abs(frameworkDir); err == nil {
		key = abs
	}
	sum := sha256.Sum256([]byte(filepath.Clean(key)))
	return filepath.Join(lockDir(), "scalerui-"+hex.EncodeToString(sum[:])[:16]+".lock")
}

// WithTarget holds the lock for frameworkDir while fn runs.
func WithTarget(frameworkDir string, fn func() error) error {
	path := PathFor(frameworkDir)
	lock, err := acquire(path, frameworkDir)
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.release()
	}()
	return fn()
}

// acquire opens or creates path and takes an exclusive lock on it.
func acquire(path string, target string) (*fileLock, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.LockOpenFmt, path, err)
	}
	if err := lockFile(file, target); err != nil {
		_ = file.Close()
		if errors.Is(err, ErrTimeout) {
			return nil, err
		}
		return nil, fmt.Errorf(messages.LockAcquireFmt, path, err)
	}
	return &fileLock{file: file}, nil
}

// release unlocks and closes the file. The lock file itself is left in place.
func (l *fileLock) release() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := flockFn(int(l.file.Fd()), unix.LOCK_UN); err != nil {
		_ = l.file.Close()
		return err
	}
	return l.file.Close()
}

func lockFile(file *os.File, target string) error {
	deadline := time.Now().Add(lockWaitTimeout)
	for {
		err := flockFn(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return nil
		}
		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EAGAIN) {
			return err
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: %s", ErrTimeout, fmt.Sprintf(messages.LockTimeoutFmt, target, lockWaitTimeout))
		}
		lockSleep(lockPollEvery)
	}
}
