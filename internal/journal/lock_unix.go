//go:build unix

package journal

import (
	"os"

	"golang.org/x/sys/unix"
)

// lockExclusive takes a non-blocking advisory exclusive lock on f so a
// second process cannot open the same journal for append concurrently.
func lockExclusive(f *os.File) error {
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		return &Error{Kind: ErrIo, Detail: "advisory lock held by another writer: " + err.Error()}
	}
	return nil
}

func unlock(f *os.File) {
	unix.Flock(int(f.Fd()), unix.LOCK_UN)
}
