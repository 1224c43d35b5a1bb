//go:build !unix

package journal

import "os"

// lockExclusive is a best-effort no-op on platforms without flock; the
// single-writer contract is still documented and expected to be enforced
// by the layer above.
func lockExclusive(f *os.File) error { return nil }

func unlock(f *os.File) {}
