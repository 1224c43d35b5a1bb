package journal

import (
	"encoding/json"
	"fmt"
	"os"
)

// Writer owns an open journal file for append. A Writer is single-threaded
// and exclusively owns its file for its lifetime; callers must call
// Finish on every return path, success or error, to release the file
// handle and advisory lock.
type Writer struct {
	f      *os.File
	sync   bool
	locked bool
}

// OpenWriter opens path for append, creating it and writing the NRJ1
// header iff the file is newly created or empty. If sync is true, every
// AppendEvent fsyncs before returning; otherwise durability is only
// guaranteed after Finish, which always flushes.
func OpenWriter(path string, sync bool) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, &Error{Kind: ErrIo, Detail: err.Error()}
	}

	w := &Writer{f: f, sync: sync}
	if err := lockExclusive(f); err != nil {
		f.Close()
		return nil, err
	}
	w.locked = true

	info, err := f.Stat()
	if err != nil {
		w.Finish()
		return nil, &Error{Kind: ErrIo, Detail: err.Error()}
	}
	if info.Size() == 0 {
		if _, err := f.Write(encodeHeader(Header{Version: Version})); err != nil {
			w.Finish()
			return nil, &Error{Kind: ErrIo, Detail: err.Error()}
		}
	}
	if _, err := f.Seek(0, 2); err != nil { // seek to end, append-only
		w.Finish()
		return nil, &Error{Kind: ErrIo, Detail: err.Error()}
	}
	return w, nil
}

// AppendEvent serializes v to compact JSON, checks its size, writes the
// frame prefix and payload, and (if sync) flushes and fsyncs. No partial
// frame is ever written to a successful return path; a size-check failure
// returns PayloadTooLarge before any bytes reach the file.
func (w *Writer) AppendEvent(v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return &Error{Kind: ErrIo, Detail: fmt.Sprintf("marshal event: %v", err)}
	}
	return w.AppendRawEvent(payload)
}

// AppendRawEvent writes an already-serialized JSON payload as an
// EventJson frame.
func (w *Writer) AppendRawEvent(payload []byte) error {
	if len(payload) > MaxPayloadLen {
		return &Error{Kind: ErrPayloadTooLarge, Detail: fmt.Sprintf("%d bytes > %d max", len(payload), MaxPayloadLen)}
	}
	frame := encodeFrame(FrameKindEvent, payload)
	if _, err := w.f.Write(frame); err != nil {
		return &Error{Kind: ErrIo, Detail: err.Error()}
	}
	if w.sync {
		if err := w.f.Sync(); err != nil {
			return &Error{Kind: ErrIo, Detail: err.Error()}
		}
	}
	return nil
}

// Finish flushes, releases the advisory lock, and closes the file handle.
// It is safe to call more than once.
func (w *Writer) Finish() error {
	if w.f == nil {
		return nil
	}
	syncErr := w.f.Sync()
	if w.locked {
		unlock(w.f)
		w.locked = false
	}
	closeErr := w.f.Close()
	w.f = nil
	if syncErr != nil {
		return &Error{Kind: ErrIo, Detail: syncErr.Error()}
	}
	if closeErr != nil {
		return &Error{Kind: ErrIo, Detail: closeErr.Error()}
	}
	return nil
}
