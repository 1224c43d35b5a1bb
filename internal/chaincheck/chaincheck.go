// Package chaincheck validates the integrity of a Checkpoint event chain:
// that chain_tip_height is strictly increasing across a scan and that
// each chain_tip_event_id resolves to an event seen earlier in the same
// scan.
//
// This is additive evidence hygiene alongside the main verifier: the
// Checkpoint event type carries its own shape and verdict, but nothing
// about chain continuity across a run of checkpoints, which this walker
// checks separately as a journal-position trail.
package chaincheck

import (
	"fmt"

	"github.com/northroot/northroot/internal/event"
)

// Finding describes one chain-integrity problem found during a scan.
type Finding struct {
	CheckpointEventId string
	Reason            string
}

// Walker accumulates Checkpoint events across a journal scan in order and
// reports any chain-integrity findings. Feed it every event (of any type)
// in journal order via Observe; call Findings when the scan is complete.
type Walker struct {
	seenEventIds map[string]bool
	lastHeight   uint64
	haveHeight   bool
	findings     []Finding
}

func NewWalker() *Walker {
	return &Walker{seenEventIds: make(map[string]bool)}
}

// Observe records one event's id (so later Checkpoints can reference it)
// and, if it is itself a Checkpoint, validates it against the trail seen
// so far.
func (w *Walker) Observe(v any) {
	id := event.EventId(v).String()
	cp, isCheckpoint := v.(*event.Checkpoint)
	if !isCheckpoint {
		w.seenEventIds[id] = true
		return
	}

	height, ok := cp.ChainTipHeight.Uint64()
	if !ok {
		w.findings = append(w.findings, Finding{
			CheckpointEventId: id,
			Reason:            "chain_tip_height is not a well-formed non-negative integer quantity",
		})
	} else if w.haveHeight && height <= w.lastHeight {
		w.findings = append(w.findings, Finding{
			CheckpointEventId: id,
			Reason:            fmt.Sprintf("chain_tip_height %d did not increase past prior tip %d", height, w.lastHeight),
		})
	} else {
		w.lastHeight = height
		w.haveHeight = true
	}

	tipId := cp.ChainTipEventId.String()
	if !w.seenEventIds[tipId] {
		w.findings = append(w.findings, Finding{
			CheckpointEventId: id,
			Reason:            "chain_tip_event_id does not resolve to a prior event in this scan",
		})
	}

	w.seenEventIds[id] = true
}

// Findings returns every chain-integrity problem observed so far, in scan
// order.
func (w *Walker) Findings() []Finding {
	return w.findings
}
