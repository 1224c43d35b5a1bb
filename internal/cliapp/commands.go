package cliapp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/northroot/northroot/internal/canon"
	"github.com/northroot/northroot/internal/chaincheck"
	"github.com/northroot/northroot/internal/event"
	"github.com/northroot/northroot/internal/eventid"
	"github.com/northroot/northroot/internal/journal"
	"github.com/northroot/northroot/internal/nrlog"
	"github.com/northroot/northroot/internal/quantity"
	"github.com/northroot/northroot/internal/telemetry"
	"github.com/northroot/northroot/internal/verify"
)

// CLI is kong's top-level command structure: one *Cmd field per
// subcommand, each tagged cmd:"".
type CLI struct {
	Append     AppendCmd     `cmd:"" help:"Append an event to a journal"`
	List       ListCmd       `cmd:"" help:"List events in a journal"`
	Get        GetCmd        `cmd:"" help:"Get a single event by id"`
	Verify     VerifyCmd     `cmd:"" help:"Verify every event in a journal"`
	Inspect    InspectCmd    `cmd:"" help:"Inspect an authorization and its executions"`
	Checkpoint CheckpointCmd `cmd:"" help:"Append a checkpoint at the current chain tip"`
}

// AppendCmd writes one event to a journal.
type AppendCmd struct {
	Journal string `arg:"" help:"Journal file path"`
	Event   string `arg:"" help:"Path to a JSON file containing the event, or '-' for stdin"`
	Strict  bool   `help:"Require a pre-filled event_id to match the recomputed one"`
	Sync    bool   `help:"fsync after every append"`
}

func (c *AppendCmd) Run(ctx context.Context, log *nrlog.Logger) error {
	raw, err := readInput(c.Event)
	if err != nil {
		return err
	}

	var header struct {
		EventId   event.Digest `json:"event_id"`
		EventType string       `json:"event_type"`
	}
	json.Unmarshal(raw, &header)

	_, span := telemetry.StartAppendSpan(ctx, c.Journal, header.EventType)
	var appendErr error
	defer func() { telemetry.EndAppendSpan(span, appendErr) }()

	id, err := eventid.Compute(raw, canon.ProfileNorthrootV1)
	if err != nil {
		appendErr = fmt.Errorf("append: %w", err)
		return appendErr
	}

	if c.Strict && !header.EventId.IsZero() {
		ok, verr := eventid.Verify(raw, canon.ProfileNorthrootV1, header.EventId)
		if verr != nil {
			appendErr = verr
			return appendErr
		}
		if !ok {
			appendErr = fmt.Errorf("append: --strict: event_id mismatch")
			return appendErr
		}
	}

	sealed, err := eventid.Embed(raw, id)
	if err != nil {
		appendErr = fmt.Errorf("append: %w", err)
		return appendErr
	}

	w, err := journal.OpenWriter(c.Journal, c.Sync)
	if err != nil {
		appendErr = sanitizeErr(err, c.Journal)
		return appendErr
	}
	defer w.Finish()

	if err := w.AppendRawEvent(sealed); err != nil {
		appendErr = sanitizeErr(err, c.Journal)
		return appendErr
	}
	log.WithComponent("cliapp").Infof("appended event %s", id.String())
	fmt.Println(id.String())
	return nil
}

// ListCmd iterates a journal's events, optionally filtered.
type ListCmd struct {
	Journal    string `arg:"" help:"Journal file path"`
	Type       string `help:"Filter by event_type"`
	Principal  string `help:"Filter by principal_id"`
	After      string `help:"Filter: occurred_at >= this RFC3339 timestamp"`
	Before     string `help:"Filter: occurred_at < this RFC3339 timestamp"`
	MaxEvents  int    `help:"Stop after this many matching events (0 = unlimited)"`
}

func (c *ListCmd) Run() error {
	raws, err := readAllFrames(c.Journal, journal.Strict)
	if err != nil {
		return sanitizeErr(err, c.Journal)
	}

	var filters []Filter
	if c.Type != "" {
		filters = append(filters, ByType(event.Type(c.Type)))
	}
	if c.Principal != "" {
		filters = append(filters, ByPrincipal(event.PrincipalId(c.Principal)))
	}
	if c.After != "" || c.Before != "" {
		filters = append(filters, ByTimeRange(event.Timestamp(c.After), event.Timestamp(c.Before)))
	}
	f := And(filters...)

	count := 0
	for _, raw := range raws {
		v, _, err := event.ParseTyped(raw)
		if err != nil {
			continue
		}
		if !f.Match(v) {
			continue
		}
		fmt.Println(string(raw))
		count++
		if c.MaxEvents > 0 && count >= c.MaxEvents {
			break
		}
	}
	return nil
}

// GetCmd returns the first event whose id matches.
type GetCmd struct {
	Journal string `arg:"" help:"Journal file path"`
	EventId string `arg:"" help:"Event id (alg:b64 form)"`
}

func (c *GetCmd) Run() error {
	raws, err := readAllFrames(c.Journal, journal.Strict)
	if err != nil {
		return sanitizeErr(err, c.Journal)
	}
	f := ByEventId(c.EventId)
	for _, raw := range raws {
		v, _, err := event.ParseTyped(raw)
		if err != nil {
			continue
		}
		if f.Match(v) {
			fmt.Println(string(raw))
			return nil
		}
	}
	return fmt.Errorf("get: no event with id %s", c.EventId)
}

// VerifyCmd runs a two-pass verification over every event in a journal.
type VerifyCmd struct {
	Journal string `arg:"" help:"Journal file path"`
	Strict  bool   `help:"Exit non-zero if any event's verdict is not Ok"`
}

func (c *VerifyCmd) Run(ctx context.Context, log *nrlog.Logger) error {
	ctx, span := telemetry.StartVerifySpan(ctx, c.Journal, c.Strict)
	var verifyErr error
	violations := 0
	var results []verify.Result
	defer func() { telemetry.EndVerifySpan(span, len(results), violations, verifyErr) }()

	raws, err := readAllFrames(c.Journal, journal.Strict)
	if err != nil {
		verifyErr = sanitizeErr(err, c.Journal)
		return verifyErr
	}
	results, err = verify.Batch(raws, verify.Options{Profile: canon.ProfileNorthrootV1})
	if err != nil {
		verifyErr = err
		return verifyErr
	}

	anyBad := false
	for _, r := range results {
		_, eventSpan := telemetry.StartEventSpan(ctx, r.EventId, r.Type)
		telemetry.EndEventSpan(eventSpan, renderVerdict(r.Verdict))

		fmt.Printf("%s  %-14s %s\n", r.EventId, r.Type, renderVerdict(r.Verdict))
		if r.Verdict != verify.Ok {
			anyBad = true
			violations++
		}
	}
	log.WithComponent("cliapp").Infof("verified %d events", len(results))
	if c.Strict && anyBad {
		verifyErr = fmt.Errorf("verify: --strict: at least one event was not Ok")
		return verifyErr
	}
	return nil
}

// InspectCmd shows an authorization and every execution referencing it.
type InspectCmd struct {
	Journal     string `arg:"" help:"Journal file path"`
	AuthEventId string `arg:"" help:"Authorization event id (alg:b64 form)"`
}

func (c *InspectCmd) Run() error {
	raws, err := readAllFrames(c.Journal, journal.Strict)
	if err != nil {
		return sanitizeErr(err, c.Journal)
	}

	var auth *event.Authorization
	var executions []*event.Execution
	for _, raw := range raws {
		v, typ, err := event.ParseTyped(raw)
		if err != nil {
			continue
		}
		switch e := v.(type) {
		case *event.Authorization:
			if e.Header.EventId.String() == c.AuthEventId {
				auth = e
			}
		case *event.Execution:
			if e.AuthEventId.String() == c.AuthEventId {
				executions = append(executions, e)
			}
		}
		_ = typ
	}
	if auth == nil {
		return fmt.Errorf("inspect: no authorization with id %s", c.AuthEventId)
	}

	fmt.Printf("authorization %s  decision=%s  tools=%v\n", c.AuthEventId, auth.Decision, authorizedTools(auth))
	for _, e := range executions {
		fmt.Printf("  execution %s  tool=%s  outcome=%s\n", e.Header.EventId.String(), e.ToolName, e.Outcome)
	}
	return nil
}

func authorizedTools(a *event.Authorization) []event.ToolName {
	if a.Kind == event.AuthorizationKindGrant && a.Grant != nil {
		return a.Grant.AllowedTools
	}
	if a.Kind == event.AuthorizationKindAction && a.Action != nil {
		return []event.ToolName{a.Action.ToolName}
	}
	return nil
}

// CheckpointCmd appends a Checkpoint event at the journal's current chain
// tip. Supplementary tooling per SPEC_FULL.md's §6 expansion, not a core
// verifier operation.
type CheckpointCmd struct {
	Journal     string `arg:"" help:"Journal file path"`
	PrincipalId string `help:"principal_id to attribute the checkpoint to" default:"northroot.cli"`
}

func (c *CheckpointCmd) Run() error {
	raws, err := readAllFrames(c.Journal, journal.Permissive)
	if err != nil {
		return sanitizeErr(err, c.Journal)
	}

	walker := chaincheck.NewWalker()
	var tipId event.Digest
	var height uint64
	for _, raw := range raws {
		v, _, err := event.ParseTyped(raw)
		if err != nil {
			continue
		}
		walker.Observe(v)
		tipId = event.EventId(v)
		if cp, ok := v.(*event.Checkpoint); ok {
			if h, hok := cp.ChainTipHeight.Uint64(); hok && h >= height {
				height = h
			}
		}
	}
	if len(raws) == 0 {
		return fmt.Errorf("checkpoint: journal has no events to checkpoint")
	}

	intentDigest := event.Digest{Alg: "sha-256", B64: uuid.NewString()}
	cp := event.Checkpoint{
		Header: event.Header{
			EventType:          event.TypeCheckpoint,
			EventVersion:       "1",
			OccurredAt:         event.NewTimestamp(timeNow()),
			PrincipalId:        event.PrincipalId(c.PrincipalId),
			CanonicalProfileId: event.ProfileId(canon.ProfileNorthrootV1),
			Intents:            event.Intents{IntentDigest: intentDigest},
		},
		ChainTipEventId: tipId,
		ChainTipHeight:  quantity.IntFromUint64(height + 1),
	}
	raw, err := json.Marshal(cp)
	if err != nil {
		return err
	}
	id, err := eventid.Compute(raw, canon.ProfileNorthrootV1)
	if err != nil {
		return err
	}
	sealed, err := eventid.Embed(raw, id)
	if err != nil {
		return err
	}

	w, err := journal.OpenWriter(c.Journal, true)
	if err != nil {
		return sanitizeErr(err, c.Journal)
	}
	defer w.Finish()
	if err := w.AppendRawEvent(sealed); err != nil {
		return sanitizeErr(err, c.Journal)
	}
	fmt.Println(id.String())
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func readAllFrames(path string, mode journal.Mode) ([][]byte, error) {
	r, err := journal.OpenReader(path, mode)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var out [][]byte
	for {
		f, err := r.Next()
		if err != nil {
			return out, err
		}
		if f == nil {
			break
		}
		out = append(out, f.Payload)
	}
	return out, nil
}

// sanitizeErr rewrites an absolute journal path embedded in err's message
// down to its sanitized form.
func sanitizeErr(err error, journalPath string) error {
	cwd, cwdErr := os.Getwd()
	if cwdErr != nil {
		return err
	}
	return fmt.Errorf("%s: %w", sanitizePath(cwd, journalPath), err)
}
