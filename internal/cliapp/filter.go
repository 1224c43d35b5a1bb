package cliapp

import (
	"github.com/northroot/northroot/internal/event"
)

// Filter is a closed predicate sum: a variant-based dispatch over parsed
// events, with And short-circuiting on the first sub-filter that rejects.
// No inheritance, no interface-based open extension — the set of filter
// kinds is fixed.
type Filter struct {
	byType      event.Type
	hasType     bool
	byPrincipal event.PrincipalId
	hasPrincipal bool
	after       event.Timestamp
	hasAfter    bool
	before      event.Timestamp
	hasBefore   bool
	byEventId   string
	hasEventId  bool
	and         []Filter
	isAnd       bool
}

func ByType(t event.Type) Filter { return Filter{byType: t, hasType: true} }

func ByPrincipal(p event.PrincipalId) Filter {
	return Filter{byPrincipal: p, hasPrincipal: true}
}

func ByTimeRange(after, before event.Timestamp) Filter {
	f := Filter{}
	if after != "" {
		f.after, f.hasAfter = after, true
	}
	if before != "" {
		f.before, f.hasBefore = before, true
	}
	return f
}

func ByEventId(id string) Filter { return Filter{byEventId: id, hasEventId: true} }

func And(filters ...Filter) Filter { return Filter{and: filters, isAnd: true} }

// Match reports whether v (a value returned from event.ParseTyped)
// satisfies f.
func (f Filter) Match(v any) bool {
	if f.isAnd {
		for _, sub := range f.and {
			if !sub.Match(v) {
				return false
			}
		}
		return true
	}

	header := headerOf(v)
	if header == nil {
		return false
	}
	if f.hasType && header.EventType != f.byType {
		return false
	}
	if f.hasPrincipal && header.PrincipalId != f.byPrincipal {
		return false
	}
	if f.hasEventId && header.EventId.String() != f.byEventId {
		return false
	}
	if f.hasAfter && header.OccurredAt < f.after {
		return false
	}
	if f.hasBefore && header.OccurredAt >= f.before {
		return false
	}
	return true
}

func headerOf(v any) *event.Header {
	switch e := v.(type) {
	case *event.Authorization:
		return &e.Header
	case *event.Execution:
		return &e.Header
	case *event.Checkpoint:
		return &e.Header
	case *event.Attestation:
		return &e.Header
	default:
		return nil
	}
}
