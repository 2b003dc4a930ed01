// Package logfilter implements the should_log hook from spec.md §6.5:
// a per-packet predicate consulted before the session logs an inbound
// or outbound message at trace level, grounded on the allow/deny style
// filtering the teacher applies to decoy traffic in
// server/internal/decoy/decoy.go.
package logfilter

import "github.com/protanki-go/protocol/core/wire"

// Filter decides whether a packet should be logged. isSend is true
// for outbound packets, false for inbound.
type Filter interface {
	ShouldLog(isSend bool, msg wire.Message) bool
}

type always struct{}

func (always) ShouldLog(bool, wire.Message) bool { return true }

// Always logs every packet.
func Always() Filter { return always{} }

type never struct{}

func (never) ShouldLog(bool, wire.Message) bool { return false }

// Never suppresses all per-packet logging.
func Never() Filter { return never{} }

// mode selects whether ByModelID treats its set as an allow-list or a
// deny-list.
type mode int

const (
	allow mode = iota
	deny
)

type byModelID struct {
	mode mode
	ids  map[int32]bool
}

func (f *byModelID) ShouldLog(_ bool, msg wire.Message) bool {
	_, present := f.ids[msg.ModelID()]
	if f.mode == allow {
		return present
	}
	return !present
}

// AllowModelIDs logs only packets whose ModelID is in ids.
func AllowModelIDs(ids ...int32) Filter {
	return &byModelID{mode: allow, ids: toSet(ids)}
}

// DenyModelIDs logs every packet except those whose ModelID is in ids.
func DenyModelIDs(ids ...int32) Filter {
	return &byModelID{mode: deny, ids: toSet(ids)}
}

func toSet(ids []int32) map[int32]bool {
	s := make(map[int32]bool, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}
