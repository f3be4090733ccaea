package entity

import (
	"fmt"
	"slices"
	"time"
)

// LayoutPhase is the protocol state of one output.
type LayoutPhase int

const (
	PhaseIdle             LayoutPhase = iota // Nothing outstanding
	PhaseAwaitingResponse                    // A request is in flight
	PhaseApplied                             // A response was just applied
)

// String returns the phase name.
func (p LayoutPhase) String() string {
	switch p {
	case PhaseAwaitingResponse:
		return "awaiting_response"
	case PhaseApplied:
		return "applied"
	default:
		return "idle"
	}
}

// OutputLayout tracks the request/response cycle of one output and the last
// geometry that was successfully applied to it.
type OutputLayout struct {
	Output  OutputName
	Phase   LayoutPhase
	Pending RequestID

	// PendingNeed is the need the pending request was issued for.
	PendingNeed LayoutNeed
	// LastNeed is the most recent need, kept for force-layout rounds.
	LastNeed LayoutNeed

	LastGood   []Placement
	LastGoodID RequestID
	AppliedAt  time.Time
}

// NewOutputLayout creates the idle state for an output.
func NewOutputLayout(output OutputName) *OutputLayout {
	return &OutputLayout{Output: output}
}

// Begin records a new outstanding request. Any older pending request is
// superseded and its response will be treated as stale.
func (o *OutputLayout) Begin(id RequestID, need LayoutNeed) {
	o.Phase = PhaseAwaitingResponse
	o.Pending = id
	o.PendingNeed = need
	o.LastNeed = need
}

// Accept checks that a response answers the latest outstanding request and
// returns the need it was issued for.
func (o *OutputLayout) Accept(id RequestID) (LayoutNeed, error) {
	if o.Phase != PhaseAwaitingResponse || id != o.Pending {
		return LayoutNeed{}, fmt.Errorf("%w: output %s got request %d, latest is %d (%s)",
			ErrStaleResponse, o.Output, id, o.Pending, o.Phase)
	}
	return o.PendingNeed, nil
}

// MarkApplied stores placements as the new known-good geometry.
func (o *OutputLayout) MarkApplied(id RequestID, placements []Placement, at time.Time) {
	o.Phase = PhaseApplied
	o.LastGood = slices.Clone(placements)
	o.LastGoodID = id
	o.AppliedAt = at
}

// Settle returns an applied output to idle.
func (o *OutputLayout) Settle() {
	if o.Phase == PhaseApplied {
		o.Phase = PhaseIdle
	}
}

// Abandon drops the outstanding request id if it is still pending.
// Returns false when id is no longer the pending request.
func (o *OutputLayout) Abandon(id RequestID) bool {
	if o.Phase != PhaseAwaitingResponse || o.Pending != id {
		return false
	}
	o.Phase = PhaseIdle
	return true
}

// Covers reports whether every window already has a known-good placement.
func (o *OutputLayout) Covers(windows []WindowID) bool {
	if len(windows) != len(o.LastGood) {
		return false
	}
	known := make(map[WindowID]struct{}, len(o.LastGood))
	for _, p := range o.LastGood {
		known[p.Window] = struct{}{}
	}
	for _, w := range windows {
		if _, ok := known[w]; !ok {
			return false
		}
	}
	return true
}
