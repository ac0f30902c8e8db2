// Package activity implements per-actor activity queues: the unit of
// scheduled behaviour in the simulation. An actor runs the activity at the
// front of its queue once per tick; the activity's Result decides whether it
// keeps running, hands over to replacements, or finishes.
package activity

import (
	"fmt"
	"strings"
)

// Actor is the minimal view of an entity an activity runs on.
type Actor interface {
	ID() uint32
}

// Activity is one step of behaviour scheduled on an actor.
type Activity interface {
	// Tick advances the activity by one simulation tick.
	Tick(self Actor) Result
	// Cancel asks the activity to stop. It returns false when the activity
	// refuses, in which case nothing queued behind it is dropped either.
	Cancel(self Actor) bool
	IsCanceled() bool
}

// Kind discriminates Result values.
type Kind uint8

const (
	KindContinue Kind = iota
	KindReplace
	KindDone
)

func (k Kind) String() string {
	switch k {
	case KindContinue:
		return "continue"
	case KindReplace:
		return "replace"
	case KindDone:
		return "done"
	default:
		return "unknown"
	}
}

// Result is what an activity returns from Tick.
type Result struct {
	kind Kind
	next []Activity
}

// Continue keeps the activity at the front of the queue.
func Continue() Result { return Result{kind: KindContinue} }

// Done removes the activity. Its successor runs from the next tick.
func Done() Result { return Result{kind: KindDone} }

// Replace swaps the activity for next, in order, ahead of the rest of the
// queue. The first replacement is ticked in the same tick. The replaced
// activity leaves the queue: one that wants to resume afterwards must list
// itself in next, usually last.
func Replace(next ...Activity) Result {
	return Result{kind: KindReplace, next: next}
}

func (r Result) Kind() Kind { return r.kind }

// Next returns the replacement activities of a Replace result.
func (r Result) Next() []Activity { return r.next }

func (r Result) String() string {
	if r.kind != KindReplace {
		return r.kind.String()
	}
	names := make([]string, len(r.next))
	for i, a := range r.next {
		names[i] = Name(a)
	}
	return "replace(" + strings.Join(names, ", ") + ")"
}

// Base provides the default cancellation behaviour: accept and remember.
type Base struct {
	canceled bool
}

func (b *Base) Cancel(self Actor) bool {
	b.canceled = true
	return true
}

func (b *Base) IsCanceled() bool { return b.canceled }

// Name returns a short display name for a.
func Name(a Activity) string {
	if s, ok := a.(fmt.Stringer); ok {
		return s.String()
	}
	n := fmt.Sprintf("%T", a)
	if i := strings.LastIndexByte(n, '.'); i >= 0 {
		n = n[i+1:]
	}
	return strings.TrimLeft(n, "*")
}
