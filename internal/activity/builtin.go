package activity

import "fmt"

// Wait idles for a fixed number of ticks.
type Wait struct {
	Base
	remaining int
}

func NewWait(ticks int) *Wait {
	return &Wait{remaining: ticks}
}

func (w *Wait) Tick(self Actor) Result {
	if w.IsCanceled() || w.remaining <= 0 {
		return Done()
	}
	w.remaining--
	if w.remaining == 0 {
		return Done()
	}
	return Continue()
}

func (w *Wait) String() string { return fmt.Sprintf("Wait(%d)", w.remaining) }

// WaitFor idles until cond reports true.
type WaitFor struct {
	Base
	cond func() bool
}

func NewWaitFor(cond func() bool) *WaitFor {
	return &WaitFor{cond: cond}
}

func (w *WaitFor) Tick(self Actor) Result {
	if w.IsCanceled() || w.cond() {
		return Done()
	}
	return Continue()
}

// Uninterruptible wraps a so that it refuses cancellation. Activities a hands
// over to are wrapped too, so a guarded chain cannot be cut from its front.
func Uninterruptible(a Activity) Activity {
	if _, ok := a.(*uninterruptible); ok {
		return a
	}
	return &uninterruptible{inner: a}
}

type uninterruptible struct {
	inner Activity
}

func (u *uninterruptible) Tick(self Actor) Result {
	r := u.inner.Tick(self)
	if r.kind != KindReplace {
		return r
	}
	next := make([]Activity, len(r.next))
	for i, a := range r.next {
		next[i] = Uninterruptible(a)
	}
	return Replace(next...)
}

func (u *uninterruptible) Cancel(self Actor) bool { return false }
func (u *uninterruptible) IsCanceled() bool       { return false }
func (u *uninterruptible) String() string         { return Name(u.inner) }
