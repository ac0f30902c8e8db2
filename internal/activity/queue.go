package activity

// maxReplacementsPerTick bounds how many Replace hand-overs run in a single
// tick, so a pair of activities replacing each other cannot stall a tick.
const maxReplacementsPerTick = 16

// Queue is an actor's owned sequence of activities. The front item is the
// current activity.
type Queue struct {
	items []Activity
}

// Enqueue appends activities behind everything already queued.
func (q *Queue) Enqueue(acts ...Activity) {
	for _, a := range acts {
		if a != nil {
			q.items = append(q.items, a)
		}
	}
}

// Current returns the running activity, or nil when idle.
func (q *Queue) Current() Activity {
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0]
}

func (q *Queue) Len() int     { return len(q.items) }
func (q *Queue) IsIdle() bool { return len(q.items) == 0 }

// Names lists the queued activities front first.
func (q *Queue) Names() []string {
	names := make([]string, len(q.items))
	for i, a := range q.items {
		names[i] = Name(a)
	}
	return names
}

// Tick runs the current activity for one tick.
func (q *Queue) Tick(self Actor) {
	for n := 0; len(q.items) > 0; n++ {
		r := q.items[0].Tick(self)
		switch r.kind {
		case KindContinue:
			return
		case KindDone:
			q.popFront()
			return
		case KindReplace:
			q.replaceFront(r.next)
			if n+1 >= maxReplacementsPerTick {
				return
			}
		}
	}
}

// Cancel asks the current activity to stop. If it accepts, every activity
// queued behind it is dropped and the current one winds down on its own. If
// it refuses, the queue is left untouched and Cancel returns false.
// Cancelling an idle queue succeeds trivially.
func (q *Queue) Cancel(self Actor) bool {
	if len(q.items) == 0 {
		return true
	}
	if !q.items[0].Cancel(self) {
		return false
	}
	for i := 1; i < len(q.items); i++ {
		q.items[i] = nil
	}
	q.items = q.items[:1]
	return true
}

// Clear drops everything without asking. Used when an actor is removed.
func (q *Queue) Clear() {
	q.items = nil
}

func (q *Queue) popFront() {
	q.items[0] = nil
	q.items = q.items[1:]
}

func (q *Queue) replaceFront(next []Activity) {
	rest := q.items[1:]
	items := make([]Activity, 0, len(next)+len(rest))
	for _, a := range next {
		if a != nil {
			items = append(items, a)
		}
	}
	q.items = append(items, rest...)
}
