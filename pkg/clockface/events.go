package clockface

import "time"

// EverySecondEvent is emitted on the first frame of each displayed second.
type EverySecondEvent struct {
	// Date is the displayed (offset-adjusted) instant.
	Date time.Time
	// Seconds is Date's second within the minute.
	Seconds int
}

// AlarmEvent is emitted once when the displayed time reaches the alarm.
type AlarmEvent struct {
	Date time.Time
}

type listeners[E any] struct {
	nextID int
	fns    map[int]func(E)
	order  []int
}

func (l *listeners[E]) add(fn func(E)) int {
	if l.fns == nil {
		l.fns = make(map[int]func(E))
	}
	l.nextID++
	id := l.nextID
	l.fns[id] = fn
	l.order = append(l.order, id)
	return id
}

func (l *listeners[E]) remove(id int) {
	if _, ok := l.fns[id]; !ok {
		return
	}
	delete(l.fns, id)
	for i, v := range l.order {
		if v == id {
			l.order = append(l.order[:i:i], l.order[i+1:]...)
			break
		}
	}
}

// snapshot returns the listeners in registration order.
func (l *listeners[E]) snapshot() []func(E) {
	out := make([]func(E), 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.fns[id])
	}
	return out
}
