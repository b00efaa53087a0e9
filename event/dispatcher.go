package event

import (
	"github.com/elliotchance/orderedmap/v2"
)

// Dispatcher delivers the events of a settled step to subscribers. Each character owns its own
// dispatcher; it is not safe for concurrent use.
type Dispatcher struct {
	subs   map[Event]*orderedmap.OrderedMap[uint64, *Subscription]
	nextID uint64

	// pending is reused between dispatches to snapshot the subscribers of one event.
	pending []*Subscription
}

// NewDispatcher ...
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		subs: make(map[Event]*orderedmap.OrderedMap[uint64, *Subscription]),
	}
}

// Subscription is the handle returned by Bind and Once.
type Subscription struct {
	d        *Dispatcher
	id       uint64
	evt      Event
	fn       func()
	once     bool
	disposed bool
}

// Dispose removes the subscription. It is safe to call more than once, including from inside the
// subscribed callback.
func (s *Subscription) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	for _, b := range BaseEvents {
		if s.evt&b == 0 {
			continue
		}
		if m, ok := s.d.subs[b]; ok {
			m.Delete(s.id)
		}
	}
}

// Disposed returns true once the subscription no longer receives events.
func (s *Subscription) Disposed() bool {
	return s.disposed
}

// Bind subscribes fn to evt until the returned subscription is disposed. Binding an aggregate
// subscribes fn to each of its base events; a step containing several of them invokes fn once
// per base event.
func (d *Dispatcher) Bind(evt Event, fn func()) *Subscription {
	return d.subscribe(evt, fn, false)
}

// Once subscribes fn to the next occurrence of evt only.
func (d *Dispatcher) Once(evt Event, fn func()) *Subscription {
	return d.subscribe(evt, fn, true)
}

func (d *Dispatcher) subscribe(evt Event, fn func(), once bool) *Subscription {
	d.nextID++
	s := &Subscription{d: d, id: d.nextID, evt: evt, fn: fn, once: once}
	for _, b := range BaseEvents {
		if evt&b == 0 {
			continue
		}
		m, ok := d.subs[b]
		if !ok {
			m = orderedmap.NewOrderedMap[uint64, *Subscription]()
			d.subs[b] = m
		}
		m.Set(s.id, s)
	}
	return s
}

// Dispatch invokes the subscribers of every base event in set, visiting base events in
// ascending bit order and subscribers in registration order. Aggregates are never visited on
// their own, so nothing is delivered twice for one bit.
func (d *Dispatcher) Dispatch(set Set) {
	if set.IsEmpty() {
		return
	}

	for _, evt := range BaseEvents {
		if !set.Contains(evt) {
			continue
		}
		m, ok := d.subs[evt]
		if !ok || m.Len() == 0 {
			continue
		}

		// callbacks may bind or dispose, so work from a snapshot.
		d.pending = d.pending[:0]
		for el := m.Front(); el != nil; el = el.Next() {
			d.pending = append(d.pending, el.Value)
		}
		for _, s := range d.pending {
			if s.Disposed() {
				continue
			}
			if s.once {
				s.Dispose()
			}
			s.fn()
		}
	}
	clear(d.pending)
}

// Len returns the number of live subscribers of a base event.
func (d *Dispatcher) Len(evt Event) int {
	m, ok := d.subs[evt]
	if !ok {
		return 0
	}
	return m.Len()
}
