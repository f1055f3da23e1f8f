package dss

import "reflect"

// Delegate is an ordered fan-out dispatcher over zero or more handlers.
// Connection order is call order, and every handler sees its own copy of
// the argument list.
type Delegate struct {
	handlers []Handler
}

// NewDelegate creates an empty delegate
func NewDelegate() *Delegate {
	return &Delegate{}
}

// Connect appends a handler to the call list
func (d *Delegate) Connect(h Handler) {
	d.handlers = append(d.handlers, h)
}

// Disconnect removes the first entry matching h; no-op when absent.
func (d *Delegate) Disconnect(h Handler) {
	for i, existing := range d.handlers {
		if handlersMatch(existing, h) {
			d.handlers = append(d.handlers[:i], d.handlers[i+1:]...)
			return
		}
	}
}

// clone returns a new delegate with the same connected handlers. Later
// connections on either delegate do not affect the other.
func (d *Delegate) clone() *Delegate {
	return &Delegate{handlers: append([]Handler(nil), d.handlers...)}
}

// Len reports the number of connected handlers
func (d *Delegate) Len() int {
	return len(d.handlers)
}

// Call invokes every connected handler in connection order and collects
// their status codes. An empty connected set yields an empty result list,
// which callers read as "no handler attempted this call" rather than as a
// failure.
func (d *Delegate) Call(ex *Executor, args []string) []int {
	codes := make([]int, 0, len(d.handlers))
	for _, h := range d.handlers {
		argsCopy := append([]string(nil), args...)
		codes = append(codes, h.Handle(ex, argsCopy))
	}
	return codes
}

// handlersMatch reports whether two registered handlers are the same entry.
// Handlers of comparable dynamic types match by equality; func-based
// handlers are not comparable in Go and match by code pointer instead.
func handlersMatch(a, b Handler) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	if ta.Kind() == reflect.Func {
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	return false
}
