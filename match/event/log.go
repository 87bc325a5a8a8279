package event

import "sync"

// Log is the append-only event sequence of a match. Insertion order is
// significant for replay; the core only appends, never rewinds.
type Log struct {
	mutex  sync.Mutex
	events []Event
}

func NewLog() *Log {
	return &Log{
		events: make([]Event, 0),
	}
}

func (l *Log) Append(e Event) {
	l.mutex.Lock()
	l.events = append(l.events, e)
	l.mutex.Unlock()
}

// Events returns a copy of the log; callers cannot alter the sequence.
func (l *Log) Events() []Event {
	l.mutex.Lock()
	res := make([]Event, len(l.events))
	copy(res, l.events)
	l.mutex.Unlock()

	return res
}

func (l *Log) Len() int {
	l.mutex.Lock()
	n := len(l.events)
	l.mutex.Unlock()

	return n
}
