package replay

import (
	"sync"

	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/state"
)

// Recorder consumes committed tick frames for replay verification or
// archival. Recording happens outside the hot path: the loop hands over a
// value snapshot after the tick commits.
type Recorder interface {
	RecordFrame(matchId string, frame state.Snapshot) error
	Close()
}

// EmptyRecorder drops everything; the production default.
type EmptyRecorder struct{}

func MakeEmptyRecorder() Recorder {
	return EmptyRecorder{}
}

func (r EmptyRecorder) RecordFrame(matchId string, frame state.Snapshot) error {
	return nil
}

func (r EmptyRecorder) Close() {}

// FingerprintRecorder keeps the 64-bit state digest of every frame,
// per match. Two runs of the same seeded match must produce identical
// fingerprint sequences; the determinism tests compare them.
type FingerprintRecorder struct {
	mutex  sync.Mutex
	frames map[string][]uint64
}

func MakeFingerprintRecorder() *FingerprintRecorder {
	return &FingerprintRecorder{
		frames: make(map[string][]uint64),
	}
}

func (r *FingerprintRecorder) RecordFrame(matchId string, frame state.Snapshot) error {
	r.mutex.Lock()
	r.frames[matchId] = append(r.frames[matchId], frame.Fingerprint())
	r.mutex.Unlock()

	return nil
}

func (r *FingerprintRecorder) Fingerprints(matchId string) []uint64 {
	r.mutex.Lock()
	src := r.frames[matchId]
	res := make([]uint64, len(src))
	copy(res, src)
	r.mutex.Unlock()

	return res
}

func (r *FingerprintRecorder) Close() {}
