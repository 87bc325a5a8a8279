package resolver

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/state"
)

// contestRoll derives a uniform number in [0,1) from the match seed, the
// tick index and both contestant ids. Wall-clock time never enters: the
// same contest in the same replay always rolls the same value, while
// different ticks and pairings still look stochastic.
func contestRoll(seed uint64, tick uint64, a state.PlayerID, b state.PlayerID) float64 {
	buf := make([]byte, 32)

	binary.LittleEndian.PutUint64(buf[0:], seed)
	binary.LittleEndian.PutUint64(buf[8:], tick)
	binary.LittleEndian.PutUint64(buf[16:], uint64(int64(a)))
	binary.LittleEndian.PutUint64(buf[24:], uint64(int64(b)))

	h := xxhash.Sum64(buf)

	// keep 53 bits so the float64 mantissa holds the value exactly
	return float64(h>>11) / float64(1<<53)
}
