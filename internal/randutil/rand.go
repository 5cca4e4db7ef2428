// Package randutil centralises how seeded random sources are derived so that
// sessions, bots and identifiers replay identically for a given seed.
package randutil

import (
	"io"
	rand "math/rand/v2"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns the seed of an independent sub-stream, e.g. one per session
// of a simulation or one per player of a session.
func Derive(seed int64, stream int) int64 {
	return int64(mix(uint64(seed) ^ mix(uint64(stream)+goldenRatio64)))
}

// Reader adapts rng to an io.Reader producing its byte stream.
func Reader(rng *rand.Rand) io.Reader {
	return reader{rng: rng}
}

type reader struct {
	rng *rand.Rand
}

func (r reader) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := r.rng.Uint64()
		for j := i; j < len(p) && j < i+8; j++ {
			p[j] = byte(v)
			v >>= 8
		}
	}
	return len(p), nil
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
