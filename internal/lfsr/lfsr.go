// Package lfsr implements the 16-bit linear-feedback shift register that seeds
// level layout and agent headings.
package lfsr

// State is the 16-bit register.
type State uint16

// InitialSeed fixes the default level layout. Tests pass other seeds to the
// constructors instead of changing it.
const InitialSeed State = 0x8988

// Advance shifts the register right by one, feeding bit 9 xor bit 1 into bit 15.
func Advance(s State) State {
	bit := ((s >> 9) ^ (s >> 1)) & 1
	return bit<<15 | s>>1
}

// Emit returns the byte a state contributes: its high half.
func Emit(s State) byte {
	return byte(s >> 8)
}

// Seeds returns n consecutive states starting at start (start included).
// It is the one-time precompute used for static grids.
func Seeds(start State, n int) []State {
	if n <= 0 {
		return nil
	}
	out := make([]State, n)
	s := start
	for i := range out {
		out[i] = s
		s = Advance(s)
	}
	return out
}

// Sequence is the runtime generator, for randomness needed after start-up.
// The zero value is a legal, degenerate sequence that emits zeros forever.
type Sequence struct {
	s State
}

// New creates a sequence positioned at seed.
func New(seed State) *Sequence {
	return &Sequence{s: seed}
}

// State returns the current register.
func (q *Sequence) State() State {
	return q.s
}

// Cycle advances the register once.
func (q *Sequence) Cycle() {
	q.s = Advance(q.s)
}

// Byte emits from the current state without advancing.
func (q *Sequence) Byte() byte {
	return Emit(q.s)
}

// Next advances, then emits.
func (q *Sequence) Next() byte {
	q.Cycle()
	return q.Byte()
}

// Orbit walks from seed until a state repeats and reports the length of the
// lead-in before the cycle and the cycle length.
func Orbit(seed State) (transient, period int) {
	seen := make(map[State]int, 1<<16)
	s := seed
	for i := 0; ; i++ {
		if at, ok := seen[s]; ok {
			return at, i - at
		}
		seen[s] = i
		s = Advance(s)
	}
}
