// Package intern provides the three shared interning tables search reads
// from every worker goroutine: ClkInfo, Tag and TagGroup (spec §4.5).
//
// All three follow the same shape: a comparable Go value is the interning
// key, a mutex serializes the rare insert path, and an atomicArena
// publishes append-only growth behind an atomic pointer so concurrent
// lookups by id never block. Tag additionally allocates its rise/fall
// sibling pair atomically so SiblingTagID is a single XOR.
package intern
