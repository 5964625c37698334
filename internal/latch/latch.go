// Package latch provides a sticky, edge-triggered flag shared between an
// asynchronous notification source and the control loop. It is the only
// place true concurrency exists in the daemon: GPIO edge handlers run on
// their own goroutine and may fire at any point, including mid-evaluation.
package latch

import "sync/atomic"

// Latch is a sticky boolean set by OnEdge and cleared by Consume.
// One writer role (the edge handler) and one reader role (the loop); a
// single atomic word is the whole synchronization story, so no edge is
// ever lost and no torn read can occur.
//
// The zero value is ready to use.
type Latch struct {
	flag atomic.Bool
}

// OnEdge records that an edge fired. Safe to call from any goroutine,
// concurrently with Consume. Multiple edges between consumes collapse
// into one, which is all the evaluator needs.
func (l *Latch) OnEdge() {
	l.flag.Store(true)
}

// Consume reports whether an edge fired since the last Consume and
// atomically clears the flag. An edge arriving after the swap is
// observed on the next Consume at the latest.
func (l *Latch) Consume() bool {
	return l.flag.Swap(false)
}

// Set reports whether the flag is currently set, without clearing it.
// For status display only; the evaluator must use Consume.
func (l *Latch) Set() bool {
	return l.flag.Load()
}
