// Package dash is the terminal front end of thermwatch.
//
// It follows the Bubble Tea architecture: Model holds the state, Update
// routes messages, View renders. The refresh machinery itself lives in
// the engine package; dash supplies the concrete widgets (stats panel,
// roster, aggregate chart, per-device charts) behind the engine's Visual
// interface and translates scheduler callbacks, fetch results, and
// keystrokes into engine calls.
//
// Messages:
//
//	cycleMsg    one refresh cycle is due (injected by the scheduler)
//	snapshotMsg the primary dashboard fetch resolved
//	seriesMsg   one per-device readings fetch resolved
//	periodMsg   the sensor cadence probe resolved
//
// The first-run tour renders as an overlay and is gated on the first
// full rebuild, so every region it describes exists before it starts.
package dash
