// Package engine implements the refresh-and-reconciliation core of the
// dashboard: the logic that decides, each cycle, what visual state must
// change and applies those changes through a managed set of visual handles.
//
// The engine is deliberately UI-agnostic. It never imports a rendering
// library; concrete widgets enter through the Visual capability interface
// and a VisualFactory, so the same engine drives the terminal dashboard and
// the fakes used in tests.
//
// # Components
//
// Reconcile compares the device id set of a fresh snapshot against the set
// that is currently rendered and produces a Plan: either an in-place update
// of every existing device, or a full rebuild that destroys every per-device
// visual and recreates the set from scratch. Membership changes always take
// the full-rebuild path. Visuals are cheap to recreate, and rebuilding the
// whole set keeps the bookkeeping trivial compared to a minimal add/remove
// diff.
//
// Manager owns the key to visual-handle map. Creation is idempotent,
// destruction is tolerant of absent keys, and exactly one handle exists per
// key at any time. Singleton regions (stats, roster, aggregate chart) live
// under the "region/" prefix and are never swept by a per-device
// DestroyAll.
//
// Scheduler drives the cycle cadence. Changing the interval fires one cycle
// immediately and then re-arms, so the user sees the effect of an interval
// change without waiting out the old timer. An interval of zero disables
// periodic firing; TriggerNow still works.
//
// Engine ties the pieces together and owns the rendered-set ground truth.
// It applies plans destroy-before-create, keeps the last good snapshot on
// subsequent fetch failures, and discards late per-device series results
// whose visual has since been destroyed.
//
// All engine state is mutated from a single goroutine (the Bubble Tea
// update loop in production). The Scheduler is the only concurrent piece;
// it synchronizes internally and communicates solely through its notify
// callback.
package engine
