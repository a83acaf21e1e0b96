/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package layout

import "sync"

// RedrawScheduler coalesces redraw requests into at most one frame in
// flight at a time: calling Request while a frame is already rendering
// doesn't start a second one, it just guarantees another frame follows the
// one in progress. This matches the single-producer idempotent scheduling
// `model.Document`'s own `sync.Mutex`-guarded object cache (grounded on)
// uses for "only one of these in flight, coalesce the rest" access — here
// applied to frames instead of cached objects.
//
// Each rendered frame is tagged with a monotonically increasing version
// token (Version), so a caller that kicks off rendering work asynchronously
// (e.g. on a worker goroutine) can discard a result that finishes after a
// newer request already superseded it.
type RedrawScheduler struct {
	mu         sync.Mutex
	requested  bool
	inProgress bool
	version    uint64
}

// Request marks a redraw as wanted. If no frame is currently rendering, it
// immediately claims one (returning true, along with that frame's version
// token) and the caller should start rendering now. If a frame is already
// in progress, Request just records that another one is wanted once the
// current frame finishes, and returns false.
func (s *RedrawScheduler) Request() (start bool, version uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requested = true
	if s.inProgress {
		return false, 0
	}
	return s.beginLocked()
}

func (s *RedrawScheduler) beginLocked() (bool, uint64) {
	s.inProgress = true
	s.requested = false
	s.version++
	return true, s.version
}

// Done reports that the frame tagged version has finished rendering. If
// another Request arrived while it was in flight, Done immediately claims
// the next frame (returning true and its version); the caller should start
// rendering again right away. A Done that does not match the frame in
// flight (no frame in progress, or a version other than the current one,
// such as a second Done for the same frame) is ignored: it returns false
// and leaves the scheduler's state unchanged.
func (s *RedrawScheduler) Done(version uint64) (start bool, nextVersion uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inProgress || version != s.version {
		return false, 0
	}
	s.inProgress = false
	if s.requested {
		return s.beginLocked()
	}
	return false, 0
}

// Version reports the most recently claimed frame's version token, usable
// by a caller that wants to discard a stale async result without going
// through Done (e.g. a render that errored out before completing).
func (s *RedrawScheduler) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}
