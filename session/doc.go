// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session tracks participants of the vote app.

A session starts unidentified. After Identify it is waiting, answering or
answered depending on the active question:

	s := reg.Create()
	_ = s.Identify(models.Identity{StudentID: "2025001", Name: "김민준"})
	view := s.View(&active)

Submit appends one response row per question per session. A second submit to
the same question fails with ErrAlreadyAnswered. The guard is process-local;
a participant who resets or opens another browser gets a fresh session and
can answer again.

Reset discards the session and returns a new one with another id. Sweep
removes sessions that have been idle longer than the configured TTL, which
also releases any long-poll waiting on Done.
*/
package session
