// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package poller keeps the vote app's view of the question table fresh.

A Feed holds the latest read of the question worksheet. A Scheduler re-reads
it on a fixed interval:

	feed := poller.NewFeed(st)
	sched := poller.NewScheduler(slog.Default(), 10*time.Second)
	sched.Every("questions", 3*time.Second, feed.Refresh)
	sched.Start()
	defer sched.Stop(ctx)

Participants observe an activation no later than one interval plus one read
after it is written. Long-poll handlers block in Feed.Wait until the active
question changes.
*/
package poller
