// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

package backend

import (
	"context"
	"sync"
)

// Latest implements last-request-wins for one logical request slot.
// Begin cancels the context of the previous in-flight request before
// handing out a fresh one, so a stale response can never overwrite a
// newer one. Superseded requests fail with ErrAborted, which callers
// discard silently.
type Latest struct {
	mu     sync.Mutex
	cancel context.CancelFunc
}

// Begin supersedes any in-flight request started through this holder
// and returns a derived context for the new one. The returned cancel
// releases the context's resources and should be deferred.
func (l *Latest) Begin(ctx context.Context) (context.Context, context.CancelFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	return ctx, cancel
}

// Stop cancels the current in-flight request, if any.
func (l *Latest) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
