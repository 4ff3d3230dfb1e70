// MIT License
//
// Copyright (c) 2022-2026 ConfSync Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package conf

import (
	"context"
	"fmt"
	"time"
)

// ChangeSink receives change notifications for the watched prefix: a Set
// per observed put (WithLease reflecting the stored lease attachment) and a
// DelKey per observed delete. Implementations must return quickly or block
// cooperatively; the monitor loop waits for each call to return before
// proceeding and never calls the sink concurrently with itself.
type ChangeSink interface {
	Notify(ctx context.Context, op Operation) error
}

// OperationSource supplies locally-decided mutations. It is polled once per
// monitor iteration; returning no operations is the normal, frequent case.
type OperationSource interface {
	Ops(ctx context.Context) ([]Operation, error)
}

// Monitor watches prefix and reconciles remote and local state until the
// watch ends or a step fails.
//
// On entry the client's lease is granted if absent, and a baseline snapshot
// of the watched prefix is pushed to the sink (one Set per entry), so the
// sink always sees the current state once even if nothing changes
// afterwards. Each iteration of the steady loop then renews the lease,
// waits up to Config.WatchTick for the next watch message, forwards any
// change events to the sink, and finally applies whatever the source
// returns. Within one iteration inbound notifications always reach the sink
// before that iteration's outgoing operations are applied.
//
// Monitor is fail-fast: the first error from keep-alive, a read, an apply or
// a collaborator terminates the loop with that error, with no retry.
// Cancellation of the watch and clean closure of the watch stream are
// successful termination; cancelling ctx returns ctx.Err().
func (c *Client) Monitor(ctx context.Context, prefix Prefix, sink ChangeSink, source OperationSource) error {
	if err := c.ensureLease(ctx); err != nil {
		return err
	}

	watch, err := c.store.Watch(ctx, prefix.Key())
	if err != nil {
		return fmt.Errorf("failed to watch prefix %q: %w", prefix.Key(), err)
	}

	if err := c.pushBaseline(ctx, prefix, sink); err != nil {
		return err
	}

	c.logger.Infof("client %s watching %s for configuration changes", c.name, prefix.Key())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// a lapsed lease silently expires every leased key, so renewal
		// happens once per tick regardless of watch traffic
		if err := c.store.LeaseKeepAlive(ctx, c.leaseID); err != nil {
			return fmt.Errorf("failed to keep lease %d alive: %w", c.leaseID, err)
		}

		select {
		case resp, ok := <-watch:
			if !ok {
				return nil
			}
			done, err := c.onWatchResponse(ctx, resp, sink)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		case <-time.After(c.config.WatchTick):
			// no change this tick
		case <-ctx.Done():
			return ctx.Err()
		}

		ops, err := source.Ops(ctx)
		if err != nil {
			return err
		}
		if err := c.Apply(ctx, ops); err != nil {
			return err
		}
	}
}

// pushBaseline resolves the watched prefix once and notifies the sink with
// the full current state before the steady loop starts.
func (c *Client) pushBaseline(ctx context.Context, prefix Prefix, sink ChangeSink) error {
	entries, err := prefix.Resolve(ctx, c.store)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		op := Set{Key: entry.Key, Value: entry.Value, WithLease: entry.Lease != 0}
		if err := sink.Notify(ctx, op); err != nil {
			return err
		}
	}
	return nil
}

// onWatchResponse translates one watch message. It reports done=true when
// the subscription was cancelled, which terminates the loop successfully.
func (c *Client) onWatchResponse(ctx context.Context, resp WatchResponse, sink ChangeSink) (bool, error) {
	if resp.Canceled {
		return true, nil
	}
	if resp.Err != nil {
		return false, resp.Err
	}
	if resp.Created {
		c.logger.Debugf("client %s watcher established", c.name)
		return false, nil
	}

	for _, event := range resp.Events {
		var op Operation
		switch event.Type {
		case EventPut:
			op = Set{
				Key:       event.Entry.Key,
				Value:     event.Entry.Value,
				WithLease: event.Entry.Lease != 0,
			}
		case EventDelete:
			op = DelKey{Key: event.Entry.Key}
		default:
			continue
		}
		if err := sink.Notify(ctx, op); err != nil {
			return false, err
		}
	}
	return false, nil
}
