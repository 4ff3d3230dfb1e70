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

import "context"

// EventType identifies the kind of change carried by a watch event.
type EventType int

const (
	// EventPut indicates a key was created or updated.
	EventPut EventType = iota
	// EventDelete indicates a key was removed.
	EventDelete
)

// Entry is one key/value pair as stored, along with the id of the lease the
// entry is attached to. A zero lease id means the entry is permanent.
type Entry struct {
	Key   string
	Value string
	Lease int64
}

// Event is one change surfaced by a watch subscription.
type Event struct {
	Type  EventType
	Entry Entry
}

// WatchResponse is one message from a watch subscription. At most one of
// Created, Canceled and Events is meaningful per message; Err carries a
// transport failure that terminated the subscription.
type WatchResponse struct {
	Created  bool
	Canceled bool
	Events   []Event
	Err      error
}

// Store is the transport boundary between the client and a concrete
// distributed key-value store. Implementations own the wire connection; the
// client never touches the wire protocol directly, so the concrete transport
// can be swapped behind this interface.
type Store interface {
	// Get returns the entry stored under key, or nil when the key is absent.
	Get(ctx context.Context, key string) (*Entry, error)
	// GetPrefix returns every entry whose key starts with prefix, in the
	// store's lexicographic key order.
	GetPrefix(ctx context.Context, prefix string) ([]Entry, error)
	// Put writes value under key, attached to lease when lease is non-zero.
	Put(ctx context.Context, key, value string, lease int64) error
	// Delete removes exactly one key.
	Delete(ctx context.Context, key string) error
	// DeletePrefix removes every key under prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	// LeaseGrant obtains a new lease with the given time-to-live in seconds.
	LeaseGrant(ctx context.Context, ttl int64) (int64, error)
	// LeaseKeepAlive renews the lease once, resetting its expiry countdown.
	LeaseKeepAlive(ctx context.Context, lease int64) error
	// Watch subscribes to changes under prefix. The returned channel is
	// closed when the subscription ends.
	Watch(ctx context.Context, prefix string) (<-chan WatchResponse, error)
	// Close releases the transport resources.
	Close() error
}
