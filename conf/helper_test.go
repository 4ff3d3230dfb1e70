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
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bwsoft/confsync/log"
)

var errBoom = errors.New("boom")

// fakeStore is an in-memory Store used to exercise the client and the
// monitor loop without a wire transport. Mutations made while a watch is
// active are emitted as watch events, mimicking the store's change feed.
type fakeStore struct {
	mu         sync.Mutex
	entries    map[string]Entry
	watch      chan WatchResponse
	watching   bool
	leaseSeq   int64
	grants     int
	keepAlives int

	keepAliveErr error
	failPutKey   string
	closed       bool
}

var _ Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		entries: make(map[string]Entry),
		watch:   make(chan WatchResponse, 32),
	}
}

func (f *fakeStore) Get(_ context.Context, key string) (*Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if entry, ok := f.entries[key]; ok {
		return &entry, nil
	}
	return nil, nil
}

func (f *fakeStore) GetPrefix(_ context.Context, prefix string) ([]Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.entries))
	for key := range f.entries {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, f.entries[key])
	}
	return entries, nil
}

func (f *fakeStore) Put(_ context.Context, key, value string, lease int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPutKey != "" && key == f.failPutKey {
		return errBoom
	}
	entry := Entry{Key: key, Value: value, Lease: lease}
	f.entries[key] = entry
	f.emit(Event{Type: EventPut, Entry: entry})
	return nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, key)
	f.emit(Event{Type: EventDelete, Entry: Entry{Key: key}})
	return nil
}

func (f *fakeStore) DeletePrefix(_ context.Context, prefix string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key := range f.entries {
		if strings.HasPrefix(key, prefix) {
			delete(f.entries, key)
			f.emit(Event{Type: EventDelete, Entry: Entry{Key: key}})
		}
	}
	return nil
}

func (f *fakeStore) LeaseGrant(_ context.Context, _ int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.grants++
	f.leaseSeq++
	return 7000 + f.leaseSeq, nil
}

func (f *fakeStore) LeaseKeepAlive(_ context.Context, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keepAlives++
	return f.keepAliveErr
}

func (f *fakeStore) Watch(_ context.Context, _ string) (<-chan WatchResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.watching = true
	return f.watch, nil
}

func (f *fakeStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// emit must be called with f.mu held.
func (f *fakeStore) emit(event Event) {
	if !f.watching {
		return
	}
	f.watch <- WatchResponse{Events: []Event{event}}
}

func (f *fakeStore) setKeepAliveErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keepAliveErr = err
}

func (f *fakeStore) grantCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.grants
}

func (f *fakeStore) entry(key string) (Entry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[key]
	return entry, ok
}

func (f *fakeStore) preload(entries ...Entry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, entry := range entries {
		f.entries[entry.Key] = entry
	}
}

// recordingSink collects every notified operation.
type recordingSink struct {
	mu  sync.Mutex
	ops []Operation
}

func (s *recordingSink) Notify(_ context.Context, op Operation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = append(s.ops, op)
	return nil
}

func (s *recordingSink) snapshot() []Operation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Operation(nil), s.ops...)
}

func (s *recordingSink) waitFor(want Operation, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		for _, op := range s.snapshot() {
			if op == want {
				return true
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

// onceSource returns its operations on the first poll only.
type onceSource struct {
	mu    sync.Mutex
	ops   []Operation
	taken bool
}

func (s *onceSource) Ops(_ context.Context) ([]Operation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.taken {
		return nil, nil
	}
	s.taken = true
	return s.ops, nil
}

func testConfig() *Config {
	return &Config{
		Logger:    log.DiscardLogger,
		LeaseTTL:  time.Second,
		WatchTick: 10 * time.Millisecond,
	}
}
