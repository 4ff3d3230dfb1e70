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

// Operation is a mutation intent to apply against the store. Operations are
// plain value objects with structural equality; they carry no store
// resources and can be constructed anywhere and applied later via
// Client.Apply. The set of implementations is closed: Set, DelKey and
// DelPrefix. A nil Operation is the no-op sentinel and is skipped by Apply.
type Operation interface {
	isOperation()
}

// Set writes Value under Key. When WithLease is true the key is attached to
// the client's lease and disappears when the lease expires; when false the
// key is permanent.
type Set struct {
	Key       string
	Value     string
	WithLease bool
}

// DelKey removes exactly one key.
type DelKey struct {
	Key string
}

// DelPrefix removes every key under Prefix.
type DelPrefix struct {
	Prefix string
}

func (Set) isOperation()       {}
func (DelKey) isOperation()    {}
func (DelPrefix) isOperation() {}
