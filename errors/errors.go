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

// Package errors defines the sentinel errors shared across confsync packages.
// Callers are expected to test for them with errors.Is since the various
// components wrap them with additional context.
package errors

import "errors"

var (
	// ErrConfigNil is returned when a component is created with a nil configuration.
	ErrConfigNil = errors.New("config is nil")

	// ErrKeyNotFound is returned when a single-key read resolves to no entry.
	// It is distinguishable from transport errors; callers that can live
	// without the key should test for it with errors.Is.
	ErrKeyNotFound = errors.New("key does not exist")

	// ErrLineSplit is returned when a flat configuration line cannot be split
	// into a key and a value.
	ErrLineSplit = errors.New("line cannot be split into key and value")

	// ErrValueCast is returned when a configuration value cannot be converted
	// to the requested type.
	ErrValueCast = errors.New("value cannot be cast to requested type")

	// ErrInvalidSubject is returned when a store key cannot be mapped to a
	// valid publish subject.
	ErrInvalidSubject = errors.New("key cannot be mapped to a valid subject")
)
