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

// Package properties loads flat key=value configuration files of the kind
// consumed by message broker clients. Every non-comment line must split
// into a key and a value.
package properties

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/magiconair/properties"

	"github.com/bwsoft/confsync/conf"
	gerrors "github.com/bwsoft/confsync/errors"
)

// Config holds a loaded flat configuration. Key order follows the file.
type Config struct {
	props *properties.Properties
}

// Load reads and parses the file at filePath.
func Load(filePath string) (*Config, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("properties: failed to read %q: %w", filePath, err)
	}

	if err := validateLines(raw); err != nil {
		return nil, err
	}

	props, err := properties.Load(raw, properties.UTF8)
	if err != nil {
		return nil, fmt.Errorf("properties: failed to parse %q: %w", filePath, err)
	}
	return &Config{props: props}, nil
}

// Get returns the value stored under key and whether the key exists.
func (c *Config) Get(key string) (string, bool) {
	return c.props.Get(key)
}

// Keys returns every key in file order.
func (c *Config) Keys() []string {
	return c.props.Keys()
}

// Len returns the number of keys.
func (c *Config) Len() int {
	return c.props.Len()
}

// Operations converts the loaded configuration into store writes rooted at
// base, one Set per key in file order. Seeding a store from a file is then
// a single Apply call.
func (c *Config) Operations(base string) []conf.Operation {
	keys := c.props.Keys()
	ops := make([]conf.Operation, 0, len(keys))
	for _, key := range keys {
		value, _ := c.props.Get(key)
		ops = append(ops, conf.Set{Key: path.Join(base, key), Value: value})
	}
	return ops
}

func validateLines(raw []byte) error {
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		key, _, found := strings.Cut(line, "=")
		if !found || strings.TrimSpace(key) == "" {
			return fmt.Errorf("properties: line %q: %w", line, gerrors.ErrLineSplit)
		}
	}
	return nil
}
