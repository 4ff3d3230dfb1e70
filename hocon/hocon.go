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

// Package hocon loads hierarchical configuration files and resolves values
// by '/'-separated paths, the same path shape used for store keys.
package hocon

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gurkankaymak/hocon"

	gerrors "github.com/bwsoft/confsync/errors"
)

// Config wraps a parsed document.
type Config struct {
	root *hocon.Config
}

// Load parses the file at path.
func Load(path string) (*Config, error) {
	root, err := hocon.ParseResource(path)
	if err != nil {
		return nil, fmt.Errorf("hocon: failed to load %q: %w", path, err)
	}
	return &Config{root: root}, nil
}

// String resolves path to a string value. Objects, arrays and null values
// are not convertible and yield gerrors.ErrValueCast.
func (c *Config) String(path string) (string, error) {
	value, err := c.value(path)
	if err != nil {
		return "", err
	}

	switch value.(type) {
	case hocon.String, hocon.Int, hocon.Float64, hocon.Boolean:
		return strings.Trim(value.String(), `"`), nil
	default:
		return "", castError(path, "string")
	}
}

// Int64 resolves path to a signed integer. Quoted numbers are accepted.
func (c *Config) Int64(path string) (int64, error) {
	value, err := c.value(path)
	if err != nil {
		return 0, err
	}

	switch v := value.(type) {
	case hocon.Int:
		return int64(v), nil
	case hocon.String:
		parsed, err := strconv.ParseInt(strings.Trim(v.String(), `"`), 10, 64)
		if err != nil {
			return 0, castError(path, "int64")
		}
		return parsed, nil
	default:
		return 0, castError(path, "int64")
	}
}

// Uint64 resolves path to an unsigned integer. Negative values are not
// convertible and yield gerrors.ErrValueCast.
func (c *Config) Uint64(path string) (uint64, error) {
	parsed, err := c.Int64(path)
	if err != nil {
		return 0, err
	}
	if parsed < 0 {
		return 0, castError(path, "uint64")
	}
	return uint64(parsed), nil
}

func (c *Config) value(path string) (hocon.Value, error) {
	value := c.root.Get(strings.ReplaceAll(path, "/", "."))
	if value == nil {
		return nil, fmt.Errorf("hocon: path %q: %w", path, gerrors.ErrKeyNotFound)
	}
	if _, isNull := value.(hocon.Null); isNull {
		return nil, fmt.Errorf("hocon: path %q: %w", path, gerrors.ErrKeyNotFound)
	}
	return value, nil
}

func castError(path, target string) error {
	return fmt.Errorf("hocon: path %q is not a %s: %w", path, target, gerrors.ErrValueCast)
}
