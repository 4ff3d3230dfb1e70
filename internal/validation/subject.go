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

package validation

import "fmt"

// SubjectValidator validates a publish subject derived from a store key.
// A valid subject contains no wildcard characters ('+' or '#') and no
// empty '/'-delimited segments, leading or trailing.
type SubjectValidator struct {
	subject string
}

var _ Validator = (*SubjectValidator)(nil)

// NewSubjectValidator creates an instance of SubjectValidator
func NewSubjectValidator(subject string) *SubjectValidator {
	return &SubjectValidator{subject: subject}
}

// Validate implements Validator.
func (v *SubjectValidator) Validate() error {
	segmentLength := 0
	for _, c := range v.subject {
		switch c {
		case '+', '#':
			return fmt.Errorf("invalid subject=(%s): wildcard characters are not allowed", v.subject)
		case '/':
			if segmentLength == 0 {
				return fmt.Errorf("invalid subject=(%s): empty segment", v.subject)
			}
			segmentLength = 0
		default:
			segmentLength++
		}
	}

	if segmentLength == 0 {
		return fmt.Errorf("invalid subject=(%s): empty segment", v.subject)
	}
	return nil
}
