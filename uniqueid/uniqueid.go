// Copyright 2024 The Shadowfree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package uniqueid supplies the numeric suffixes used for globally
// unique names.
package uniqueid // import "go.shadowfree.dev/uniqueid"

// A Supplier hands out the integers 0, 1, 2, ... in order.
// The zero value is ready to use.
//
// A Supplier is not safe for concurrent use; callers that rename
// several files concurrently must give each its own Supplier.
type Supplier struct {
	next int
}

// Next returns the next integer in the sequence.
func (s *Supplier) Next() int {
	n := s.next
	s.next++
	return n
}

// Reset restarts the sequence at zero.
func (s *Supplier) Reset() { s.next = 0 }
