// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rename implements the α-rename machinery of §4.4: a process-wide
// pool of fresh, collision-free identifiers and a scope-stacked symbol
// table mapping source names to aliases.
package rename

import (
	"crypto/rand"
	"sync"
)

// alphabet matches the teacher's own "large alphabetic alphabet" choice;
// fixed length avoids any risk of colliding with a short, common source
// identifier.
const (
	alphabet   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	aliasLen   = 16
	maxRetries = 1 << 20
)

// Pool is a process-wide, goroutine-safe set of already-issued fresh
// identifiers. §5 specifies fresh-name allocation as atomic by
// construction (insert-if-absent); Pool's mutex is what actually makes
// that true once the driver fans batches out across goroutines.
type Pool struct {
	mu     sync.Mutex
	issued map[string]struct{}
	taken  func(string) bool // optional: reject names already used by the source itself
}

// NewPool returns an empty pool. taken, if non-nil, is consulted in
// addition to the pool's own issued set, so fresh names never collide with
// identifiers already present in the translation unit being rewritten.
func NewPool(taken func(string) bool) *Pool {
	return &Pool{issued: make(map[string]struct{}), taken: taken}
}

// Fresh draws a new name by rejection sampling against the pool (and the
// optional taken predicate), inserts it, and returns it. It panics if no
// fresh name could be found after maxRetries attempts — per §7(d), fresh
// name exhaustion is an internal invariant violation, not a recoverable
// error, and should not occur under any realistic translation unit given
// len(alphabet)^aliasLen candidates.
func (p *Pool) Fresh() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := 0; i < maxRetries; i++ {
		candidate := randomName()
		if _, dup := p.issued[candidate]; dup {
			continue
		}
		if p.taken != nil && p.taken(candidate) {
			continue
		}
		p.issued[candidate] = struct{}{}
		return candidate
	}
	panic("rename: exhausted rename pool without finding a fresh identifier")
}

func randomName() string {
	buf := make([]byte, aliasLen)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand.Read on the standard reader does not fail in
		// practice; if it ever does, there is no sane fresh name to
		// return.
		panic("rename: crypto/rand unavailable: " + err.Error())
	}
	out := make([]byte, aliasLen)
	for i, b := range buf {
		out[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(out)
}
