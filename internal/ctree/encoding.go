// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctree

import (
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// normalizeUTF8 returns data unchanged if it is already valid UTF-8.
// Otherwise it assumes the common fallback for 8-bit C sources that
// predate UTF-8 adoption, ISO-8859-1, and transcodes it: §4 never anchors
// a rewrite on byte offsets, only on parsed AST positions, so a safe,
// lossless-for-ASCII transcoding is all this needs to guarantee before the
// parser sees the bytes.
func normalizeUTF8(data []byte) ([]byte, error) {
	if utf8.Valid(data) {
		return data, nil
	}
	reader := transform.NewReader(newByteReader(data), charmap.ISO8859_1.NewDecoder())
	return io.ReadAll(reader)
}

type byteReader struct {
	data []byte
	pos  int
}

func newByteReader(data []byte) *byteReader { return &byteReader{data: data} }

func (r *byteReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
