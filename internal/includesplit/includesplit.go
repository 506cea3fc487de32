// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package includesplit implements the include splitter of §4.1: given
// preprocessed text annotated with `#line` markers and the primary file's
// original text, it separates the stream into the primary file's own code
// (discarded here — it is re-parsed from the original source) and the code
// contributed by `#include`d headers, plus the verbatim `#include`
// directives whose expansion was observed.
package includesplit

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Result holds the output of Split: the `#include` directives (verbatim,
// in the order their expansion was encountered) and the concatenated code
// contributed by those headers, with `#line` markers stripped.
type Result struct {
	Includes   []string
	HeaderCode string
}

// lineDirective matches both the `#line N "path"` form and the bare GCC
// linemarker form `# N "path" flags...` that cc -E actually emits.
var lineDirective = regexp.MustCompile(`^#\s*(?:line\s+)?(\d+)\s+"((?:[^"\\]|\\.)*)"`)

var includeDirective = regexp.MustCompile(`^\s*#\s*include\s*[<"]([^>"]+)[>"]`)

var pragmaLine = regexp.MustCompile(`_Pragma\s*\(`)

// Split partitions preprocessed (the preprocessor's annotated output) using
// original (the primary file's own source text) and primaryPath (the path
// the primary file was invoked with, used to recognize "#line N primaryPath"
// markers that re-enter the primary file's own region).
func Split(preprocessed, original, primaryPath string) Result {
	oLines := strings.Split(original, "\n")
	primaryBase := filepath.Base(primaryPath)

	var res Result
	var headerBuf strings.Builder

	inPrimary := true
	oIdx := 0 // next not-yet-scanned line of O, 0-based

	for _, line := range strings.Split(preprocessed, "\n") {
		if pragmaLine.MatchString(line) {
			continue
		}
		if m := lineDirective.FindStringSubmatch(line); m != nil {
			path := unescapePath(m[2])
			base := filepath.Base(path)
			wasPrimary := inPrimary
			inPrimary = base == primaryBase || path == primaryPath

			if wasPrimary && !inPrimary {
				if inc, next, ok := findInclude(oLines, oIdx, base); ok {
					res.Includes = append(res.Includes, inc)
					oIdx = next
				}
			}
			continue
		}

		if inPrimary {
			oIdx++
			continue
		}
		headerBuf.WriteString(line)
		headerBuf.WriteString("\n")
	}

	res.HeaderCode = headerBuf.String()
	return res
}

// findInclude scans oLines starting at from for a #include directive whose
// target basename matches headerBase, returning the directive verbatim and
// the index just past it.
func findInclude(oLines []string, from int, headerBase string) (directive string, next int, ok bool) {
	for i := from; i < len(oLines); i++ {
		m := includeDirective.FindStringSubmatch(oLines[i])
		if m == nil {
			continue
		}
		if filepath.Base(m[1]) == headerBase {
			return strings.TrimRight(oLines[i], "\r"), i + 1, true
		}
	}
	return "", from, false
}

func unescapePath(s string) string {
	return strings.ReplaceAll(s, `\\`, `\`)
}
