// Copyright 2026 The Cinline Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package includesplit_test

import (
	"strings"
	"testing"

	"github.com/cinline/cinline/internal/includesplit"
)

func TestSplitExtractsIncludeAndHeaderCode(t *testing.T) {
	original := `#include "util.h"
int main(void) { return 0; }
`
	preprocessed := `# 1 "t.c"
# 1 "util.h" 1
typedef long mylong;
# 2 "t.c" 2
int main(void) { return 0; }
`
	res := includesplit.Split(preprocessed, original, "t.c")

	if len(res.Includes) != 1 || res.Includes[0] != `#include "util.h"` {
		t.Fatalf("expected the util.h include to be recorded, got %+v", res.Includes)
	}
	if !strings.Contains(res.HeaderCode, "typedef long mylong;") {
		t.Fatalf("expected header code to contain the typedef, got %q", res.HeaderCode)
	}
	if strings.Contains(res.HeaderCode, "int main") {
		t.Fatalf("primary-file code should not appear in header code, got %q", res.HeaderCode)
	}
}

func TestSplitDropsPragmaLines(t *testing.T) {
	original := "int main(void) { return 0; }\n"
	preprocessed := `# 1 "t.c"
_Pragma("GCC diagnostic push")
int main(void) { return 0; }
`
	res := includesplit.Split(preprocessed, original, "t.c")
	if len(res.Includes) != 0 {
		t.Fatalf("expected no includes, got %+v", res.Includes)
	}
	if strings.Contains(res.HeaderCode, "_Pragma") {
		t.Fatalf("expected _Pragma lines dropped, got %q", res.HeaderCode)
	}
}
