// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// foldPool holds case folders; a cases.Caser is stateful and not safe for
// concurrent use.
var foldPool = sync.Pool{
	New: func() any {
		c := cases.Fold()
		return &c
	},
}

// Fold returns the form of a group or command name used for comparison:
// surrounding whitespace trimmed, then Unicode case-folded.
func Fold(s string) string {
	c := foldPool.Get().(*cases.Caser)
	defer foldPool.Put(c)
	return c.String(strings.TrimSpace(s))
}
