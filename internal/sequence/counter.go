// Package sequence persists the remito numbering counter. The counter hands
// out strictly increasing numbers; a number taken for a document that later
// fails to render stays consumed, gaps in the sequence are acceptable.
package sequence

import "fmt"

// Format renders a remito number as a zero-padded 4-digit string. Values past
// 9999 simply widen.
func Format(n int) string {
	return fmt.Sprintf("%04d", n)
}
