// Package assemble performs the final concatenation spec.md §4.7
// describes: preamble, generated body, epilogue, into one self-contained
// host-script string. Grounded on the teacher's GenerateGo, whose own
// single buf.String() return is the same "one auditable spot" this
// package exists to be.
package assemble

import "strings"

// Assemble concatenates preamble, body and epilogue into the final
// artifact string.
func Assemble(preamble, body, epilogue string) string {
	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString(body)
	b.WriteString(epilogue)
	return b.String()
}
