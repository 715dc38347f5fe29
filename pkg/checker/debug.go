package checker

import (
	"fmt"
	"os"
)

const checkerDebug = false

// debugPrintf mirrors the teacher's pkg/checker debug helper: gated by a
// compile-time const rather than a logging dependency, because the
// teacher never reaches for one either.
func debugPrintf(format string, args ...interface{}) {
	if checkerDebug {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format, args...)
	}
}
