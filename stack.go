package guard

import (
	"fmt"
	"runtime"
	"strings"
)

// Frame represents a single call site in a captured trace.
type Frame struct {
	PC       uintptr // program counter of the call return
	File     string  // absolute file path (as provided by runtime)
	Line     int     // line number
	Function string  // fully-qualified function name (pkg.Func or method)
}

// Stack is a slice of Frames from most recent call outward. A trace is
// captured when a scope intercepts a failure and is carried explicitly on
// the replacement error rather than held in any ambient slot.
type Stack []Frame

// String renders one frame per line, most recent call first.
func (s Stack) String() string {
	var b strings.Builder
	for _, fr := range s {
		fmt.Fprintf(&b, "%s\n\t%s:%d\n", fr.Function, fr.File, fr.Line)
	}
	return b.String()
}

// defaultMaxDepth bounds capture work on exceptional paths.
const defaultMaxDepth = 64

// captureStackDefault captures a stack skipping 'skip' frames beyond the
// internal capture helpers, with the default depth bound.
func captureStackDefault(skip int) Stack {
	return captureStack(skip, defaultMaxDepth)
}

// captureStack captures up to maxDepth frames, skipping 'skip' initial frames.
// Frames are resolved via runtime.CallersFrames so inlined calls are expanded
// correctly. The +3 accounts for runtime.Callers, captureStack, and
// captureStackDefault, placing the first recorded frame at the caller.
func captureStack(skip, maxDepth int) Stack {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}

	pc := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+3, pc)
	if n == 0 {
		return nil
	}
	pc = pc[:n]

	frames := runtime.CallersFrames(pc)
	out := make(Stack, 0, n)

	for {
		fr, more := frames.Next()
		out = append(out, Frame{
			PC:       fr.PC,
			File:     fr.File,
			Line:     fr.Line,
			Function: fr.Function,
		})
		if !more {
			break
		}
	}
	return out
}
