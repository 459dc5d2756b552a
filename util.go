package malloc

import "bytes"
import "fmt"
import "os"
import "reflect"
import "runtime"
import "strconv"
import "unsafe"

// ceil returns the smallest multiple of m that is >= n. m must be a
// power of two.
func ceil(n, m int64) int64 {
	return (n + m - 1) &^ (m - 1)
}

// bytesFromPtr wraps a raw pointer and length as a []byte without
// copying, the same reflect.SliceHeader trick the allocator's ancestors
// use for bytes2str/str2bytes.
func bytesFromPtr(ptr unsafe.Pointer, n int64) []byte {
	var b []byte
	sl := (*reflect.SliceHeader)(unsafe.Pointer(&b))
	sl.Data, sl.Len, sl.Cap = uintptr(ptr), int(n), int(n)
	return b
}

// ptrFromBytes recovers the raw pointer backing a []byte previously
// returned by bytesFromPtr/Allocate.
func ptrFromBytes(b []byte) unsafe.Pointer {
	if b == nil {
		return nil
	}
	sl := (*reflect.SliceHeader)(unsafe.Pointer(&b))
	return unsafe.Pointer(sl.Data)
}

// goid returns an identifier for the calling goroutine, parsed out of
// its own stack trace header ("goroutine 123 [running]:"). It stands in
// for the thread-identity that a systems-language allocator would read
// out of thread-local storage; the allocator uses it only to key its
// thread-cache registry; it carries no other meaning and is not stable
// across a goroutine's lifetime if the runtime ever changes the format.
func goid() int64 {
	var buf [96]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		panic("malloc: unable to parse goroutine id")
	}
	id, err := strconv.ParseInt(string(fields[1]), 10, 64)
	if err != nil {
		panic(fmt.Errorf("malloc: unable to parse goroutine id: %v", err))
	}
	return id
}

// getStackTrace formats a caller's stack, skipping the innermost `skip`
// frames, for inclusion in a fatal diagnostic.
func getStackTrace(skip int, stack []byte) string {
	var buf bytes.Buffer
	lines := bytes.Split(stack, []byte("\n"))
	if skip*2 < len(lines) {
		lines = lines[skip*2:]
	}
	for _, call := range lines {
		buf.WriteString(fmt.Sprintf("%s\n", call))
	}
	return buf.String()
}

// panicerr formats and panics, in the allocator's own voice, for
// programmer-error conditions (out-of-range size-class index, bad
// config) that spec treats as unrecoverable misuse rather than a
// reportable error.
func panicerr(format string, v ...interface{}) {
	panic(fmt.Errorf(format, v...))
}

// exitFunc is the process-terminating side effect of fatal, held behind
// a variable so tests can exercise the OOM/InvalidFree path without
// killing the test binary.
var exitFunc = os.Exit

// fatal reports an operation-fatal condition (OOM, InvalidFree) through
// the logger, including a stack trace, and terminates the process. The
// allocator has no reservoir of memory left to hand the caller a
// recoverable error once the OS has refused a mapping.
func fatal(err error, context string) {
	stack := make([]byte, 8192)
	n := runtime.Stack(stack, false)
	log.Fatalf("%v: %v\n%v", context, err, getStackTrace(1, stack[:n]))
	exitFunc(1)
}
