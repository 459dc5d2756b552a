package malloc

import "errors"

// ErrOutOfMemory is raised when the operating system refuses to grow a
// mapping. Per the allocator's error taxonomy this is fatal: there is no
// reservoir of memory left to describe the failure to the caller.
var ErrOutOfMemory = errors.New("malloc.outofmemory")

// ErrInvalidFree is raised when Deallocate is given a pointer that no
// known PageDescriptor covers: one never returned by Allocate, or a large
// region already freed. A small chunk freed twice is still covered by its
// slab's descriptor and does not raise it.
var ErrInvalidFree = errors.New("malloc.invalidfree")

// ErrConfigMissing names the error of a required config key being
// absent. The Settings accessors do not return or wrap it: they panic
// with their own formatted message.
var ErrConfigMissing = errors.New("malloc.config.missing")

// ErrConfigType names the error of a config key holding a value of the
// wrong type. The Settings accessors do not return or wrap it: they
// panic with their own formatted message.
var ErrConfigType = errors.New("malloc.config.badtype")
