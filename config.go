package malloc

import "runtime"
import "strings"

// Settings carries the allocator's tunables. Keys follow the allocator's
// own vocabulary (page.size, arena.count, ...) rather than a generic
// config schema; see DefaultSettings for the full key list.
type Settings map[string]interface{}

// Section returns a new Settings holding only the keys with the given
// prefix.
func (setts Settings) Section(prefix string) Settings {
	section := make(Settings)
	for key, value := range setts {
		if strings.HasPrefix(key, prefix) {
			section[key] = value
		}
	}
	return section
}

// Mixin overrides setts with whatever keys are present in the supplied
// settings/maps, applied left to right.
func (setts Settings) Mixin(others ...interface{}) Settings {
	apply := func(src map[string]interface{}) {
		for key, value := range src {
			setts[key] = value
		}
	}
	for _, other := range others {
		switch val := other.(type) {
		case Settings:
			apply(map[string]interface{}(val))
		case map[string]interface{}:
			apply(val)
		}
	}
	return setts
}

// Bool returns the boolean value for key, panicking if key is missing or
// not a bool.
func (setts Settings) Bool(key string) bool {
	value, ok := setts[key]
	if !ok {
		panicerr("missing config %q", key)
	}
	val, ok := value.(bool)
	if !ok {
		panicerr("config %q not a bool: %T", key, value)
	}
	return val
}

// Int64 returns the integer value for key, panicking if key is missing or
// not a number.
func (setts Settings) Int64(key string) int64 {
	value, ok := setts[key]
	if !ok {
		panicerr("missing config %q", key)
	}
	switch val := value.(type) {
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case int64:
		return val
	case uint:
		return int64(val)
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case uint64:
		return int64(val)
	case float32:
		return int64(val)
	case float64:
		return int64(val)
	}
	panicerr("config %q not a number: %T", key, value)
	return 0
}

// String returns the string value for key, panicking if key is missing or
// not a string.
func (setts Settings) String(key string) string {
	value, ok := setts[key]
	if !ok {
		panicerr("missing config %q", key)
	}
	val, ok := value.(string)
	if !ok {
		panicerr("config %q not a string: %T", key, value)
	}
	return val
}

// DefaultSettings returns the allocator's tunables, as named in the
// allocator's external interface: page size, arena count, per-thread
// cache size, the mmap-min-objects-taken threshold that decides slab
// size for small classes, and the thread cache purge period.
func DefaultSettings() Settings {
	return Settings{
		"page.size":               int64(PageSize),
		"arena.count":             int64(4 * runtime.NumCPU()),
		"tcache.size":             int64(DefaultThreadCacheSize),
		"bin.mmap.minobjects":     int64(DefaultMmapMinObjectsTaken),
		"tcache.purge.period.sec": int64(DefaultPurgePeriod / 1e9),
	}
}
