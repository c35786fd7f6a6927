package sharemap

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// DefaultHash is the Hasher used when New is given a nil one. It dispatches
// on the key's dynamic type the way a manually-maintained key-ordering
// function has to when the key type isn't known until runtime, falling back
// to formatting the value for anything it doesn't special-case.
func DefaultHash[K comparable](key K) uint64 {
	switch v := any(key).(type) {
	case string:
		return xxhash.Sum64String(v)
	case []byte:
		return xxhash.Sum64(v)
	case int:
		return xxhash.Sum64String(strconv.FormatInt(int64(v), 10))
	case int8:
		return xxhash.Sum64String(strconv.FormatInt(int64(v), 10))
	case int16:
		return xxhash.Sum64String(strconv.FormatInt(int64(v), 10))
	case int32:
		return xxhash.Sum64String(strconv.FormatInt(int64(v), 10))
	case int64:
		return xxhash.Sum64String(strconv.FormatInt(v, 10))
	case uint:
		return xxhash.Sum64String(strconv.FormatUint(uint64(v), 10))
	case uint8:
		return xxhash.Sum64String(strconv.FormatUint(uint64(v), 10))
	case uint16:
		return xxhash.Sum64String(strconv.FormatUint(uint64(v), 10))
	case uint32:
		return xxhash.Sum64String(strconv.FormatUint(uint64(v), 10))
	case uint64:
		return xxhash.Sum64String(strconv.FormatUint(v, 10))
	default:
		return xxhash.Sum64String(fmt.Sprintf("%#v", v))
	}
}
