package magick

import (
	"fmt"
	"strconv"
)

// stringify converts a binding value into its command-line text form.
// Integers become decimal digits, byte strings are decoded as text,
// fields keep their literal name, and strings pass through unchanged.
// Other types fall through via fmt, but callers are expected to stick
// to the supported set.
func stringify(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case Field:
		return string(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	default:
		return fmt.Sprintf("%v", val)
	}
}
