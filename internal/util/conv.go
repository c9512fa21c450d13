package util

import (
	"strconv"
)

// ParseUint converts a decimal path or query parameter to an ID.
func ParseUint(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
