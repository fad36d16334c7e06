package sizeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSize - size string is not '<number><unit>'.
var ErrInvalidSize = errors.New("invalid size")

var units = []struct {
	suffix string
	shift  uint
}{
	{"GB", 30},
	{"MB", 20},
	{"KB", 10},
	{"B", 0},
}

// ParseSize - converts strings like "4KB", "10mb" or "200B" into bytes.
func ParseSize(input string) (int, error) {
	upper := strings.ToUpper(strings.TrimSpace(input))
	for _, unit := range units {
		number, ok := strings.CutSuffix(upper, unit.suffix)
		if !ok {
			continue
		}

		value, err := strconv.Atoi(number)
		if err != nil || value < 0 {
			return 0, fmt.Errorf("%w '%s'", ErrInvalidSize, input)
		}

		return value << unit.shift, nil
	}

	return 0, fmt.Errorf("%w '%s': unknown unit", ErrInvalidSize, input)
}
