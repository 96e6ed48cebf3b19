package version

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Compare orders two "major.minor.patch" versions, with or without a "v" prefix. It returns 1
// when a is newer, -1 when b is newer and 0 when they are equal.
func Compare(a, b string) (int, error) {
	av, err := parseVersion(a)
	if err != nil {
		return 0, err
	}

	bv, err := parseVersion(b)
	if err != nil {
		return 0, err
	}

	return slices.Compare(av, bv), nil
}

func parseVersion(s string) ([]int, error) {
	parts := strings.Split(strings.TrimPrefix(strings.TrimSpace(s), "v"), ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("malformed version %q", s)
	}

	numbers := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("malformed version %q", s)
		}
		numbers[i] = n
	}
	return numbers, nil
}
