package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Compare orders two semantic versions. It returns a positive number when a
// is newer than b, a negative one when older and zero when they are the same
// release. A leading "v" on either side is tolerated.
func Compare(a, b string) (int, error) {
	av, err := parts(a)
	if err != nil {
		return 0, err
	}

	bv, err := parts(b)
	if err != nil {
		return 0, err
	}

	for i := range av {
		if av[i] != bv[i] {
			return av[i] - bv[i], nil
		}
	}

	return 0, nil
}

// parts splits "major.minor.patch" into its numeric components.
func parts(v string) ([3]int, error) {
	var out [3]int

	fields := strings.SplitN(strings.TrimPrefix(v, "v"), ".", 3)
	if len(fields) != 3 {
		return out, fmt.Errorf("malformed version %q", v)
	}

	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return out, fmt.Errorf("malformed version %q: %w", v, err)
		}
		out[i] = n
	}

	return out, nil
}
