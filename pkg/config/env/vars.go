package env

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/torrent-hunter/pkg/stringsutil"
)

// Int reads key as an int, def when unset.
func Int(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

// Duration reads key in time.ParseDuration format, def when unset.
func Duration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// Bool is true only for the literal "true".
func Bool(key string) bool {
	return os.Getenv(key) == "true"
}

func List(key string) []string {
	return stringsutil.SplitList(os.Getenv(key))
}

// Int64List parses a comma separated list of ids.
func Int64List(key string) ([]int64, error) {
	var out []int64
	for _, s := range List(key) {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s entry %q: %w", key, s, err)
		}
		out = append(out, id)
	}
	return out, nil
}
