package client

import (
	"fmt"
	"strings"
	"time"
)

// Wire layouts for timestamps. Decoding tries the fractional-seconds form
// first and falls back to whole seconds; both normalize to UTC. Encoding
// always emits fractional seconds.
const (
	timeLayoutFrac  = "2006-01-02T15:04:05.999999999Z07:00"
	timeLayoutPlain = "2006-01-02T15:04:05Z07:00"
	timeLayoutNoTZ  = "2006-01-02T15:04:05"
)

// APITime wraps time.Time with the backend's ISO-8601 conventions.
type APITime struct {
	time.Time
}

func (t APITime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format("2006-01-02T15:04:05.000Z07:00") + `"`), nil
}

func (t *APITime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range []string{timeLayoutFrac, timeLayoutPlain, timeLayoutNoTZ} {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}
