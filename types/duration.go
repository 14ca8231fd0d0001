package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration wraps time.Duration so the config windows and timelock delays
// round-trip through JSON as human-readable strings ("72h", "30m") instead
// of nanosecond integers.
type Duration struct {
	time.Duration
}

// NewDuration wraps a time.Duration.
func NewDuration(d time.Duration) Duration {
	return Duration{Duration: d}
}

// ParseDuration parses a string in the time.Duration format.
func ParseDuration(s string) (Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return Duration{}, err
	}

	return NewDuration(d), nil
}

// MustParseDuration is ParseDuration panicking on invalid input. Test
// fixtures only.
func MustParseDuration(s string) Duration {
	d, err := ParseDuration(s)
	if err != nil {
		panic(err)
	}

	return d
}

func (d Duration) String() string {
	return d.Duration.String()
}

// MarshalJSON implements json.Marshaler, encoding as a duration string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler. Only duration strings are
// accepted; bare numbers are rejected rather than guessed at as a unit.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string: %s", string(b))
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = parsed

	return nil
}
