package collision

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Flags is a bitmask of collision categories used to filter queries.
type Flags uint32

const (
	Solid Flags = 1 << iota
	Hurt
	Ladder
)

var flagNames = [...]string{"solid", "hurt", "ladder"}

// Has reports whether f carries every bit of q. A zero q matches anything.
func (f Flags) Has(q Flags) bool {
	return f&q == q
}

// Names returns the names of the known bits set in f.
func (f Flags) Names() []string {
	var out []string
	for i, name := range flagNames {
		if f&(1<<i) != 0 {
			out = append(out, name)
		}
	}
	return out
}

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	return strings.Join(f.Names(), "|")
}

// ParseFlags resolves flag names such as "solid" into a mask.
func ParseFlags(names ...string) (Flags, error) {
	var f Flags
	for _, n := range names {
		found := false
		for i, name := range flagNames {
			if strings.EqualFold(n, name) {
				f |= 1 << i
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown collision flag %q", n)
		}
	}
	return f, nil
}

// MarshalJSON writes the flags by name.
func (f Flags) MarshalJSON() ([]byte, error) {
	names := f.Names()
	if names == nil {
		names = []string{}
	}
	return json.Marshal(names)
}

// UnmarshalJSON accepts either a bitmask number or a list of names.
func (f *Flags) UnmarshalJSON(data []byte) error {
	var mask uint32
	if err := json.Unmarshal(data, &mask); err == nil {
		*f = Flags(mask)
		return nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("collision flags: %w", err)
	}
	parsed, err := ParseFlags(names...)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
