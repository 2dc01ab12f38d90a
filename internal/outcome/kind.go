// Package outcome defines the four quest outcomes and the vector type used
// both for chance distributions and for signed offsets over them.
package outcome

import "fmt"

// Kind is one of the four mutually exclusive quest outcomes.
type Kind uint8

const (
	Crit Kind = iota
	Success
	Failure
	Disaster

	// NumKinds is the size of the closed Kind set.
	NumKinds = 4
)

// Kinds lists every outcome in canonical order.
var Kinds = [NumKinds]Kind{Crit, Success, Failure, Disaster}

var kindNames = [NumKinds]string{"crit", "success", "failure", "disaster"}

func (k Kind) String() string {
	if int(k) < NumKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind maps a lower-case outcome name back to its Kind.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown outcome %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
