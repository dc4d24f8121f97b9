// Package dice provides die kinds, their outline geometry, and the randomness
// abstraction used by the dice tray.
package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is a polyhedral die identified by its nominal face count.
//
// Invariant: a valid Kind is one of the constants below; Kinds compare by value.
type Kind int

const (
	D4   Kind = 4
	D6   Kind = 6
	D8   Kind = 8
	D10  Kind = 10
	D12  Kind = 12
	D20  Kind = 20
	D100 Kind = 100
)

// Kinds returns every supported kind in ascending face-count order.
func Kinds() []Kind {
	return []Kind{D4, D6, D8, D10, D12, D20, D100}
}

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	switch k {
	case D4, D6, D8, D10, D12, D20, D100:
		return true
	}
	return false
}

// String returns the conventional name, e.g. "d20".
func (k Kind) String() string {
	return "d" + strconv.Itoa(int(k))
}

// FaceRange returns the inclusive range of displayable values, [1, N].
//
// Precondition: k.Valid().
func (k Kind) FaceRange() (lo, hi int) {
	return 1, int(k)
}

// Outline returns the closed polygon used for both the drawn shape and the
// collision boundary of a die of kind k.
//
// Precondition: k.Valid(); radius > 0.
// Postcondition: the same k and radius always yield the same polygon.
func (k Kind) Outline(radius float64) Polygon {
	switch k {
	case D4:
		return RegularPolygon(3, radius)
	case D6:
		return RegularPolygon(4, radius)
	case D8:
		return Kite(radius)
	case D10:
		return ElongatedHexagon(radius)
	case D12:
		return RegularPolygon(5, radius)
	case D20:
		return RegularPolygon(6, radius)
	case D100:
		return RegularPolygon(10, radius)
	}
	panic(fmt.Sprintf("dice: Outline called on unsupported kind %d", int(k)))
}

// ParseKind parses a die name such as "d20" or "D100".
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(name, "d") {
		return 0, fmt.Errorf("dice: missing 'd' in kind %q", s)
	}
	n, err := strconv.Atoi(name[1:])
	if err != nil {
		return 0, fmt.Errorf("dice: invalid die sides in %q: %w", s, err)
	}
	k := Kind(n)
	if !k.Valid() {
		return 0, fmt.Errorf("dice: unsupported die %q", s)
	}
	return k, nil
}

// Source is the randomness provider for face values, launch angles and
// palette picks.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a random float in [0, 1).
	Float64() float64
}
