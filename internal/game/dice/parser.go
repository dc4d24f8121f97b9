package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxCount bounds how many dice a single expression may add to a tray.
const MaxCount = 32

// Expression is a parsed "NdK" term naming Count dice of one Kind.
//
// Invariant: 1 <= Count <= MaxCount and Kind.Valid() after successful Parse.
type Expression struct {
	Raw   string // original input string
	Count int    // number of dice
	Kind  Kind   // die kind
}

// Parse parses a dice term such as "d20" or "3d6".
//
// Precondition: expr must be a non-empty string.
// Postcondition: Returns a valid Expression or a descriptive error.
func Parse(expr string) (Expression, error) {
	if expr == "" {
		return Expression{}, fmt.Errorf("dice: empty expression")
	}
	s := strings.ToLower(strings.TrimSpace(expr))

	dIdx := strings.Index(s, "d")
	if dIdx < 0 {
		return Expression{}, fmt.Errorf("dice: missing 'd' in expression %q", expr)
	}

	// Count defaults to 1 when omitted.
	count := 1
	if countStr := s[:dIdx]; countStr != "" {
		var err error
		count, err = strconv.Atoi(countStr)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: %w", expr, err)
		}
		if count < 1 || count > MaxCount {
			return Expression{}, fmt.Errorf("dice: die count in %q must be 1-%d", expr, MaxCount)
		}
	}

	kind, err := ParseKind(s[dIdx:])
	if err != nil {
		return Expression{}, err
	}
	return Expression{Raw: expr, Count: count, Kind: kind}, nil
}

// Kinds expands e into Count copies of its Kind.
func (e Expression) Kinds() []Kind {
	out := make([]Kind, e.Count)
	for i := range out {
		out[i] = e.Kind
	}
	return out
}

// ParseList parses a whitespace- or comma-separated list of terms, e.g.
// "d20 2d6", and returns the dice in the order written.
func ParseList(list string) ([]Kind, error) {
	fields := strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("dice: empty dice list")
	}
	var kinds []Kind
	for _, f := range fields {
		e, err := Parse(f)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, e.Kinds()...)
	}
	return kinds, nil
}

// MustParse parses expr and panics on error. Useful for package-level defaults.
//
// Precondition: expr must be a valid dice term.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse failed for expression " + expr + ": " + err.Error())
	}
	return e
}
