package tray

import (
	"fmt"
	"strconv"
	"strings"
)

// Readout is the tray's displayed state at one instant.
//
// Postcondition: Total == sum of Values[i] for which Set[i].
type Readout struct {
	Kinds   []string // die names in z order, e.g. "d20"
	Values  []int    // displayed values; meaningful only where Set is true
	Set     []bool
	Total   int
	Settled bool
}

// Readout captures the current readout.
func (t *Tray) Readout() Readout {
	t.mu.Lock()
	defer t.mu.Unlock()
	r := Readout{
		Kinds:   make([]string, len(t.dice)),
		Values:  make([]int, len(t.dice)),
		Set:     make([]bool, len(t.dice)),
		Total:   total(t.dice),
		Settled: true,
	}
	for i, d := range t.dice {
		r.Kinds[i] = d.Kind.String()
		r.Values[i], r.Set[i] = d.Value()
		if d.spinning {
			r.Settled = false
		}
	}
	return r
}

// String renders the readout as "d20 d6 → [14 3] = 17"; unset faces show as "-".
func (r Readout) String() string {
	vals := make([]string, len(r.Values))
	for i, v := range r.Values {
		if r.Set[i] {
			vals[i] = strconv.Itoa(v)
		} else {
			vals[i] = "-"
		}
	}
	return fmt.Sprintf("%s → [%s] = %d", strings.Join(r.Kinds, " "), strings.Join(vals, " "), r.Total)
}
