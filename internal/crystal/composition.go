package crystal

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// ElementAmount is one entry of a Composition.
type ElementAmount struct {
	Element string
	Amount  float64
}

// Composition is an ordered element → amount mapping.
type Composition []ElementAmount

func (c Composition) add(el string, amt float64) Composition {
	for i := range c {
		if c[i].Element == el {
			c[i].Amount += amt
			return c
		}
	}
	return append(c, ElementAmount{Element: el, Amount: amt})
}

// Amount returns the amount of el, zero when absent.
func (c Composition) Amount(el string) float64 {
	for _, e := range c {
		if e.Element == el {
			return e.Amount
		}
	}
	return 0
}

// NumAtoms is the total amount over all elements.
func (c Composition) NumAtoms() float64 {
	var n float64
	for _, e := range c {
		n += e.Amount
	}
	return n
}

// String renders the full formula, e.g. "Li1 Co1 O2" or "Si2".
func (c Composition) String() string {
	parts := make([]string, 0, len(c))
	for _, e := range c {
		parts = append(parts, e.Element+formatAmount(e.Amount))
	}
	return strings.Join(parts, " ")
}

// ReducedFormula divides integral amounts by their gcd and drops ones,
// e.g. Si2 → "Si", Li2 Co2 O4 → "LiCoO2".
func (c Composition) ReducedFormula() string {
	div := 0
	for _, e := range c {
		n, ok := integral(e.Amount)
		if !ok {
			div = 1
			break
		}
		div = gcd(div, n)
	}
	if div == 0 {
		div = 1
	}
	var b strings.Builder
	for _, e := range c {
		b.WriteString(e.Element)
		amt := e.Amount / float64(div)
		if amt != 1 {
			b.WriteString(formatAmount(amt))
		}
	}
	return b.String()
}

func integral(f float64) (int, bool) {
	r := math.Round(f)
	if math.Abs(f-r) > 1e-8 || r <= 0 {
		return 0, false
	}
	return int(r), true
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func formatAmount(f float64) string {
	if n, ok := integral(f); ok {
		return strconv.Itoa(n)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// sortedElements orders a site's elements by descending occupancy, then by
// symbol, so the dominant species comes first.
func sortedElements(occ map[string]float64) []string {
	els := make([]string, 0, len(occ))
	for el := range occ {
		els = append(els, el)
	}
	sort.Slice(els, func(i, j int) bool {
		if occ[els[i]] != occ[els[j]] {
			return occ[els[i]] > occ[els[j]]
		}
		return els[i] < els[j]
	})
	return els
}
