package bench

import (
	"fmt"
	"math/rand"
	"strings"
)

type Kind int

const (
	Continuous Kind = iota
	Binary
)

func (k Kind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Binary:
		return "binary"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "continuous":
		*k = Continuous
	case "binary":
		*k = Binary
	default:
		return fmt.Errorf("unknown benchmark kind: %s", b)
	}
	return nil
}

// Descriptor is the static metadata of one benchmark.
type Descriptor struct {
	Name  string
	Dim   int
	Lower []float64
	Upper []float64
	Kind  Kind
}

// Box returns a descriptor with the same bounds on every coordinate.
func Box(name string, dim int, lower, upper float64, kind Kind) Descriptor {
	d := Descriptor{
		Name:  name,
		Dim:   dim,
		Lower: make([]float64, dim),
		Upper: make([]float64, dim),
		Kind:  kind,
	}
	for i := 0; i < dim; i++ {
		d.Lower[i] = lower
		d.Upper[i] = upper
	}
	return d
}

func (d Descriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("descriptor has no name")
	}
	if d.Dim <= 0 {
		return fmt.Errorf("%s: dimensionality must be positive, got %d", d.Name, d.Dim)
	}
	if len(d.Lower) != d.Dim || len(d.Upper) != d.Dim {
		return fmt.Errorf("%s: bounds have lengths %d/%d, want %d", d.Name, len(d.Lower), len(d.Upper), d.Dim)
	}
	for i := range d.Lower {
		if d.Lower[i] > d.Upper[i] {
			return fmt.Errorf("%s: lower bound %g exceeds upper bound %g at %d", d.Name, d.Lower[i], d.Upper[i], i)
		}
	}
	return nil
}

// Clone returns a deep copy, so callers can never alter a facade's bounds.
func (d Descriptor) Clone() Descriptor {
	c := d
	c.Lower = append([]float64(nil), d.Lower...)
	c.Upper = append([]float64(nil), d.Upper...)
	return c
}

// Center is the midpoint of the bound box.
func (d Descriptor) Center() []float64 {
	c := make([]float64, d.Dim)
	for i := range c {
		c[i] = (d.Lower[i] + d.Upper[i]) / 2
	}
	return c
}

// Contains reports the first coordinate of x outside the bounds, or -1.
func (d Descriptor) Contains(x []float64) int {
	for i, v := range x {
		if i >= d.Dim {
			break
		}
		if v < d.Lower[i] || v > d.Upper[i] {
			return i
		}
	}
	return -1
}

// Sample draws rows uniformly from the box. Binary coordinates take either
// bound with equal probability.
func (d Descriptor) Sample(rng *rand.Rand, rows int) [][]float64 {
	x := make([][]float64, rows)
	for i := range x {
		row := make([]float64, d.Dim)
		for j := range row {
			if d.Kind == Binary {
				row[j] = d.Lower[j]
				if rng.Intn(2) == 1 {
					row[j] = d.Upper[j]
				}
				continue
			}
			row[j] = d.Lower[j] + rng.Float64()*(d.Upper[j]-d.Lower[j])
		}
		x[i] = row
	}
	return x
}
