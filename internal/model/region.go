package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRegion is returned by ParseRegion for unsupported region codes.
var ErrUnknownRegion = errors.New("unknown region")

// Region identifies the state a store operates in. The network currently
// covers exactly two states; ParseRegion rejects anything else.
type Region string

const (
	RegionPR Region = "PR"
	RegionSP Region = "SP"
)

// Regions lists every supported region in display order.
func Regions() []Region {
	return []Region{RegionPR, RegionSP}
}

// ParseRegion validates a region code, accepting lower- and mixed-case input.
func ParseRegion(code string) (Region, error) {
	switch Region(strings.ToUpper(strings.TrimSpace(code))) {
	case RegionPR:
		return RegionPR, nil
	case RegionSP:
		return RegionSP, nil
	default:
		return "", fmt.Errorf("%w %q (supported: PR, SP)", ErrUnknownRegion, code)
	}
}

// DisplayName returns the human-readable state name used in flyer headings.
func (r Region) DisplayName() string {
	switch r {
	case RegionPR:
		return "Paraná"
	case RegionSP:
		return "São Paulo"
	default:
		return string(r)
	}
}

// Valid reports whether r is one of the supported region codes.
func (r Region) Valid() bool {
	return r == RegionPR || r == RegionSP
}
