package shape

import (
	"strings"

	"github.com/matzehuels/jigsaw/pkg/errors"
)

// Family selects the outline generator.
type Family string

const (
	Polygon Family = "polygon"
	Cloud   Family = "cloud"
	Jagged  Family = "jagged"
)

// Families lists every supported family.
var Families = []Family{Polygon, Cloud, Jagged}

// ParseFamily parses a family name, case-insensitively.
func ParseFamily(s string) (Family, error) {
	f := Family(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case Polygon, Cloud, Jagged:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFamily, "invalid shape family: %q (must be polygon, cloud or jagged)", s)
}

func (f Family) String() string { return string(f) }
