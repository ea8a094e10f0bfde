package styles

import "github.com/fogbanklabs/fogbank/pkg/errors"

// Style name constants.
const (
	StyleSoft  = "soft"
	StylePlain = "plain"
)

// ForName returns the style registered under the given name.
func ForName(name string) (Style, error) {
	switch name {
	case StyleSoft, "":
		return Soft{}, nil
	case StylePlain:
		return Plain{}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (must be one of: soft, plain)", name)
	}
}
