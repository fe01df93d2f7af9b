package algebra

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/takakv/cyclic/util"
)

// Format selects the textual encoding of an element.
type Format int

const (
	// Raw is the canonical encoding, accepted back by ElementFromString.
	Raw Format = iota
	// Decimal writes integers in base 10.
	Decimal
	// Hexadecimal writes integers in base 16 with a 0x prefix.
	Hexadecimal
)

func (f Format) String() string {
	switch f {
	case Raw:
		return "raw"
	case Decimal:
		return "decimal"
	case Hexadecimal:
		return "hexadecimal"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat parses the name of a format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "raw", "":
		return Raw, nil
	case "decimal", "dec":
		return Decimal, nil
	case "hexadecimal", "hex":
		return Hexadecimal, nil
	}
	return Raw, fmt.Errorf("%w: unknown format %q", util.ErrInvalidArgument, s)
}

// FormatInt encodes an integer.
func FormatInt(v *big.Int, f Format) string {
	if f == Hexadecimal {
		if v.Sign() < 0 {
			return "-0x" + new(big.Int).Neg(v).Text(16)
		}
		return "0x" + v.Text(16)
	}
	return v.String()
}

// ParseInt parses a decimal integer, or a hexadecimal one with a 0x prefix.
func ParseInt(s string) (*big.Int, error) {
	t := strings.TrimSpace(s)
	neg := strings.HasPrefix(t, "-")
	if neg {
		t = strings.TrimSpace(t[1:])
	}

	base := 10
	if strings.HasPrefix(t, "0x") || strings.HasPrefix(t, "0X") {
		base, t = 16, t[2:]
	}
	t = strings.ReplaceAll(t, "_", "")

	v, ok := new(big.Int).SetString(t, base)
	if !ok || t == "" {
		return nil, fmt.Errorf("%w: not an integer: %q", util.ErrInvalidArgument, s)
	}
	if neg {
		v.Neg(v)
	}
	return v, nil
}
