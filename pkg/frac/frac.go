// Package frac converts between decimal bond prices and the U.S. Treasury
// fractional notation "I-XYZ", where I is the integer dollar part, XY counts
// 32nds (00..31) and Z counts 256ths (0..7). A trailing '+' in place of Z
// denotes half a 32nd, i.e. 4/256.
package frac

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	thirtySeconds = decimal.NewFromInt(32)
	twoFiftySixth = decimal.NewFromInt(256)
)

// Format renders a price in fractional notation.
// Format(decimal 99.390625) == "99-124".
func Format(price decimal.Decimal) string {
	whole := price.Floor()
	rem := price.Sub(whole)
	xy := rem.Mul(thirtySeconds).Floor()
	z := rem.Sub(xy.Div(thirtySeconds)).Mul(twoFiftySixth).Floor()
	return fmt.Sprintf("%s-%02d%d", whole.String(), xy.IntPart(), z.IntPart())
}

// Parse reads a price in fractional notation. The Z position accepts '+'
// as an alias for 4.
func Parse(s string) (decimal.Decimal, error) {
	dash := strings.IndexByte(s, '-')
	if dash <= 0 || dash != len(s)-4 {
		return decimal.Zero, fmt.Errorf("frac: malformed price %q", s)
	}

	whole, err := decimal.NewFromString(s[:dash])
	if err != nil {
		return decimal.Zero, fmt.Errorf("frac: malformed price %q", s)
	}

	tail := s[dash+1:]
	if tail[2] == '+' {
		tail = tail[:2] + "4"
	}
	xy := int64(tail[0]-'0')*10 + int64(tail[1]-'0')
	z := int64(tail[2] - '0')
	if tail[0] < '0' || tail[0] > '9' || tail[1] < '0' || tail[1] > '9' ||
		tail[2] < '0' || tail[2] > '9' || xy > 31 || z > 7 {
		return decimal.Zero, fmt.Errorf("frac: malformed price %q", s)
	}

	price := whole.
		Add(decimal.NewFromInt(xy).Div(thirtySeconds)).
		Add(decimal.NewFromInt(z).Div(twoFiftySixth))
	return price, nil
}
