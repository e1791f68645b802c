// Package format derives display strings for prices, item states and item
// types. Everything here is pure and safe to call from any goroutine.
package format

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// maxCents bounds parsed amounts; float64(math.MaxInt64) is 2^63.
const maxCents = float64(math.MaxInt64)

// Currency decorates a formatted amount.
type Currency struct {
	Prefix string
	Suffix string
}

// Euro is the default currency: "12.34 €".
var Euro = Currency{Suffix: " €"}

// Price is an item price as sent by the server. Normally an integer amount
// of minor currency units; anything else is kept verbatim for display.
type Price struct {
	cents int64
	raw   string
	kind  priceKind
}

type priceKind int

const (
	priceAbsent priceKind = iota
	priceCents
	priceOpaque
)

// Cents returns an integer price.
func Cents(c int64) Price {
	return Price{cents: c, kind: priceCents}
}

// Opaque returns a price the client cannot do arithmetic on, e.g. "ask".
func Opaque(raw string) Price {
	return Price{raw: raw, kind: priceOpaque}
}

// Int returns the amount in minor units and whether the price is an integer.
func (p Price) Int() (int64, bool) {
	return p.cents, p.kind == priceCents
}

// IsZero reports whether no price was given.
func (p Price) IsZero() bool {
	return p.kind == priceAbsent
}

// Raw returns the value sent to the server when the price is echoed back.
func (p Price) Raw() string {
	switch p.kind {
	case priceCents:
		return strconv.FormatInt(p.cents, 10)
	case priceOpaque:
		return p.raw
	}
	return ""
}

// Decimal renders an integer price as major units without currency
// ("12.34"), the form the server accepts on edit. Opaque prices are
// returned verbatim.
func (p Price) Decimal() string {
	if p.kind == priceCents {
		return Currency{}.Amount(p.cents)
	}
	return p.raw
}

// String formats the price with the default currency and no rounding.
func (p Price) String() string {
	return p.Format(Euro, false)
}

// Format renders the price. Integer amounts are divided by 100 and
// decorated with the currency. When rounded is set and the nearest multiple
// of 5 differs from the exact amount, both are shown: "12.35 € (12.33 €)".
// Non-integer prices are returned verbatim and never rounded.
func (p Price) Format(cur Currency, rounded bool) string {
	switch p.kind {
	case priceAbsent:
		return ""
	case priceOpaque:
		return p.raw
	}

	exact := cur.Amount(p.cents)
	if !rounded {
		return exact
	}
	r := RoundToFive(p.cents)
	if r == p.cents {
		return exact
	}
	return fmt.Sprintf("%s (%s)", cur.Amount(r), exact)
}

// Amount formats minor units with two decimals and the currency.
func (c Currency) Amount(cents int64) string {
	sign, abs := "", uint64(cents)
	if cents < 0 {
		sign, abs = "-", uint64(-(cents+1))+1
	}
	return fmt.Sprintf("%s%s%d.%02d%s", sign, c.Prefix, abs/100, abs%100, c.Suffix)
}

// RoundToFive rounds minor units to the nearest multiple of 5. A remainder
// of exactly half (2.5) cannot occur for integers; remainders 3 and 4 round
// up, 1 and 2 round down. Negative values round symmetrically, except at the
// bottom of the int64 range where rounding away from zero would overflow.
func RoundToFive(cents int64) int64 {
	rem := cents % 5
	base := cents - rem
	switch {
	case rem >= 3:
		return base + 5
	case rem <= -3 && base >= math.MinInt64+5:
		return base - 5
	}
	return base
}

// ParseCents reads a user-typed decimal price ("12.5", "12,50", "7") into
// minor units. Anything else, including NaN, infinities and amounts too
// large for int64 cents, becomes an opaque price.
func ParseCents(s string) Price {
	s = strings.TrimSpace(s)
	if s == "" {
		return Price{}
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsNaN(f) || math.Abs(f*100) >= maxCents {
		return Opaque(s)
	}
	if f < 0 {
		return Cents(-int64(-f*100 + 0.5))
	}
	return Cents(int64(f*100 + 0.5))
}

// UnmarshalJSON accepts integers as minor units and keeps any other value
// (strings, fractional numbers) verbatim.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = Price{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Opaque(s)
		return nil
	}
	if n, err := strconv.ParseInt(string(data), 10, 64); err == nil {
		*p = Cents(n)
		return nil
	}
	*p = Opaque(string(data))
	return nil
}

// MarshalJSON writes integers as numbers and opaque values as strings.
func (p Price) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case priceCents:
		return []byte(strconv.FormatInt(p.cents, 10)), nil
	case priceOpaque:
		return json.Marshal(p.raw)
	}
	return []byte("null"), nil
}
