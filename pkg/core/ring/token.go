package ring

import (
	"fmt"
	"math"
	"strconv"
)

// Token is a point on the partitioning ring.
//
// Tokens are totally ordered signed 64-bit values. MinToken is reserved
// as the lower bound of the ring and is never owned by a ring member.
type Token int64

const (
	// MinToken is the smallest representable ring token.
	MinToken Token = math.MinInt64

	// MaxToken is the largest representable ring token.
	MaxToken Token = math.MaxInt64
)

// Compare compares two tokens. Returns:
//   - -1 if t < t2,
//   - 0 if t == t2,
//   - 1 if t > t2.
func (t Token) Compare(t2 Token) int {
	switch {
	case t < t2:
		return -1
	case t > t2:
		return 1
	default:
		return 0
	}
}

// String implements fmt.Stringer.
func (t Token) String() string {
	return strconv.FormatInt(int64(t), 10)
}

// ParseToken parses a decimal string representation of a ring token.
func ParseToken(s string) (Token, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("could not parse ring token: %w", err)
	}

	return Token(v), nil
}
