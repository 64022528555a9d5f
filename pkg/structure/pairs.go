package structure

import (
	"strings"

	errs "github.com/matzehuels/stemloop/pkg/errors"
)

// NoPartner marks a position without a partner in a [Pairs] array.
const NoPartner = -1

// Pairs maps every sequence position to its partner, or [NoPartner].
type Pairs []int

// MatchPairs converts a dot-bracket string into a pairing array.
//
// The scan is a single left-to-right pass with a stack of open positions.
// It fails with [*UnbalancedBracketError] on a ')' with nothing to close and
// on input that ends with open brackets. Characters other than '.', '(' and
// ')' are rejected with an INVALID_STRUCTURE error.
func MatchPairs(dotBracket string) (Pairs, error) {
	pairs := make(Pairs, len(dotBracket))
	stack := make([]int, 0, 16)

	for i := 0; i < len(dotBracket); i++ {
		switch dotBracket[i] {
		case '.':
			pairs[i] = NoPartner
		case '(':
			stack = append(stack, i)
		case ')':
			if len(stack) == 0 {
				return nil, &UnbalancedBracketError{Pos: i}
			}
			j := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			pairs[i], pairs[j] = j, i
		default:
			return nil, errs.New(errs.ErrCodeInvalidStructure, "invalid character %q at position %d", dotBracket[i], i)
		}
	}

	if len(stack) > 0 {
		return nil, &UnbalancedBracketError{Pos: stack[0], Unclosed: len(stack)}
	}
	return pairs, nil
}

// Validate checks that p is a well-formed secondary structure: every
// partner is in range, no position pairs with itself, pairing is symmetric
// and no two pairs cross.
func (p Pairs) Validate() error {
	n := len(p)
	for i, j := range p {
		if j == NoPartner {
			continue
		}
		switch {
		case j < 0 || j >= n:
			return &MalformedStructureError{Pos: i, Partner: j, Reason: "partner out of range"}
		case j == i:
			return &MalformedStructureError{Pos: i, Partner: j, Reason: "position paired with itself"}
		case p[j] != i:
			return &MalformedStructureError{Pos: i, Partner: j, Reason: "pairing is not symmetric"}
		}
	}

	// Every pair must close the most recently opened one.
	stack := make([]int, 0, 16)
	for i, j := range p {
		if j == NoPartner {
			continue
		}
		if j > i {
			stack = append(stack, i)
			continue
		}
		top := stack[len(stack)-1]
		if top != j {
			return &MalformedStructureError{Pos: i, Partner: j, Reason: "pairs cross"}
		}
		stack = stack[:len(stack)-1]
	}
	return nil
}

// DotBracket renders p back to dot-bracket notation.
func (p Pairs) DotBracket() string {
	var b strings.Builder
	b.Grow(len(p))
	for i, j := range p {
		switch {
		case j == NoPartner:
			b.WriteByte('.')
		case j > i:
			b.WriteByte('(')
		default:
			b.WriteByte(')')
		}
	}
	return b.String()
}

// Count returns the number of base pairs.
func (p Pairs) Count() int {
	n := 0
	for i, j := range p {
		if j > i {
			n++
		}
	}
	return n
}

// firstPaired returns the first paired position in [from, to], or -1.
func (p Pairs) firstPaired(from, to int) int {
	for i := from; i <= to; i++ {
		if p[i] != NoPartner {
			return i
		}
	}
	return -1
}

// lastPaired returns the last paired position in [from, to], or -1.
func (p Pairs) lastPaired(from, to int) int {
	for i := to; i >= from; i-- {
		if p[i] != NoPartner {
			return i
		}
	}
	return -1
}
