package structure

import (
	"fmt"

	errs "github.com/matzehuels/stemloop/pkg/errors"
)

// UnbalancedBracketError is returned by [MatchPairs] when a ')' has no open
// partner or when the input ends with '(' still pending.
type UnbalancedBracketError struct {
	Pos      int // Offending ')' or the first unclosed '('
	Unclosed int // Number of unclosed '(' at end of input; 0 for an unmatched ')'
}

func (e *UnbalancedBracketError) Error() string {
	if e.Unclosed > 0 {
		return fmt.Sprintf("unbalanced brackets: %d unclosed '(' starting at position %d", e.Unclosed, e.Pos)
	}
	return fmt.Sprintf("unbalanced brackets: unmatched ')' at position %d", e.Pos)
}

// Code returns the error code for this error type.
func (e *UnbalancedBracketError) Code() errs.Code { return errs.ErrCodeUnbalancedBracket }

// MalformedStructureError is returned when a pairing array violates the
// range, symmetry or nesting preconditions of [Build].
type MalformedStructureError struct {
	Pos     int
	Partner int
	Reason  string
}

func (e *MalformedStructureError) Error() string {
	return fmt.Sprintf("malformed structure at position %d (partner %d): %s", e.Pos, e.Partner, e.Reason)
}

// Code returns the error code for this error type.
func (e *MalformedStructureError) Code() errs.Code { return errs.ErrCodeMalformedStructure }
