package engine

import (
	"errors"

	"github.com/dshills/keycalc/internal/engine/expr"
)

// Errors returned by engine operations.
var (
	// ErrUnknownMemoryAction indicates an action other than M+, M-, MR or MC.
	ErrUnknownMemoryAction = errors.New("unknown memory action")

	// Evaluation failures; Evaluate wraps an *expr.Error that matches one
	// of these through errors.Is.
	ErrInvalidCharacter = expr.ErrInvalidCharacter
	ErrMalformed        = expr.ErrMalformed
	ErrNonFinite        = expr.ErrNonFinite
)
