package draw

import "errors"

var (
	ErrTooFewParticipants = errors.New("at least two verified participants required")
	ErrOddParticipants    = errors.New("an even number of verified participants is required")
	ErrCodeGeneration     = errors.New("ticket code generation failed")
)
