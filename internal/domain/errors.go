package domain

import "errors"

var (
	ErrEmptyCompletion = errors.New("completion provider returned no choices")
	ErrAgentBudget     = errors.New("sql agent exhausted its iteration budget")
	ErrUnsafeStatement = errors.New("generated statement is not a single read-only select")
)
