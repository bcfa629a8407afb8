package kpi

import "errors"

var (
	ErrUnknownField = errors.New("field must be plan or fact")
	ErrNonFinite    = errors.New("value would make a derived result non-finite")
)
