// Package utils provides small helpers shared by the HTTP and service layers.
// They carry no domain state.
package utils

import (
	"strconv"

	"github.com/tbourn/go-qa-backend/internal/apperror"
)

// Query parameter names understood by ExtractPagination.
const (
	ParamStart = "start"
	ParamEnd   = "end"
)

// Pagination is a [Start, End) window over a listing. End is exclusive.
type Pagination struct {
	Start int
	End   int
}

// ExtractPagination reads the start/end window from raw query parameters.
//
// It returns (nil, nil) when neither key is present: the caller should return
// everything. When exactly one key is present it returns a MissingParameters
// error naming the absent one. Values must be unsigned base-10 integers; the
// first that is not yields a ParseInt error carrying the field and the text.
//
// Range validity depends on the data and is checked separately by Within.
func ExtractPagination(params map[string]string) (*Pagination, error) {
	rawStart, hasStart := params[ParamStart]
	rawEnd, hasEnd := params[ParamEnd]

	switch {
	case !hasStart && !hasEnd:
		return nil, nil
	case !hasStart:
		return nil, apperror.MissingParameters(ParamStart)
	case !hasEnd:
		return nil, apperror.MissingParameters(ParamEnd)
	}

	start, err := parseIndex(ParamStart, rawStart)
	if err != nil {
		return nil, err
	}
	end, err := parseIndex(ParamEnd, rawEnd)
	if err != nil {
		return nil, err
	}
	return &Pagination{Start: start, End: end}, nil
}

// Within reports whether the window selects at least one element of a listing
// of length size: Start < End <= size.
func (p Pagination) Within(size int) error {
	if p.End <= p.Start || p.End > size {
		return apperror.RangeInvalid(p.Start, p.End, size)
	}
	return nil
}

func parseIndex(field, raw string) (int, error) {
	n, err := strconv.ParseUint(raw, 10, strconv.IntSize-1)
	if err != nil {
		return 0, apperror.ParseInt(field, raw, err)
	}
	return int(n), nil
}

// AtoiDefault converts a string to an int using strconv.Atoi.
// If the string is empty or cannot be parsed as an integer,
// it returns the provided default value instead.
//
// Example:
//
//	n := utils.AtoiDefault("42", 0) // returns 42
//	n = utils.AtoiDefault("", 10)   // returns 10
//	n = utils.AtoiDefault("x", 5)   // returns 5
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
