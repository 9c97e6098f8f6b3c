// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import (
	"errors"
	"strconv"

	"github.com/tbourn/go-news-backend/internal/errs"
)

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

// ParseID parses a path id as a 32-bit signed integer, the range of the SQL
// integer type.
//
//	"1"                -> 1, nil
//	"1e4e"             -> 400 "Bad Request"
//	"1234523423432423" -> 400 "Out Of Range For Type Integer"
func ParseID(s string) (int, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, errs.Validation(errs.MsgIDOutOfRange).Wrap(err)
		}
		return 0, errs.Validation(errs.MsgBadRequest).Wrap(err)
	}
	return int(n), nil
}
