package utils

import (
	"github.com/ostnam/velox/pkg/tokens"
)

func Peek[T any](str []T, pos int) *T {
	if pos >= 0 && pos < len(str) {
		return &str[pos]
	}
	return nil
}

func PeekNext[T any](str []T, pos int) *T {
	return Peek(str, pos+1)
}

func Previous[T any](str []T, pos int) *T {
	return Peek(str, pos-1)
}

func Advance[T any](str []T, pos *int) *T {
	if *pos >= len(str) || *pos < 0 {
		return nil
	}
	res := &str[*pos]
	*pos++
	return res
}

func IsAtEnd[T any](str []T, pos int) bool {
	return pos >= len(str)
}

// Consumes the token at pos if its type is one of vals.
func MatchTokenType(slice []tokens.Token, pos *int, vals ...tokens.TokType) bool {
	if !PeekMatchesTokType(slice, *pos, vals...) {
		return false
	}
	*pos++
	return true
}

func PeekMatchesTokType(slice []tokens.Token, pos int, vals ...tokens.TokType) bool {
	peeked := Peek(slice, pos)
	if peeked == nil {
		return false
	}
	for _, val := range vals {
		if val == peeked.Type {
			return true
		}
	}
	return false
}
