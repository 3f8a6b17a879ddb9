// Package revert turns contract revert reasons into stable, user-facing errors.
package revert

import (
	"errors"
	"strings"
)

// Code identifies a known failure.
type Code string

const (
	CodeUnknown          Code = "unknown"
	CodeRateLimited      Code = "rate_limited"
	CodeAlreadyLiked     Code = "already_liked"
	CodeNicknameTooLong  Code = "nickname_too_long"
	CodeNicknameEmpty    Code = "nickname_empty"
	CodeTitleTooLong     Code = "title_too_long"
	CodeContentTooLong   Code = "content_too_long"
	CodeTitleEmpty       Code = "title_empty"
	CodeContentEmpty     Code = "content_empty"
	CodeAlreadyVoted     Code = "already_voted"
	CodeBelowMinimum     Code = "amount_below_minimum"
	CodeTransferFailed   Code = "token_transfer_failed"
	CodePollNotActive    Code = "poll_not_active"
	CodeInsufficientFund Code = "insufficient_funds"
	CodeLowBalance       Code = "insufficient_token_balance"
	CodeInvalidInput     Code = "invalid_input"
)

// Error is a classified failure.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

type rule struct {
	match   string
	code    Code
	message string
}

// Order matters: the first match wins.
var rules = []rule{
	{"request limit reached", CodeRateLimited, "the RPC node is rate limiting requests, try again shortly"},
	{"Already liked", CodeAlreadyLiked, "you already liked this post"},
	{"Nickname too long", CodeNicknameTooLong, "nickname is too long (max 20 characters)"},
	{"Nickname cannot be empty", CodeNicknameEmpty, "nickname cannot be empty"},
	{"Title too long", CodeTitleTooLong, "title is too long"},
	{"Content too long", CodeContentTooLong, "content is too long"},
	{"Title cannot be empty", CodeTitleEmpty, "title cannot be empty"},
	{"Content cannot be empty", CodeContentEmpty, "content cannot be empty"},
	{"Already voted", CodeAlreadyVoted, "you already voted in this poll"},
	{"Amount below minimum", CodeBelowMinimum, "amount is below the minimum vote amount"},
	{"Token transfer failed", CodeTransferFailed, "token transfer failed, check balance and allowance"},
	{"Poll not active", CodePollNotActive, "poll is not active"},
	{"insufficient funds", CodeInsufficientFund, "insufficient funds for gas or value"},
}

// Classify maps err onto a known reason. Unknown errors keep fallback as their message.
// A nil err returns nil.
func Classify(err error, fallback string) *Error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}
	text := err.Error()
	for _, r := range rules {
		if strings.Contains(text, r.match) {
			return &Error{Code: r.code, Message: r.message, Err: err}
		}
	}
	if fallback == "" {
		fallback = "request failed"
	}
	return &Error{Code: CodeUnknown, Message: fallback, Err: err}
}

// New builds a classified error without an underlying cause, for client-side validation.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Is reports whether err classifies as code.
func Is(err error, code Code) bool {
	c := Classify(err, "")
	return c != nil && c.Code == code
}
