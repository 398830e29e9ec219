// Package notice holds the one-shot messages shown after an action.
package notice

import (
	"errors"
	"strings"

	"github.com/astral-cool/astral-web/internal/api"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Notice struct {
	Kind        Kind
	Message     string
	Description string
}

// Zero reports whether n carries nothing to show.
func (n Notice) Zero() bool {
	return n.Message == "" && n.Description == ""
}

func Success(description string) Notice {
	return Notice{Kind: KindSuccess, Message: "Success", Description: description}
}

func Failure(description string) Notice {
	return Notice{Kind: KindError, Message: "Something went wrong", Description: description}
}

// FromError turns err into the notice shown to the user. Backend errors keep
// their message; anything else gets a generic one.
func FromError(err error) Notice {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return Failure(apiErr.Message)
	}
	return Failure("Please try again later.")
}

// Validation joins field errors into one notice, e.g.
// "Provide a valid username, Provide a valid password."
func Validation(errs []string) Notice {
	return Notice{
		Kind:        KindError,
		Message:     "Provide the required fields",
		Description: strings.Join(errs, ", ") + ".",
	}
}
