package command

import (
	"errors"

	"github.com/smileynet/assistant/internal/contact"
	"github.com/smileynet/assistant/internal/phone"
)

// Failure categories surfaced to the user.
var (
	ErrNotFound         = errors.New("command: contact not found")
	ErrInvalidArguments = errors.New("command: invalid arguments")
	ErrMissingArgument  = errors.New("command: missing argument")
)

// User-facing messages for each failure category.
const (
	MsgNotFound         = "Contact not found."
	MsgInvalidArguments = "Give me name and phone please."
	MsgMissingArgument  = "Enter user name."
)

// translate maps a handler error to its result kind and message.
// Errors outside the three categories are reported as invalid arguments;
// known reports whether err belonged to a category.
func translate(err error) (kind Kind, msg string, known bool) {
	switch {
	case errors.Is(err, ErrMissingArgument):
		return KindMissingArgument, MsgMissingArgument, true
	case errors.Is(err, ErrNotFound), errors.Is(err, contact.ErrNotFound):
		return KindNotFound, MsgNotFound, true
	case errors.Is(err, ErrInvalidArguments), errors.Is(err, phone.ErrInvalidFormat):
		return KindInvalidArguments, MsgInvalidArguments, true
	default:
		return KindInvalidArguments, MsgInvalidArguments, false
	}
}
