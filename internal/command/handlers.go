package command

import (
	"fmt"

	"github.com/smileynet/assistant/internal/contact"
)

func (d *Dispatcher) hello(_ []string) (string, error) {
	return MsgGreeting, nil
}

// add creates a record with one phone. An existing record with the same
// name is replaced.
func (d *Dispatcher) add(args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("%w: add takes name and phone, got %d args", ErrInvalidArguments, len(args))
	}
	name, value := args[0], args[1]

	r := contact.NewRecord(name)
	if err := r.AddPhone(value); err != nil {
		return "", err
	}
	d.book.AddRecord(r)
	return fmt.Sprintf("Contact '%s' added with phone number '%s'.", name, value), nil
}

// change appends a phone to an existing record.
func (d *Dispatcher) change(args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("%w: change takes name and phone, got %d args", ErrInvalidArguments, len(args))
	}
	name, value := args[0], args[1]

	r, ok := d.book.Find(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err := r.AddPhone(value); err != nil {
		return "", err
	}
	return fmt.Sprintf("Contact '%s' updated with new phone number '%s'.", name, value), nil
}

func (d *Dispatcher) phone(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("%w: phone needs a name", ErrMissingArgument)
	}
	if len(args) > 1 {
		return "", fmt.Errorf("%w: phone takes one name, got %d args", ErrInvalidArguments, len(args))
	}

	r, ok := d.book.Find(args[0])
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, args[0])
	}
	return r.String(), nil
}

func (d *Dispatcher) all(_ []string) (string, error) {
	if d.book.Len() == 0 {
		return MsgNoContacts, nil
	}
	return d.book.String(), nil
}
