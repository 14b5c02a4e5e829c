// Package contact holds contact records and the in-memory address book.
package contact

import (
	"errors"
	"fmt"
	"strings"

	"github.com/smileynet/assistant/internal/phone"
)

// ErrNotFound indicates a referenced contact or phone does not exist.
var ErrNotFound = errors.New("contact: not found")

// ErrPhoneNotFound indicates a phone is not present in a record.
// It matches ErrNotFound under errors.Is.
var ErrPhoneNotFound = fmt.Errorf("%w: phone number", ErrNotFound)

// Record is one contact: a name and its phones in insertion order.
type Record struct {
	name   string
	phones []phone.Phone
}

// NewRecord returns an empty record for name.
func NewRecord(name string) *Record {
	return &Record{name: name}
}

// Name returns the contact name.
func (r *Record) Name() string {
	return r.name
}

// Phones returns a copy of the record's phones.
func (r *Record) Phones() []phone.Phone {
	out := make([]phone.Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// AddPhone validates value and appends it. Duplicates are allowed.
func (r *Record) AddPhone(value string) error {
	p, err := phone.New(value)
	if err != nil {
		return fmt.Errorf("contact: adding phone to %q: %w", r.name, err)
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone removes the first phone equal to value.
func (r *Record) RemovePhone(value string) error {
	for i, p := range r.phones {
		if p.String() == value {
			r.phones = append(r.phones[:i], r.phones[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q in %q", ErrPhoneNotFound, value, r.name)
}

// EditPhone replaces old with new by removing old and then adding new.
// If old is missing nothing changes. If new is invalid, old stays removed.
func (r *Record) EditPhone(old, new string) error {
	if err := r.RemovePhone(old); err != nil {
		return err
	}
	return r.AddPhone(new)
}

// FindPhone returns the first phone equal to value.
func (r *Record) FindPhone(value string) (phone.Phone, bool) {
	for _, p := range r.phones {
		if p.String() == value {
			return p, true
		}
	}
	return phone.Phone{}, false
}

// String renders the record as "Contact name: <name>, phones: <a>; <b>".
func (r *Record) String() string {
	values := make([]string, len(r.phones))
	for i, p := range r.phones {
		values[i] = p.String()
	}
	return fmt.Sprintf("Contact name: %s, phones: %s", r.name, strings.Join(values, "; "))
}
