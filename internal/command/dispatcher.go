// Package command parses input lines and dispatches them against an
// address book, translating handler failures into user-facing messages.
package command

import (
	"go.uber.org/zap"

	"github.com/smileynet/assistant/internal/contact"
)

// Name identifies a command.
type Name string

const (
	NameHello  Name = "hello"
	NameAdd    Name = "add"
	NameChange Name = "change"
	NamePhone  Name = "phone"
	NameAll    Name = "all"
	NameExit   Name = "exit"
	NameClose  Name = "close"
)

// Names returns every recognized command in help order.
func Names() []Name {
	return []Name{NameHello, NameAdd, NameChange, NamePhone, NameAll, NameExit, NameClose}
}

// Kind classifies a dispatch result.
type Kind string

const (
	KindOK               Kind = "ok"
	KindUnknown          Kind = "unknown"
	KindExit             Kind = "exit"
	KindNotFound         Kind = "not_found"
	KindInvalidArguments Kind = "invalid_arguments"
	KindMissingArgument  Kind = "missing_argument"
)

// Fixed responses.
const (
	MsgGreeting   = "How can I help you?"
	MsgFarewell   = "Good bye!"
	MsgUnknown    = "Invalid command. Please try again."
	MsgNoContacts = "No contacts available."
)

// Result is the outcome of dispatching one line.
type Result struct {
	Command Name
	Text    string
	Kind    Kind
	Exit    bool // The loop should terminate after printing Text.
}

// Failed reports whether the result is a translated failure.
func (r Result) Failed() bool {
	switch r.Kind {
	case KindNotFound, KindInvalidArguments, KindMissingArgument:
		return true
	default:
		return false
	}
}

// AddressBook is the record store the handlers operate on.
type AddressBook interface {
	AddRecord(r *contact.Record)
	Find(name string) (*contact.Record, bool)
	Len() int
	String() string
}

// handler runs one command against the dispatcher's book.
type handler func(args []string) (string, error)

// Dispatcher routes parsed lines to handlers.
type Dispatcher struct {
	book   AddressBook
	logger *zap.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// New creates a Dispatcher over book.
func New(book AddressBook, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		book:   book,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch parses line, runs the matching handler and returns its result.
// Handler failures never escape; they become one of the fixed messages.
func (d *Dispatcher) Dispatch(line string) Result {
	in, err := Parse(line)
	if err != nil {
		return d.fail("", err)
	}

	d.logger.Debug("dispatch",
		zap.String("command", string(in.Command)),
		zap.Int("args", len(in.Args)))

	switch in.Command {
	case NameExit, NameClose:
		return Result{Command: in.Command, Text: MsgFarewell, Kind: KindExit, Exit: true}
	}

	h := d.lookup(in.Command)
	if h == nil {
		return Result{Command: in.Command, Text: MsgUnknown, Kind: KindUnknown}
	}

	text, err := h(in.Args)
	if err != nil {
		return d.fail(in.Command, err)
	}
	return Result{Command: in.Command, Text: text, Kind: KindOK}
}

// lookup returns the handler for name, or nil for unknown commands.
func (d *Dispatcher) lookup(name Name) handler {
	switch name {
	case NameHello:
		return d.hello
	case NameAdd:
		return d.add
	case NameChange:
		return d.change
	case NamePhone:
		return d.phone
	case NameAll:
		return d.all
	default:
		return nil
	}
}

// fail converts err into a failure result at the dispatch boundary.
func (d *Dispatcher) fail(name Name, err error) Result {
	kind, msg, known := translate(err)
	if known {
		d.logger.Info("command failed",
			zap.String("command", string(name)),
			zap.String("kind", string(kind)),
			zap.Error(err))
	} else {
		d.logger.Warn("unexpected command error",
			zap.String("command", string(name)),
			zap.Error(err))
	}
	return Result{Command: name, Text: msg, Kind: kind}
}
