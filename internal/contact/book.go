package contact

import "strings"

// Book maps contact names to records, iterating in insertion order.
// Replacing an existing name keeps its original position.
type Book struct {
	records map[string]*Record
	order   []string
}

// NewBook returns an empty address book.
func NewBook() *Book {
	return &Book{records: make(map[string]*Record)}
}

// AddRecord inserts r under its name, replacing any existing record.
// Phones of a replaced record are discarded, not merged.
func (b *Book) AddRecord(r *Record) {
	if _, ok := b.records[r.Name()]; !ok {
		b.order = append(b.order, r.Name())
	}
	b.records[r.Name()] = r
}

// Find returns the record for name.
func (b *Book) Find(name string) (*Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Delete removes name. Deleting a missing name is a no-op.
func (b *Book) Delete(name string) {
	if _, ok := b.records[name]; !ok {
		return
	}
	delete(b.records, name)
	for i, n := range b.order {
		if n == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of records.
func (b *Book) Len() int {
	return len(b.order)
}

// Records returns the records in insertion order.
func (b *Book) Records() []*Record {
	out := make([]*Record, len(b.order))
	for i, name := range b.order {
		out[i] = b.records[name]
	}
	return out
}

// String renders every record, one per line.
func (b *Book) String() string {
	lines := make([]string, len(b.order))
	for i, name := range b.order {
		lines[i] = b.records[name].String()
	}
	return strings.Join(lines, "\n")
}
