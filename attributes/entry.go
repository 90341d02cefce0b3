package attributes

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMissingKey = errors.New("attribute has no key")

// Entry is a parsed attribute: its key and the arguments that followed it.
type Entry struct {
	Key  string
	Args []Arg
}

// ParseEntry parses an attribute string such as `goal(1)`.
func ParseEntry(s string) (Entry, error) {
	items, err := parse(lex(s))
	if err != nil {
		return Entry{}, fmt.Errorf("attribute %q: %w", s, err)
	}
	if len(items) == 0 || !items[0].isKey {
		return Entry{}, fmt.Errorf("attribute %q: %w", s, ErrMissingKey)
	}

	entry := Entry{Key: items[0].key}
	for _, it := range items[1:] {
		if it.isKey {
			return Entry{}, fmt.Errorf("attribute %q: found second key %q", s, it.key)
		}
		entry.Args = append(entry.Args, it.arg)
	}
	return entry, nil
}

// Key parses s and returns only its key. Unparseable strings yield "".
func Key(s string) string {
	e, err := ParseEntry(s)
	if err != nil {
		return ""
	}
	return e.Key
}

func (e Entry) String() string {
	if len(e.Args) == 0 {
		return e.Key
	}
	parts := make([]string, 0, len(e.Args))
	for _, a := range e.Args {
		parts = append(parts, a.String())
	}
	return e.Key + "(" + strings.Join(parts, ", ") + ")"
}

func (e Entry) arg(i int, want ArgKind) (Arg, error) {
	if i < 0 || i >= len(e.Args) {
		return Arg{}, fmt.Errorf("%s: missing argument %d", e.Key, i)
	}
	a := e.Args[i]
	if a.Kind != want {
		return Arg{}, fmt.Errorf("%s: argument %d is a %s, expected %s", e.Key, i, a.Kind, want)
	}
	return a, nil
}

// Number returns argument i as an integer.
func (e Entry) Number(i int) (int64, error) {
	a, err := e.arg(i, ArgNumber)
	return a.Num, err
}

// StringArg returns argument i as a string.
func (e Entry) StringArg(i int) (string, error) {
	a, err := e.arg(i, ArgString)
	return a.Str, err
}

// Bool returns argument i as a bool.
func (e Entry) Bool(i int) (bool, error) {
	a, err := e.arg(i, ArgBool)
	return a.Bool, err
}
