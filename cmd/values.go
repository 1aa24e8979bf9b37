package cmd

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

type uiKind int

const (
	WindowUI uiKind = iota
	TerminalUI
)

var uiKinds = map[string]uiKind{
	"window":   WindowUI,
	"terminal": TerminalUI,
}

func (kind uiKind) String() string {
	return nameOf(kind, uiKinds)
}

type directorKind int

const (
	NoDirector directorKind = iota
	RandomDirector
	CallerDirector
)

var directorKinds = map[string]directorKind{
	"none":   NoDirector,
	"random": RandomDirector,
	"caller": CallerDirector,
}

func (kind directorKind) String() string {
	return nameOf(kind, directorKinds)
}

func nameOf[T comparable](value T, names map[string]T) string {
	for name, v := range names {
		if v == value {
			return name
		}
	}
	return "unknown"
}

// enumValue is a pflag.Value accepting one of a fixed set of names
type enumValue[T comparable] struct {
	p     *T
	names map[string]T
}

func newEnumValue[T comparable](val T, p *T, names map[string]T) *enumValue[T] {
	*p = val
	return &enumValue[T]{p: p, names: names}
}

func (value *enumValue[T]) String() string {
	return nameOf(*value.p, value.names)
}

func (value *enumValue[T]) Set(s string) error {
	if v, isValid := value.names[s]; isValid {
		*value.p = v
		return nil
	}
	return errors.Errorf("must be one of %s", strings.Join(value.choices(), ", "))
}

func (value *enumValue[T]) Type() string {
	return "string"
}

func (value *enumValue[T]) choices() []string {
	choices := make([]string, 0, len(value.names))
	for name := range value.names {
		choices = append(choices, name)
	}
	sort.Strings(choices)
	return choices
}
