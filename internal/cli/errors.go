package cli

import "fmt"

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type invalidFlagError struct {
	flag  string
	value string
	want  string
}

func (e invalidFlagError) Error() string {
	return fmt.Sprintf("invalid --%s: %q (expected %s)", e.flag, e.value, e.want)
}

func errInvalidFlag(flag, value, want string) error {
	return invalidFlagError{flag: flag, value: value, want: want}
}
