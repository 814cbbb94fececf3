package commandline

import (
	"io"

	"github.com/youta-t/flarc"
)

// Mock is a flarc.Commandline made of plain fields, for driving
// tasks in tests without parsing argv.
type Mock[T any] struct {
	Fullname_ string

	Stdin_  io.Reader
	Stdout_ io.Writer
	Stderr_ io.Writer

	Flags_ T
	Args_  map[string][]string
}

var _ flarc.Commandline[struct{}] = Mock[struct{}]{}

func (m Mock[T]) Fullname() string          { return m.Fullname_ }
func (m Mock[T]) Stdin() io.Reader          { return m.Stdin_ }
func (m Mock[T]) Stdout() io.Writer         { return m.Stdout_ }
func (m Mock[T]) Stderr() io.Writer         { return m.Stderr_ }
func (m Mock[T]) Flags() T                  { return m.Flags_ }
func (m Mock[T]) Args() map[string][]string { return m.Args_ }
