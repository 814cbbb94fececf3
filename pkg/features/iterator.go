package features

import (
	"context"
	"io"
)

// Iterator is a lazy, finite-or-unbounded sequence of Examples.
//
// Next returns io.EOF when the sequence is drained. Implementations are
// pull-based: consumers may stop pulling at any point, then must call
// Close to release whatever the sequence holds open.
type Iterator interface {
	Next(ctx context.Context) (Example, error)
	Close() error
}

type sliceIterator struct {
	rest []Example
}

// FromSlice wraps examples into an Iterator.
func FromSlice(examples []Example) Iterator {
	return &sliceIterator{rest: examples}
}

func (s *sliceIterator) Next(ctx context.Context) (Example, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.rest) == 0 {
		return nil, io.EOF
	}
	ex := s.rest[0]
	s.rest = s.rest[1:]
	return ex, nil
}

func (s *sliceIterator) Close() error {
	s.rest = nil
	return nil
}

type funcIterator struct {
	next  func(ctx context.Context) (Example, error)
	close func() error
}

// FromFunc builds an Iterator over next.
//
// closer may be nil when the sequence holds nothing to release.
func FromFunc(next func(ctx context.Context) (Example, error), closer func() error) Iterator {
	return &funcIterator{next: next, close: closer}
}

func (f *funcIterator) Next(ctx context.Context) (Example, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.next(ctx)
}

func (f *funcIterator) Close() error {
	if f.close == nil {
		return nil
	}
	return f.close()
}

type chainIterator struct {
	rest []Iterator
}

// Chain concatenates iterators into one sequence.
//
// Each iterator is closed as soon as it is drained. Close closes all
// iterators not drained yet.
func Chain(iterators ...Iterator) Iterator {
	return &chainIterator{rest: iterators}
}

func (c *chainIterator) Next(ctx context.Context) (Example, error) {
	for 0 < len(c.rest) {
		ex, err := c.rest[0].Next(ctx)
		if err == io.EOF {
			if cerr := c.rest[0].Close(); cerr != nil {
				return nil, cerr
			}
			c.rest = c.rest[1:]
			continue
		}
		return ex, err
	}
	return nil, io.EOF
}

func (c *chainIterator) Close() error {
	var first error
	for _, it := range c.rest {
		if err := it.Close(); err != nil && first == nil {
			first = err
		}
	}
	c.rest = nil
	return first
}
