package common

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/akshay120860/tensor2tensor/cmd/datagen/env"
	"github.com/youta-t/flarc"
)

type TaskWithCommonFlag[T any] func(
	ctx context.Context,
	logger *log.Logger,
	commonFlag CommonFlags,
	cl flarc.Commandline[T],
	params []any,
) error

// NewTaskWithCommonFlag adapts a task into a flarc.Task, pulling the
// CommonFlags injected by the command group out of params and handing
// the task a logger writing to the command's stderr.
func NewTaskWithCommonFlag[T any](task TaskWithCommonFlag[T]) flarc.Task[T] {
	return func(ctx context.Context, cl flarc.Commandline[T], params []any) error {
		var commonFlag *CommonFlags
		rest := make([]any, 0, len(params))
		for _, p := range params {
			if cf, ok := p.(CommonFlags); ok {
				commonFlag = &cf
				continue
			}
			rest = append(rest, p)
		}
		if commonFlag == nil {
			return errors.New("programming error: common flags not found")
		}

		logger := log.New(
			cl.Stderr(), fmt.Sprintf("[%s] ", cl.Fullname()), log.LstdFlags,
		)
		return task(ctx, logger, *commonFlag, cl, rest)
	}
}

type Task[T any] func(
	ctx context.Context,
	logger *log.Logger,
	e env.Env,
	cl flarc.Commandline[T],
	params []any,
) error

// NewTask is NewTaskWithCommonFlag plus loading the datagenenv file
// the common flags point at.
func NewTask[T any](task Task[T]) flarc.Task[T] {
	return NewTaskWithCommonFlag(func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag CommonFlags,
		cl flarc.Commandline[T],
		params []any,
	) error {
		e, err := env.Load(commonFlag.Env)
		if err != nil {
			return fmt.Errorf("%w: failed to load datagenenv (%s)", err, commonFlag.Env)
		}

		return task(ctx, logger, *e, cl, params)
	})
}
