package version

import (
	"context"
	"fmt"

	"github.com/akshay120860/tensor2tensor/pkg/buildtime"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show the version of this command.",
		struct{}{},
		flarc.Args{},
		func(ctx context.Context, cl flarc.Commandline[struct{}], _ []any) error {
			fmt.Fprintln(cl.Stdout(), buildtime.VersionString())
			return nil
		},
	)
}
