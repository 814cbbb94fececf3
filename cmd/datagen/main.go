package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path"

	"github.com/akshay120860/tensor2tensor/cmd/datagen/subcommands/common"
	subgen "github.com/akshay120860/tensor2tensor/cmd/datagen/subcommands/generate"
	subprob "github.com/akshay120860/tensor2tensor/cmd/datagen/subcommands/problems"
	subver "github.com/akshay120860/tensor2tensor/cmd/datagen/subcommands/version"
	"github.com/akshay120860/tensor2tensor/pkg/utils/try"
	"github.com/youta-t/flarc"
)

func main() {
	name := path.Base(os.Args[0])
	logger := log.Default()
	logger.SetPrefix(fmt.Sprintf("[%s] ", name))

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill,
	)
	defer cancel()

	cf := try.To(common.Flags(".")).OrFatal(logger)
	generate := try.To(subgen.New()).OrFatal(logger)
	problems := try.To(subprob.New()).OrFatal(logger)
	version := try.To(subver.New()).OrFatal(logger)

	datagen := try.To(
		flarc.NewCommandGroup(
			"Generate datasets for tensor2tensor problems",
			cf,
			flarc.WithSubcommand("generate", generate),
			flarc.WithSubcommand("problems", problems),
			flarc.WithSubcommand("version", version),
		),
	).OrFatal(logger)

	os.Exit(flarc.Run(ctx, datagen, flarc.WithHelp(true)))
}
