package common

import (
	"path"
	"path/filepath"

	"github.com/akshay120860/tensor2tensor/pkg/utils"
)

// CommonFlags are shared by every subcommand through the command group.
type CommonFlags struct {
	Env string `flag:"env" help:"path to datagenenv file"`
}

// Flags detects default CommonFlags values, searching from the given
// directory upwards for a datagenenv file.
//
// When none is found the default points into from itself, and loading
// it later yields an empty Env.
func Flags(from string) (CommonFlags, error) {
	if _from, err := filepath.Abs(from); err == nil {
		from = _from
	}

	env := path.Join(from, "datagenenv")
	if found, err := utils.FindUpward(from, "datagenenv"); err == nil {
		env = found
	}

	return CommonFlags{Env: env}, nil
}
