package env

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Env is the content of a datagenenv file.
//
// It redirects corpus downloads, for mirrors or local caches, without
// touching the problem table.
type Env struct {
	// Source maps a corpus archive name (like "simple-examples.tgz")
	// to the URL to download it from instead of the default.
	//
	// The special key "mnist" maps to the directory URL the four
	// MNIST archives are fetched from.
	Source map[string]string `yaml:"source"`

	// Checksum maps a corpus archive name to its expected MD5 sum,
	// overriding the built-in one. An empty value disables
	// verification for that archive.
	Checksum map[string]string `yaml:"checksum"`
}

// Load reads a datagenenv file.
//
// A missing file is not an error: downloads just use their defaults.
func Load(path string) (*Env, error) {
	e := Env{}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &e, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(content, &e); err != nil {
		return nil, err
	}

	return &e, nil
}
