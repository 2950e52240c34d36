// Package config loads project configuration files.
//
// Configuration is a CUE document, all fields are optional:
//
//	grammar: "pairs.ll"   // grammar file, relative to the config file
//	output:  "pairs.go"   // output file, relative to the config file
//	format:  "go"         // "go" or "json"
//	package: "main"       // Go package name
//	entry:   "pair"       // entry rule
//	watch:   false        // recompile on change
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

const schema = `close({
	grammar?: string & !=""
	output?:  string & !=""
	format?:  "go" | "json"
	package?: =~"^[A-Za-z_][A-Za-z_0-9]*$"
	entry?:   =~"^\\w+$"
	watch?:   bool
})`

type Config struct {
	Grammar string `json:"grammar"`
	Output  string `json:"output"`
	Format  string `json:"format"`
	Package string `json:"package"`
	Entry   string `json:"entry"`
	Watch   bool   `json:"watch"`
}

// Parse decodes configuration document, name is used in error messages.
func Parse(name string, content []byte) (*Config, error) {
	ctx := cuecontext.New()
	s := ctx.CompileString(schema)
	if err := s.Err(); err != nil {
		return nil, err
	}

	value := ctx.CompileBytes(content, cue.Filename(name))
	if err := value.Err(); err != nil {
		return nil, err
	}

	value = s.Unify(value)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	c := &Config{}
	if err := value.Decode(c); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}

// Load reads configuration file. Relative grammar and output paths are resolved
// against the directory of the file.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c, err := Parse(path, content)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	c.Grammar = resolve(dir, c.Grammar)
	c.Output = resolve(dir, c.Output)
	return c, nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// Override replaces fields of c with non-zero fields of o.
func (c *Config) Override(o Config) {
	if o.Grammar != "" {
		c.Grammar = o.Grammar
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.Package != "" {
		c.Package = o.Package
	}
	if o.Entry != "" {
		c.Entry = o.Entry
	}
	if o.Watch {
		c.Watch = true
	}
}
