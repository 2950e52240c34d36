package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/apccurtiss/langlang/artifact"
	"github.com/apccurtiss/langlang/ast"
	"github.com/apccurtiss/langlang/compiler"
	"github.com/apccurtiss/langlang/config"
	"github.com/apccurtiss/langlang/gen"
	"github.com/apccurtiss/langlang/grammar"
	"github.com/apccurtiss/langlang/langdef"
	"github.com/apccurtiss/langlang/source"
)

// project is one grammar file with its output settings.
type project struct {
	cfg     config.Config
	backend gen.Backend
	cache   *compiler.Cache
	logger  *slog.Logger
}

func newProject(cfg *config.Config, logger *slog.Logger) (*project, error) {
	format := cfg.Format
	if format == "" {
		format = gen.Go.Name
	}
	backend, found := gen.ByName(format)
	if !found {
		return nil, fmt.Errorf("unknown output format: %s", format)
	}

	p := &project{cfg: *cfg, backend: backend, logger: logger}
	if p.cfg.Output == "" {
		ext := filepath.Ext(p.cfg.Grammar)
		p.cfg.Output = p.cfg.Grammar[:len(p.cfg.Grammar)-len(ext)] + backend.Ext
	}

	c := compiler.New(logger)
	c.Entry = cfg.Entry
	cache, e := compiler.NewCache(c, 0)
	if e != nil {
		return nil, e
	}
	p.cache = cache
	return p, nil
}

func (p *project) load() (*source.Source, error) {
	raw, e := os.ReadFile(p.cfg.Grammar)
	if e != nil {
		return nil, e
	}
	return source.NewDecoded(p.cfg.Grammar, raw)
}

func (p *project) compile() (*grammar.Grammar, error) {
	s, e := p.load()
	if e != nil {
		return nil, e
	}
	return p.cache.CompileSource(s)
}

// build compiles the grammar and writes rendered output file.
func (p *project) build() error {
	g, e := p.compile()
	if e != nil {
		return e
	}

	content, e := p.backend.Render(g, gen.Options{
		Package: p.cfg.Package,
		Source:  filepath.Base(p.cfg.Grammar),
		Entry:   p.cfg.Entry,
	})
	if e != nil {
		return e
	}

	if e = os.WriteFile(p.cfg.Output, content, 0o666); e != nil {
		return e
	}

	p.logger.Info("written", "file", p.cfg.Output, "format", p.backend.Name,
		"size", humanize.Bytes(uint64(len(content))), "rules", len(g.Rules))
	return nil
}

func (p *project) dumpAst(w io.Writer) error {
	s, e := p.load()
	if e != nil {
		return e
	}

	f, e := langdef.Parse(s)
	if e != nil {
		return e
	}
	return ast.Dump(w, f)
}

// runStdin compiles the grammar and runs it on stdin, returns the host routine exit code.
func (p *project) runStdin(stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	g, e := p.compile()
	if e != nil {
		return 0, e
	}

	a, e := artifact.New(g)
	if e != nil {
		return 0, e
	}
	return artifact.MainLog(a, p.cfg.Entry, stdin, stdout, stderr, p.logger), nil
}
