package main

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watch builds the project and rebuilds it on every change of the grammar file until ctx is done.
// Build errors are logged, watching continues.
func (p *project) watch(ctx context.Context) error {
	watcher, e := fsnotify.NewWatcher()
	if e != nil {
		return e
	}
	defer watcher.Close()

	// watching the directory catches file replacement too
	target := filepath.Clean(p.cfg.Grammar)
	if e = watcher.Add(filepath.Dir(target)); e != nil {
		return e
	}

	p.rebuild()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) == target && event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				p.logger.Debug("grammar changed", "file", event.Name, "op", event.Op.String())
				p.rebuild()
			}

		case e, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			p.logger.Warn("watch error", "error", e)
		}
	}
}

func (p *project) rebuild() {
	if e := p.build(); e != nil {
		p.logger.Error("build failed", "file", p.cfg.Grammar, "error", e)
		return
	}
	hits, misses := p.cache.Stats()
	p.logger.Debug("compile cache", "hits", hits, "misses", misses)
}
