package tree

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"arbor/internal/log"
)

// Loader enumerates directory children for the model. Entries matching an
// ignore pattern or (optionally) dotfiles are filtered out.
type Loader struct {
	ShowHidden bool
	ignore     []glob.Glob
}

// NewLoader builds a loader. Invalid ignore patterns are logged and skipped
// rather than failing the whole loader.
func NewLoader(showHidden bool, ignorePatterns []string) *Loader {
	l := &Loader{ShowHidden: showHidden}
	for _, p := range ignorePatterns {
		g, err := glob.Compile(p)
		if err != nil {
			log.Warnf("ignoring invalid glob pattern %q: %v", p, err)
			continue
		}
		l.ignore = append(l.ignore, g)
	}
	return l
}

// ReadChildren lists the entries of dir as tree nodes, folders first, then
// case-insensitive alphabetical. A directory that cannot be read at all yields
// an empty list so navigation never dead-ends; individual entries whose info
// cannot be statted are simply omitted.
func (l *Loader) ReadChildren(dir string) []*Node {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Debugf("read dir %s: %v", dir, err)
		return []*Node{}
	}

	sort.Slice(entries, func(i, j int) bool {
		di, dj := entries[i].IsDir(), entries[j].IsDir()
		if di != dj {
			return di
		}
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	nodes := make([]*Node, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !l.ShowHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if l.ignored(name) {
			continue
		}

		node := &Node{
			Name: name,
			Path: filepath.Join(dir, name),
		}
		if entry.IsDir() {
			node.Kind = KindFolder
		} else {
			info, err := entry.Info()
			if err != nil {
				continue
			}
			node.Kind = KindFile
			node.Size = info.Size()
		}
		nodes = append(nodes, node)
	}
	return nodes
}

func (l *Loader) ignored(name string) bool {
	for _, g := range l.ignore {
		if g.Match(name) {
			return true
		}
	}
	return false
}
