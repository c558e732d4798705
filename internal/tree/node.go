package tree

import "github.com/dustin/go-humanize"

// Kind classifies a tree entry.
type Kind int

const (
	KindFile Kind = iota
	KindFolder
	// KindAction is a synthetic non-filesystem entry (e.g. a bookmark) that
	// behaves like a file for selection purposes.
	KindAction
)

// String returns the display label for the kind.
func (k Kind) String() string {
	switch k {
	case KindFolder:
		return "folder"
	case KindAction:
		return "action"
	default:
		return "file"
	}
}

// Node is one entry in the navigable tree. The model owns all nodes; nothing
// outside this package mutates them.
type Node struct {
	Name     string
	Kind     Kind
	Path     string // unique identity key for lookups and expansion membership
	Children []*Node
	Loaded   bool  // folders only: true once Children reflects a real read
	Size     int64 // files only
}

// IsFolder reports whether the node can hold children.
func (n *Node) IsFolder() bool {
	return n.Kind == KindFolder
}

// Row is one line of the flattened, display-ordered projection of the tree.
type Row struct {
	ID    string // node path
	Depth int
	Kind  Kind
	Label string
	Meta  string // secondary text: human size or "folder"
}

func rowMeta(n *Node) string {
	switch n.Kind {
	case KindFolder:
		return "folder"
	case KindAction:
		return "action"
	default:
		return humanize.IBytes(uint64(n.Size))
	}
}
