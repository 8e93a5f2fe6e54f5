package layout

import (
	"encoding/json"
	"fmt"
	"os"
)

// Marshal encodes the layout as indented JSON.
func Marshal(l Layout) ([]byte, error) {
	if l.Nodes == nil {
		l.Nodes = []Node{}
	}
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal decodes a layout and checks its parent links.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// WriteFile writes the layout as JSON to path.
func WriteFile(l Layout, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile reads a layout written by [WriteFile].
func ReadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, err
	}
	return Unmarshal(data)
}

// Validate checks that every parent and child index points into the arena and
// that only node 0 is a root.
func (l Layout) Validate() error {
	n := len(l.Nodes)
	for i, node := range l.Nodes {
		switch {
		case i == 0 && node.Parent != NoParent:
			return fmt.Errorf("node 0: root has parent %d", node.Parent)
		case i > 0 && (node.Parent < 0 || node.Parent >= n || node.Parent == i):
			return fmt.Errorf("node %d: invalid parent %d", i, node.Parent)
		}
		for _, c := range node.Children {
			if c <= 0 || c >= n || l.Nodes[c].Parent != i {
				return fmt.Errorf("node %d: invalid child %d", i, c)
			}
		}
	}
	return nil
}
