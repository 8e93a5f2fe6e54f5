package outline

import (
	"encoding/json"
	"strings"
)

// Heading is a single recorded heading line.
type Heading struct {
	Level int    // Number of leading '#' characters (1-6)
	Text  string // Trimmed heading text
}

// Node is a title in the heading tree.
// Children are ordered as they appear in the document and always have a
// strictly greater Level than their parent.
type Node struct {
	Level    int     `json:"level"`
	Text     string  `json:"text"`
	Children []*Node `json:"children,omitempty"`
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Walk visits n and all of its descendants depth-first in document order.
// depth is 0 for n itself.
func (n *Node) Walk(fn func(node *Node, depth int)) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int), depth int) {
	fn(n, depth)
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node, int) { count++ })
	return count
}

// Forest is the ordered list of top-level title trees of a document.
type Forest []*Node

// Count returns the total number of nodes across all trees.
func (f Forest) Count() int {
	total := 0
	for _, n := range f {
		total += n.Count()
	}
	return total
}

// Roots returns the titles of the top-level trees.
func (f Forest) Roots() []string {
	titles := make([]string, len(f))
	for i, n := range f {
		titles[i] = n.Text
	}
	return titles
}

// Depth returns the number of levels of the deepest tree (0 for an empty forest).
func (f Forest) Depth() int {
	deepest := 0
	for _, n := range f {
		n.Walk(func(_ *Node, d int) {
			deepest = max(deepest, d+1)
		})
	}
	return deepest
}

// Build nests a flat, ordered list of headings into a forest.
//
// A synthetic level-0 root starts the stack. For each heading the stack is
// popped while its top has a level greater than or equal to the heading's,
// the heading is attached to the new top and then pushed itself. The
// synthetic root is never popped and is not part of the result.
func Build(headings []Heading) Forest {
	root := &Node{Level: 0}
	stack := []*Node{root}

	for _, h := range headings {
		for len(stack) > 1 && stack[len(stack)-1].Level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]
		node := &Node{Level: h.Level, Text: h.Text}
		parent.Children = append(parent.Children, node)
		stack = append(stack, node)
	}

	return Forest(root.Children)
}

// Parse scans doc with [ScanHeadings] and builds the forest.
func Parse(doc string) Forest {
	return Build(ScanHeadings(doc))
}

// ParseMarkdown scans src with [ScanMarkdown] and builds the forest.
func ParseMarkdown(src []byte) Forest {
	return Build(ScanMarkdown(src))
}

// Marshal encodes the forest as indented JSON.
func Marshal(f Forest) ([]byte, error) {
	if f == nil {
		f = Forest{}
	}
	return json.MarshalIndent(f, "", "  ")
}

// Unmarshal decodes a forest previously produced by [Marshal].
func Unmarshal(data []byte) (Forest, error) {
	var f Forest
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f, nil
}

// String renders the forest as an indented plain-text outline.
func (f Forest) String() string {
	var sb strings.Builder
	for _, root := range f {
		root.Walk(func(n *Node, depth int) {
			sb.WriteString(strings.Repeat("  ", depth))
			sb.WriteString(n.Text)
			sb.WriteByte('\n')
		})
	}
	return sb.String()
}
