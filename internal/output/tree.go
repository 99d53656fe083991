package output

import (
	"path/filepath"
	"sort"
	"strings"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// statusColumn is where file statuses start.
	statusColumn = 36
)

type treeNode struct {
	name     string
	status   string
	dir      bool
	children []*treeNode
}

// RenderFileTree renders files, keyed by slash or OS relative path, under a
// root directory label with a styled status aligned beside each file.
func RenderFileTree(root string, files map[string]string) string {
	if len(files) == 0 {
		return ""
	}

	top := &treeNode{name: root, dir: true}
	for path, status := range files {
		parts := strings.Split(filepath.ToSlash(path), "/")
		current := top
		for i, part := range parts {
			last := i == len(parts)-1
			child := current.child(part)
			if child == nil {
				child = &treeNode{name: part, dir: !last}
				current.children = append(current.children, child)
			}
			if last {
				child.status = status
			}
			current = child
		}
	}

	top.sort()

	var sb strings.Builder
	sb.WriteString(StyleSummary.Render(strings.TrimSuffix(root, "/") + "/"))
	sb.WriteString("\n")
	for i, c := range top.children {
		c.render(&sb, "", i == len(top.children)-1)
	}
	return sb.String()
}

func (n *treeNode) child(name string) *treeNode {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// sort orders directories first, then alphabetically.
func (n *treeNode) sort() {
	sort.Slice(n.children, func(i, j int) bool {
		if n.children[i].dir != n.children[j].dir {
			return n.children[i].dir
		}
		return n.children[i].name < n.children[j].name
	})
	for _, c := range n.children {
		c.sort()
	}
}

func (n *treeNode) render(sb *strings.Builder, prefix string, last bool) {
	connector := treeEdge
	if last {
		connector = treeLast
	}

	name := n.name
	if n.dir {
		name += "/"
	}
	line := prefix + connector + name
	sb.WriteString(line)

	if n.status != "" {
		padding := statusColumn - len([]rune(line))
		if padding < 2 {
			padding = 2
		}
		sb.WriteString(strings.Repeat(" ", padding))
		sb.WriteString(StatusStyle(n.status).Render(n.status))
	}
	sb.WriteString("\n")

	next := prefix + treeVert
	if last {
		next = prefix + treeSpace
	}
	for i, c := range n.children {
		c.render(sb, next, i == len(n.children)-1)
	}
}
