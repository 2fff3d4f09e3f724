package keymap

import "strings"

// InfoEntry is one row of a node's help box: the keys and what they do.
type InfoEntry struct {
	Keys []string
	Desc string
}

// Info is the help box content for a node.
type Info struct {
	Title   string
	Entries []InfoEntry
}

// Info lists the node's bindings. Keys bound to the same command share a
// row, in binding order.
func (n *Node) Info() Info {
	info := Info{Title: n.Name}
	rows := make(map[string]int)

	for _, key := range n.order {
		desc := describeTrie(n.children[key])
		if i, ok := rows[desc]; ok {
			info.Entries[i].Keys = append(info.Entries[i].Keys, key)
			continue
		}
		rows[desc] = len(info.Entries)
		info.Entries = append(info.Entries, InfoEntry{Keys: []string{key}, Desc: desc})
	}

	return info
}

func describeTrie(t Trie) string {
	switch t := t.(type) {
	case *Leaf:
		return Describe(t.Command)
	case *Sequence:
		docs := make([]string, 0, len(t.Commands))
		for _, c := range t.Commands {
			docs = append(docs, Describe(c))
		}
		return strings.Join(docs, ", ")
	case *Node:
		return t.Name
	}
	return ""
}
