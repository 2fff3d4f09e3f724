// Package keymap holds key binding tries: per editing mode, a tree whose
// leaves name commands and whose inner nodes start multi-key sequences.
//
// Keymaps are built once from the defaults and the user configuration and
// are read-only afterwards, so nodes may be shared by reference.
package keymap

import (
	"maps"
	"slices"
	"strings"
)

// Mode is an editing mode with its own top-level keymap.
type Mode string

const (
	ModeNormal Mode = "normal"
	ModeInsert Mode = "insert"
)

// Modes lists the supported editing modes.
var Modes = []Mode{ModeNormal, ModeInsert}

// KeyEvent is a single key press. Name is the normalized key name used in
// keymaps ("j", "ctrl+w", "esc", "space"); Text is the text the key
// produces, empty for special keys.
type KeyEvent struct {
	Name string
	Text string
}

// Char returns the single character the key produces.
func (e KeyEvent) Char() (rune, bool) {
	r := []rune(e.Text)
	if len(r) != 1 {
		return 0, false
	}
	return r[0], true
}

// IsEscape reports whether the event is the escape key.
func (e KeyEvent) IsEscape() bool {
	return e.Name == "esc"
}

// Trie is one binding: a *Leaf, a *Sequence, or a *Node.
type Trie interface {
	trie()
}

// Leaf binds a key to a single command.
type Leaf struct {
	Command string
}

// Sequence binds a key to several commands run in order.
type Sequence struct {
	Commands []string
}

// Node is the prefix of longer key sequences.
type Node struct {
	Name     string
	order    []string
	children map[string]Trie
}

func (*Leaf) trie()     {}
func (*Sequence) trie() {}
func (*Node) trie()     {}

// NewNode creates an empty node.
func NewNode(name string) *Node {
	return &Node{Name: name, children: make(map[string]Trie)}
}

// Bind adds or replaces a binding. Bind returns the node to allow chaining
// while building defaults.
func (n *Node) Bind(key string, t Trie) *Node {
	key = NormalizeKey(key)
	if _, exists := n.children[key]; !exists {
		n.order = append(n.order, key)
	}
	n.children[key] = t
	return n
}

// Get resolves a key against the node.
func (n *Node) Get(key string) (Trie, bool) {
	if n == nil {
		return nil, false
	}
	t, ok := n.children[key]
	return t, ok
}

// Keys returns the bound keys in binding order.
func (n *Node) Keys() []string {
	return slices.Clone(n.order)
}

// Len returns the number of bindings.
func (n *Node) Len() int {
	return len(n.order)
}

// Merge overlays other onto n. Nodes present on both sides merge
// recursively and keep the name of n; any other binding in other replaces
// the one in n.
func (n *Node) Merge(other *Node) {
	if other == nil {
		return
	}
	for _, key := range other.order {
		incoming := other.children[key]
		if dst, ok := n.children[key].(*Node); ok {
			if src, ok := incoming.(*Node); ok {
				dst.Merge(src)
				continue
			}
		}
		n.Bind(key, incoming)
	}
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	c := &Node{Name: n.Name, order: slices.Clone(n.order), children: make(map[string]Trie, len(n.children))}
	for k, t := range n.children {
		switch t := t.(type) {
		case *Node:
			c.children[k] = t.Clone()
		case *Sequence:
			c.children[k] = &Sequence{Commands: slices.Clone(t.Commands)}
		case *Leaf:
			c.children[k] = &Leaf{Command: t.Command}
		}
	}
	return c
}

// Walk visits every leaf and sequence below n with the key path leading to it.
func (n *Node) Walk(fn func(path []string, t Trie)) {
	n.walk(nil, fn)
}

func (n *Node) walk(prefix []string, fn func(path []string, t Trie)) {
	for _, key := range n.order {
		path := append(slices.Clone(prefix), key)
		switch t := n.children[key].(type) {
		case *Node:
			t.walk(path, fn)
		default:
			fn(path, t)
		}
	}
}

// Keymaps holds the top-level node of every mode.
type Keymaps map[Mode]*Node

// Get returns the top-level node of mode.
func (k Keymaps) Get(mode Mode) (*Node, bool) {
	n, ok := k[mode]
	return n, ok
}

// Merge overlays user bindings onto a copy of k.
func (k Keymaps) Merge(user map[Mode]*Node) Keymaps {
	out := make(Keymaps, len(k))
	for mode, n := range k {
		out[mode] = n.Clone()
	}
	for _, mode := range slices.Sorted(maps.Keys(user)) {
		n := user[mode]
		if dst, ok := out[mode]; ok {
			dst.Merge(n)
			continue
		}
		out[mode] = n.Clone()
	}
	return out
}

var keyAliases = map[string]string{
	" ":         "space",
	"escape":    "esc",
	"ret":       "enter",
	"return":    "enter",
	"del":       "delete",
	"pageup":    "pgup",
	"pagedown":  "pgdown",
	"minus":     "-",
	"bs":        "backspace",
	"backspace": "backspace",
}

// NormalizeKey rewrites the accepted spellings of a key to the name key
// events carry. Helix style modifiers ("C-w", "A-x") become "ctrl+w" and
// "alt+x".
func NormalizeKey(key string) string {
	lower := strings.ToLower(key)
	if alias, ok := keyAliases[lower]; ok {
		return alias
	}

	var mods []string
	rest := key
	for len(rest) > 2 && rest[1] == '-' {
		switch rest[0] {
		case 'C', 'c':
			mods = append(mods, "ctrl")
		case 'A', 'a':
			mods = append(mods, "alt")
		case 'S', 's':
			mods = append(mods, "shift")
		default:
			return key
		}
		rest = rest[2:]
	}
	if len(mods) == 0 {
		return key
	}
	if alias, ok := keyAliases[strings.ToLower(rest)]; ok {
		rest = alias
	}
	return strings.Join(mods, "+") + "+" + rest
}
