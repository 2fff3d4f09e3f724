package keymap

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a mapping of keys to bindings. A scalar value binds a
// command, a list binds a command sequence, and a nested mapping binds a
// node. Nested nodes are named after the key that opens them.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: keymap must be a mapping", value.Line)
	}

	if n.children == nil {
		n.children = make(map[string]Trie)
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]
		key := keyNode.Value
		if key == "" {
			return fmt.Errorf("line %d: empty key", keyNode.Line)
		}

		t, err := decodeTrie(key, valNode)
		if err != nil {
			return err
		}
		n.Bind(key, t)
	}

	return nil
}

func decodeTrie(key string, value *yaml.Node) (Trie, error) {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Value == "" {
			return nil, fmt.Errorf("line %d: key %q has no command", value.Line, key)
		}
		return &Leaf{Command: value.Value}, nil

	case yaml.SequenceNode:
		seq := &Sequence{Commands: make([]string, 0, len(value.Content))}
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Value == "" {
				return nil, fmt.Errorf("line %d: key %q: sequence entries must be command names", item.Line, key)
			}
			seq.Commands = append(seq.Commands, item.Value)
		}
		if len(seq.Commands) == 0 {
			return nil, fmt.Errorf("line %d: key %q has an empty sequence", value.Line, key)
		}
		return seq, nil

	case yaml.MappingNode:
		child := NewNode(key)
		if err := child.UnmarshalYAML(value); err != nil {
			return nil, err
		}
		return child, nil
	}

	return nil, fmt.Errorf("line %d: key %q: unsupported binding", value.Line, key)
}
