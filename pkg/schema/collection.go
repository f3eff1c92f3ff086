package schema

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Entry is one item of a Collection. An empty Key marks a positional entry
// whose Value names a flag.
type Entry struct {
	Key   string
	Value any
}

// Collection is an ordered, semi-structured mapping: keyed entries keep
// their value, positional entries are boolean flags. It is what decoding a
// YAML or JSON document produces, with nested mappings decoded as
// Collections and sequences as []any.
type Collection []Entry

// Get returns the value of the first keyed entry named key.
func (c Collection) Get(key string) (any, bool) {
	for _, e := range c {
		if e.Key != "" && e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys of keyed entries in order.
func (c Collection) Keys() []string {
	keys := make([]string, 0, len(c))
	for _, e := range c {
		if e.Key != "" {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// Map returns the keyed entries as a map. Positional entries are dropped and
// a repeated key keeps its last value.
func (c Collection) Map() map[string]any {
	m := make(map[string]any, len(c))
	for _, e := range c {
		if e.Key != "" {
			m[e.Key] = e.Value
		}
	}
	return m
}

// CollectionFromMap converts m into a Collection ordered by key. Go maps carry
// no order, so callers that care about declaration order should build a
// Collection directly.
func CollectionFromMap(m map[string]any) Collection {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	c := make(Collection, 0, len(keys))
	for _, k := range keys {
		c = append(c, Entry{Key: k, Value: m[k]})
	}
	return c
}

// UnmarshalYAML decodes a mapping into keyed entries and a sequence into
// positional entries, where sequence items that are mappings contribute
// keyed entries.
func (c *Collection) UnmarshalYAML(n *yaml.Node) error {
	n = resolveNode(n)
	switch n.Kind {
	case yaml.MappingNode:
		out, err := mappingToCollection(n)
		if err != nil {
			return err
		}
		*c = out
		return nil
	case yaml.SequenceNode:
		out := make(Collection, 0, len(n.Content))
		for _, item := range n.Content {
			item = resolveNode(item)
			if item.Kind == yaml.MappingNode {
				nested, err := mappingToCollection(item)
				if err != nil {
					return err
				}
				out = append(out, nested...)
				continue
			}
			v, err := nodeValue(item)
			if err != nil {
				return err
			}
			out = append(out, Entry{Value: v})
		}
		*c = out
		return nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return err
		}
		if v == nil {
			*c = Collection{}
			return nil
		}
	}
	return fmt.Errorf("line %d: expected a mapping or a sequence", n.Line)
}

func resolveNode(n *yaml.Node) *yaml.Node {
	for n != nil && (n.Kind == yaml.DocumentNode || n.Kind == yaml.AliasNode) {
		if n.Kind == yaml.AliasNode {
			n = n.Alias
			continue
		}
		if len(n.Content) == 0 {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}
		}
		n = n.Content[0]
	}
	return n
}

func mappingToCollection(n *yaml.Node) (Collection, error) {
	out := make(Collection, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := resolveNode(n.Content[i])
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
		}
		v, err := nodeValue(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{Key: key.Value, Value: v})
	}
	return out, nil
}

// nodeValue converts n into Go values: Collection for mappings, []any for
// sequences and the natural scalar type otherwise.
func nodeValue(n *yaml.Node) (any, error) {
	n = resolveNode(n)
	switch n.Kind {
	case yaml.MappingNode:
		return mappingToCollection(n)
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := nodeValue(item)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}
