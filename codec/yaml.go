package codec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// decodeYAML unmarshals YAML restricted to the JSON-compatible schema.
// Scalars the yaml resolver would type beyond null/bool/int/float/string,
// timestamps most notably, keep their literal string form instead.
func decodeYAML(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 {
		// Empty document.
		return nil, nil
	}
	return yamlValue(&root)
}

func yamlValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return yamlValue(node.Content[0])
	case yaml.MappingNode:
		out := make(map[string]any, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, err := yamlKey(node.Content[i])
			if err != nil {
				return nil, err
			}
			value, err := yamlValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[key] = value
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			value, err := yamlValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, value)
		}
		return out, nil
	case yaml.AliasNode:
		return yamlValue(node.Alias)
	case yaml.ScalarNode:
		return yamlScalar(node)
	default:
		return nil, fmt.Errorf("unexpected yaml node kind %d", node.Kind)
	}
}

// yamlScalar decodes the JSON-compatible scalar tags through the yaml
// resolver; anything else (!!timestamp, !!binary) stays a plain string.
func yamlScalar(node *yaml.Node) (any, error) {
	switch node.Tag {
	case "!!null":
		return nil, nil
	case "!!bool", "!!int", "!!float", "!!str":
		var out any
		if err := node.Decode(&out); err != nil {
			return nil, err
		}
		return out, nil
	default:
		return node.Value, nil
	}
}

// yamlKey renders a mapping key as its literal string; non-scalar keys fall
// outside the JSON-compatible schema.
func yamlKey(node *yaml.Node) (string, error) {
	if node.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("unsupported yaml mapping key kind %d", node.Kind)
	}
	return node.Value, nil
}
