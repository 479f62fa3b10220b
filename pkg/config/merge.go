package config

// Merge combines two Contexts into a new one. Neither operand is mutated.
//
// Rules, applied key-by-key with other taking precedence:
//   - both sides hold a namespace: the namespaces are merged recursively;
//   - kinds conflict (namespace vs scalar) or both are scalars: other wins
//     outright.
//
// Merge is deterministic and order-sensitive: Merge(a, b) followed by
// Merge(_, c) equals merging [a, b, c] left to right.
func (c *Context) Merge(other *Context) *Context {
	if other == nil {
		return &Context{values: deepCopyMap(c.values)}
	}
	return &Context{values: mergeMaps(c.values, other.values)}
}

// WithOverrides returns a new Context where mapping is applied as the
// highest-precedence source.
func (c *Context) WithOverrides(mapping map[string]any) *Context {
	return c.Merge(FromMap(mapping))
}

// mergeMaps produces a fresh tree; base and overlay are left untouched.
func mergeMaps(base, overlay map[string]any) map[string]any {
	result := make(map[string]any, len(base)+len(overlay))
	for key, value := range base {
		result[key] = deepCopyValue(value)
	}
	for key, value := range overlay {
		baseNS, baseIsNS := result[key].(map[string]any)
		overlayNS, overlayIsNS := value.(map[string]any)
		if baseIsNS && overlayIsNS {
			result[key] = mergeMaps(baseNS, overlayNS)
			continue
		}
		result[key] = deepCopyValue(value)
	}
	return result
}

func deepCopyMap(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for key, value := range m {
		result[key] = deepCopyValue(value)
	}
	return result
}

func deepCopyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return deepCopyMap(v)
	case []any:
		copied := make([]any, len(v))
		for i, elem := range v {
			copied[i] = deepCopyValue(elem)
		}
		return copied
	default:
		return v
	}
}
