package cmd

import (
	"fmt"
	"strings"
)

type keyValue struct {
	key   string
	value string
}

// parseKeyValuePairs keeps argument order. A key given twice is rejected.
// Values are kept verbatim.
func parseKeyValuePairs(items []string) ([]keyValue, error) {
	result := make([]keyValue, 0, len(items))
	seen := make(map[string]bool)
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		key, value, err := splitKeyValue(trimmed)
		if err != nil {
			return nil, err
		}
		if seen[key] {
			return nil, fmt.Errorf("duplicate key %q", key)
		}
		seen[key] = true
		result = append(result, keyValue{key: key, value: value})
	}
	return result, nil
}

func splitKeyValue(value string) (string, string, error) {
	parts := strings.SplitN(value, "=", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid format %q (expected KEY=VALUE)", value)
	}
	key := strings.TrimSpace(parts[0])
	if key == "" {
		return "", "", fmt.Errorf("invalid format %q (empty key)", value)
	}
	return key, parts[1], nil
}
