/*
Package reasoning implements the primary operations behind the reasoning
tools: deterministic step processors that structure a problem for the
client rather than solving it. Each processor reports the complexity
feature values of its invocation so the metadata engine can learn its
cost profile.
*/
package reasoning

import "fmt"

// Processor is one reasoning tool: its MCP surface plus the operation.
type Processor struct {
	// Name is the tool id (e.g. reason_tree).
	Name string

	// Description is the tool description shown in tools/list.
	Description string

	// InputSchema is the JSON schema of the tool arguments.
	InputSchema map[string]interface{}

	// Run executes the operation and returns the textual result plus
	// the complexity feature values of this invocation.
	Run func(args map[string]interface{}) (string, map[string]float64, error)
}

// Registry returns all reasoning processors in catalog order.
func Registry() []Processor {
	return []Processor{
		divergentProcessor(),
		treeProcessor(),
		mctsProcessor(),
		graphProcessor(),
		counterfactualProcessor(),
	}
}

// stringArg extracts a required string argument.
func stringArg(args map[string]interface{}, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("missing required argument: %s", key)
	}
	return v, nil
}

// numArg extracts a numeric argument with a default. JSON numbers
// arrive as float64; integers typed directly in tests also work.
func numArg(args map[string]interface{}, key string, def float64) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}

// clampNum bounds a numeric argument to a sane range.
func clampNum(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
