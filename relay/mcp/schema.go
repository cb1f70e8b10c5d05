package mcp

import (
	"sort"

	"github.com/Laisky/errors/v2"

	relaymodel "github.com/Laisky/mcp-chat/relay/model"
)

// BuildFunctionSchema converts discovered tools into the OpenAI
// function-calling format. Tools without parameters omit the
// parameters object entirely rather than sending an empty schema.
func BuildFunctionSchema(tools []Tool) []relaymodel.Tool {
	out := make([]relaymodel.Tool, 0, len(tools))
	for _, tool := range tools {
		fn := &relaymodel.Function{
			Name:        tool.Name,
			Description: tool.Description,
		}
		if len(tool.Parameters) > 0 {
			fn.Parameters = buildParameterSchema(tool.Parameters)
		}
		out = append(out, relaymodel.Tool{
			Type:     "function",
			Function: fn,
		})
	}
	return out
}

// buildParameterSchema renders the JSON Schema object for a tool's
// parameter map. The required list is sorted so the schema sent to
// providers is deterministic, and is always present so strict schema
// validators see an explicit empty list instead of a missing key.
func buildParameterSchema(params map[string]ParameterSpec) map[string]any {
	properties := make(map[string]any, len(params))
	required := make([]string, 0)
	for name, spec := range params {
		prop := map[string]any{
			"type":        string(spec.Type),
			"description": spec.Description,
		}
		if spec.Default != nil {
			prop["default"] = spec.Default
		}
		properties[name] = prop
		if spec.Required {
			required = append(required, name)
		}
	}
	sort.Strings(required)

	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// ValidateArguments checks model-provided arguments against a tool's
// parameter specs. Only type mismatches on supplied values are
// rejected; missing parameters are tolerated because tool servers do
// not consume arguments anyway.
func ValidateArguments(args map[string]any, params map[string]ParameterSpec) error {
	for name, value := range args {
		spec, ok := params[name]
		if !ok {
			continue
		}
		if !spec.Type.Valid() {
			continue
		}
		if !spec.Type.Matches(value) {
			return errors.Errorf("argument %q should be %s", name, spec.Type)
		}
	}
	return nil
}
