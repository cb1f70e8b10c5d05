package mcp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildFunctionSchemaOmitsEmptyParameters(t *testing.T) {
	schema := BuildFunctionSchema([]Tool{{Name: "ping", Description: "liveness probe"}})
	require.Len(t, schema, 1)
	require.Equal(t, "function", schema[0].Type)
	require.Equal(t, "ping", schema[0].Function.Name)
	require.Equal(t, "liveness probe", schema[0].Function.Description)
	require.Nil(t, schema[0].Function.Parameters)
}

func TestBuildFunctionSchemaRequiredMembership(t *testing.T) {
	schema := BuildFunctionSchema([]Tool{{
		Name: "lookup",
		Parameters: map[string]ParameterSpec{
			"host":    {Type: ParameterTypeString, Description: "target host", Required: true},
			"port":    {Type: ParameterTypeNumber, Required: true},
			"verbose": {Type: ParameterTypeBoolean, Default: false},
		},
	}})
	require.Len(t, schema, 1)

	params, ok := schema[0].Function.Parameters.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "object", params["type"])

	properties, ok := params["properties"].(map[string]any)
	require.True(t, ok)
	require.Len(t, properties, 3)

	host, ok := properties["host"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "string", host["type"])
	require.Equal(t, "target host", host["description"])

	verbose, ok := properties["verbose"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, false, verbose["default"])

	required, ok := params["required"].([]string)
	require.True(t, ok)
	require.ElementsMatch(t, []string{"host", "port"}, required)
}

func TestBuildFunctionSchemaEmptyRequiredList(t *testing.T) {
	schema := BuildFunctionSchema([]Tool{{
		Name: "status",
		Parameters: map[string]ParameterSpec{
			"verbose": {Type: ParameterTypeBoolean},
		},
	}})

	params, ok := schema[0].Function.Parameters.(map[string]any)
	require.True(t, ok)
	required, ok := params["required"].([]string)
	require.True(t, ok)
	require.Empty(t, required)
}

func TestValidateArguments(t *testing.T) {
	params := map[string]ParameterSpec{
		"host":  {Type: ParameterTypeString, Required: true},
		"count": {Type: ParameterTypeNumber},
	}

	require.NoError(t, ValidateArguments(map[string]any{"host": "example.com", "count": 3.0}, params))

	// missing required params are tolerated; servers ignore arguments
	require.NoError(t, ValidateArguments(map[string]any{}, params))

	// unknown argument names pass through
	require.NoError(t, ValidateArguments(map[string]any{"extra": true}, params))

	// type mismatches on supplied values are rejected
	err := ValidateArguments(map[string]any{"count": "three"}, params)
	require.Error(t, err)
	require.Contains(t, err.Error(), "count")
}

func TestParameterTypeMatches(t *testing.T) {
	require.True(t, ParameterTypeString.Matches("x"))
	require.False(t, ParameterTypeString.Matches(1.0))
	require.True(t, ParameterTypeNumber.Matches(1.5))
	require.True(t, ParameterTypeBoolean.Matches(true))
	require.True(t, ParameterTypeArray.Matches([]any{1.0}))
	require.True(t, ParameterTypeObject.Matches(map[string]any{}))
	// null always conforms
	require.True(t, ParameterTypeNumber.Matches(nil))
}
