package model

// Tool is either a function definition offered to the model or a tool call
// requested by it, following the OpenAI chat completions shape.
type Tool struct {
	Id       string    `json:"id,omitempty"`
	Type     string    `json:"type,omitempty"`
	Function *Function `json:"function,omitempty"`
	Index    *int      `json:"index,omitempty"`
}

// Function holds the definition fields when the tool is offered to the model
// and the arguments field when the model requests a call.
type Function struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Parameters  any    `json:"parameters,omitempty"`
	Arguments   string `json:"arguments,omitempty"`
}
