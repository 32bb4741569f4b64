package tool

import "encoding/json"

// Definition is the function declaration presented to the model.
type Definition struct {
	Type     string   `json:"type"`
	Function Function `json:"function"`
}

// Function describes a callable by name, purpose and argument schema.
type Function struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters"`
}

// Definitions renders the set as model function definitions, in registration order.
func (s *Set) Definitions() []Definition {
	var ret []Definition
	for _, callable := range s.Callables() {
		ret = append(ret, Definition{
			Type: "function",
			Function: Function{
				Name:        callable.Name,
				Description: callable.Description,
				Parameters:  callable.InputSchema,
			},
		})
	}
	return ret
}
