package agent

// ToolDescriptor describes a tool to the completion endpoint. Descriptors are
// static: they are declared once at registration time and passed verbatim on
// every endpoint call. The tool name is the dispatch key and must remain
// stable for a deployment.
type ToolDescriptor struct {
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Parameters  *Schema `json:"parameters,omitempty"`
}

// Schema is the JSON-schema object describing a tool's named parameters.
type Schema struct {
	Type       string               `json:"type"`
	Properties map[string]*Property `json:"properties,omitempty"`
	Required   []string             `json:"required,omitempty"`
}

// Property describes a single tool parameter.
type Property struct {
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	Items       *Property `json:"items,omitempty"`
	Enum        []string  `json:"enum,omitempty"`
}

// NewTool creates a function tool descriptor with an empty object schema.
func NewTool(name, description string) ToolDescriptor {
	return ToolDescriptor{
		Type:        "function",
		Name:        name,
		Description: description,
		Parameters: &Schema{
			Type:       "object",
			Properties: map[string]*Property{},
		},
	}
}

func (d ToolDescriptor) withProperty(name string, p *Property, required bool) ToolDescriptor {
	d.Parameters.Properties[name] = p
	if required {
		d.Parameters.Required = append(d.Parameters.Required, name)
	}
	return d
}

// WithString adds a string parameter to the descriptor.
func (d ToolDescriptor) WithString(name, description string, required bool) ToolDescriptor {
	return d.withProperty(name, &Property{Type: "string", Description: description}, required)
}

// WithInteger adds an integer parameter to the descriptor.
func (d ToolDescriptor) WithInteger(name, description string, required bool) ToolDescriptor {
	return d.withProperty(name, &Property{Type: "integer", Description: description}, required)
}

// WithNumber adds a number parameter to the descriptor.
func (d ToolDescriptor) WithNumber(name, description string, required bool) ToolDescriptor {
	return d.withProperty(name, &Property{Type: "number", Description: description}, required)
}

// WithBoolean adds a boolean parameter to the descriptor.
func (d ToolDescriptor) WithBoolean(name, description string, required bool) ToolDescriptor {
	return d.withProperty(name, &Property{Type: "boolean", Description: description}, required)
}

// WithStringArray adds a parameter holding a list of strings.
func (d ToolDescriptor) WithStringArray(name, description string, required bool) ToolDescriptor {
	return d.withProperty(name, &Property{
		Type:        "array",
		Description: description,
		Items:       &Property{Type: "string"},
	}, required)
}

// WithStringTable adds a parameter holding a list of rows, each a list of
// strings. Used for spreadsheet cell ranges.
func (d ToolDescriptor) WithStringTable(name, description string, required bool) ToolDescriptor {
	return d.withProperty(name, &Property{
		Type:        "array",
		Description: description,
		Items: &Property{
			Type:  "array",
			Items: &Property{Type: "string"},
		},
	}, required)
}

// WithEnum adds a string parameter restricted to the given values.
func (d ToolDescriptor) WithEnum(name, description string, required bool, values ...string) ToolDescriptor {
	return d.withProperty(name, &Property{
		Type:        "string",
		Description: description,
		Enum:        values,
	}, required)
}
