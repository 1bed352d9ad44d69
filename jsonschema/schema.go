package jsonschema

// Schema is a JSON Schema representation used for export and for schema
// documents. Besides the standard keywords it carries the annotations the
// validators understand (errorMessage, typeIdentifyingKey, uniqueKey,
// discriminantKey, brandKey).
type Schema struct {
	// Core
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Default     any    `json:"default,omitempty"`
	Const       any    `json:"const,omitempty"`
	Description string `json:"description,omitempty"`

	// String
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	// Number
	Minimum          *float64 `json:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty"`
	MultipleOf       *float64 `json:"multipleOf,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items       *Schema `json:"items,omitempty"`
	MinItems    *int    `json:"minItems,omitempty"`
	MaxItems    *int    `json:"maxItems,omitempty"`
	UniqueItems bool    `json:"uniqueItems,omitempty"`

	// Union
	AnyOf []*Schema `json:"anyOf,omitempty"`

	// Annotations
	ErrorMessage       string `json:"errorMessage,omitempty"`
	TypeIdentifyingKey bool   `json:"typeIdentifyingKey,omitempty"`
	UniqueKey          string `json:"uniqueKey,omitempty"`
	DiscriminantKey    string `json:"discriminantKey,omitempty"`
	BrandKey           string `json:"brandKey,omitempty"`
}
