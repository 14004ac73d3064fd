package generation

// Kind enumerates the node kinds a shape constraint can express.
type Kind string

// Shape node kinds
const (
	KindObject  Kind = "object"
	KindArray   Kind = "array"
	KindString  Kind = "string"
	KindInteger Kind = "integer"
)

// Shape is a recursive schema describing the JSON structure the backend
// is asked to conform its output to. It is attached to structured
// requests as a generation-time directive; the backend is expected, but
// not guaranteed, to honor it, which is why response decoding stays
// tolerant (see decode.go).
type Shape struct {
	Kind       Kind              `json:"kind"`
	Properties map[string]*Shape `json:"properties,omitempty"` // object nodes
	Items      *Shape            `json:"items,omitempty"`      // array nodes
	Required   []string          `json:"required,omitempty"`   // object nodes
}

// Object builds an object shape. All listed properties are required
// unless trimmed afterwards via the Required field.
func Object(properties map[string]*Shape) *Shape {
	required := make([]string, 0, len(properties))
	for name := range properties {
		required = append(required, name)
	}
	return &Shape{
		Kind:       KindObject,
		Properties: properties,
		Required:   required,
	}
}

// Array builds an array shape with the given element shape.
func Array(items *Shape) *Shape {
	return &Shape{Kind: KindArray, Items: items}
}

// String builds a string shape.
func String() *Shape {
	return &Shape{Kind: KindString}
}

// Integer builds an integer shape.
func Integer() *Shape {
	return &Shape{Kind: KindInteger}
}
