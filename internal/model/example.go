package model

// Example is the representative value attached to a mutation path. It is a
// three-way union so that "a legitimate absent option" and "no example exists"
// are never conflated with each other or with a literal null.
//
// Example values are plain JSON trees: map[string]any, []any, float64, string,
// bool and nil, as produced by encoding/json.
type Example interface {
	example()
}

// ExampleValue carries a concrete example value.
type ExampleValue struct {
	Value any
}

func (ExampleValue) example() {}

// ExampleOptionAbsent marks a legitimately absent option value. It serializes
// to an explicit null.
type ExampleOptionAbsent struct{}

func (ExampleOptionAbsent) example() {}

// ExampleUnavailable marks that no example exists for the location. It must
// never be serialized as a value.
type ExampleUnavailable struct{}

func (ExampleUnavailable) example() {}

// ExampleOf wraps a concrete JSON tree as an Example.
func ExampleOf(v any) Example {
	return ExampleValue{Value: v}
}
