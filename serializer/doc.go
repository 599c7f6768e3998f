// Package serializer converts parameter values into URL fragments following
// the OpenAPI 3.x parameter serialization rules.
//
// Every function in this package is pure: inputs are read, never modified,
// and no state is shared between calls, so all of them are safe for
// concurrent use.
//
// # Values
//
// A parameter value is one of:
//
//   - a primitive: string, bool, any integer or float kind, []byte,
//     json.Number, fmt.Stringer, or a named type with one of those kinds
//   - an array: any slice or array (one level deep)
//   - an object: a *Params (insertion order) or any map with string keys
//     (sorted key order), one level deep
//
// nil and nil pointers are treated as absent and produce no output.
// Nesting an array or object inside another one yields an
// [oaserrors.UnsupportedValueError].
//
// # Styles
//
// Object styles:
//
//	| style      | explode=false       | explode=true             |
//	|------------|---------------------|--------------------------|
//	| simple     | k1,v1,k2,v2         | k1=v1,k2=v2              |
//	| label      | .k1,v1,k2,v2        | .k1=v1.k2=v2             |
//	| matrix     | ;name=k1,v1,k2,v2   | ;k1=v1;k2=v2             |
//	| form       | name=k1,v1,k2,v2    | k1=v1&k2=v2              |
//	| deepObject | (always exploded)   | name[k1]=v1&name[k2]=v2  |
//
// Array styles:
//
//	| style          | explode=false  | explode=true     |
//	|----------------|----------------|------------------|
//	| simple         | 3,4,5          | 3,4,5            |
//	| label          | .3,4,5         | .3.4.5           |
//	| matrix         | ;id=3,4,5      | ;id=3;id=4;id=5  |
//	| form           | id=3,4,5       | id=3&id=4&id=5   |
//	| spaceDelimited | id=3%204%205   | id=3&id=4&id=5   |
//	| pipeDelimited  | id=3|4|5       | id=3&id=4&id=5   |
//
// # Reserved Characters
//
// Values are percent-encoded so that only RFC 3986 unreserved characters
// remain raw; spaces become %20. Setting AllowReserved leaves values exactly
// as given. Object keys are never encoded.
//
// # Paths and Queries
//
// [SerializePath] expands {name}, {.name}, {;name} and {name*} tokens in a
// path template. [NewQuerySerializer] builds a function that renders a whole
// query parameter set:
//
//	query := serializer.NewParams("tags", []string{"a", "b"}, "limit", 10)
//	s, _ := serializer.DefaultQuerySerializer(query)
//	// s == "tags=a&tags=b&limit=10"
package serializer
