// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

// Kind is the type of a lexical token in the JSON grammar.
//
// Commas and colons are not reported as tokens; they are implied by the
// structure of the surrounding tokens.
type Kind byte

// Constants defining the valid Kind values.
const (
	None         Kind = iota // no token has been read
	BeginObject              // left brace "{"
	EndObject                // right brace "}"
	BeginArray               // left square bracket "["
	EndArray                 // right square bracket "]"
	PropertyName             // quoted string before ":" in an object
	Comment                  // comment: // ... or /* ... */
	String                   // quoted string value
	Number                   // number
	True                     // constant: true
	False                    // constant: false
	Null                     // constant: null

	// The row database stores kinds in 4 bits; do not add values past 15.
)

var kindStr = [...]string{
	None:         "none",
	BeginObject:  `"{"`,
	EndObject:    `"}"`,
	BeginArray:   `"["`,
	EndArray:     `"]"`,
	PropertyName: "property name",
	Comment:      "comment",
	String:       "string",
	Number:       "number",
	True:         "true",
	False:        "false",
	Null:         "null",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return "invalid token"
	}
	return kindStr[k]
}

// ValueKind is the type of a JSON value held by an Element.
type ValueKind byte

// Constants defining the valid ValueKind values.
const (
	Undefined   ValueKind = iota // no value, or a closed document
	ObjectValue                  // object
	ArrayValue                   // array
	StringValue                  // string, including property names
	NumberValue                  // number
	TrueValue                    // constant: true
	FalseValue                   // constant: false
	NullValue                    // constant: null
)

var valueKindStr = [...]string{
	Undefined:   "undefined",
	ObjectValue: "object",
	ArrayValue:  "array",
	StringValue: "string",
	NumberValue: "number",
	TrueValue:   "true",
	FalseValue:  "false",
	NullValue:   "null",
}

func (v ValueKind) String() string {
	if int(v) >= len(valueKindStr) {
		return "invalid kind"
	}
	return valueKindStr[v]
}

// valueKind maps the kind of a row to the kind of the value it begins.
func (k Kind) valueKind() ValueKind {
	switch k {
	case BeginObject:
		return ObjectValue
	case BeginArray:
		return ArrayValue
	case String, PropertyName:
		return StringValue
	case Number:
		return NumberValue
	case True:
		return TrueValue
	case False:
		return FalseValue
	case Null:
		return NullValue
	}
	return Undefined
}
