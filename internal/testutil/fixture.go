// Package testutil defines support code for unit tests.
package testutil

import "strings"

// CompleteJSON is a document that exercises every kind of value: strings,
// integers, fractions, exponents, negative numbers, constants, nested arrays
// and objects, and empty arrays and objects.
const CompleteJSON = `{
    "string": "This is a string",
    "number": 42,
    "float": 3.14,
    "exponential": 2.998e8,
    "negative": -17,
    "true": true,
    "false": false,
    "null": null,
    "array": [
        1,
        2,
        "three",
        4.5,
        true,
        null
    ],
    "object": {
        "key1": "value1",
        "key2": 100,
        "key3": {
            "nested": "object"
        }
    },
    "emptyArray": [],
    "emptyObject": {}
}`

// Nested returns a document consisting of n arrays nested inside each other,
// with the innermost containing the number 1.
func Nested(n int) string {
	return strings.Repeat("[", n) + "1" + strings.Repeat("]", n)
}
