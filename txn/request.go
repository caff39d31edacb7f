package txn

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Request is a decoded calculation request.
type Request struct {
	Transactions []Input
}

// DecodeRequest reads a calculation request of the form
//
//	{"transactions": [ {...}, {...} ]}
//
// A body that is not a JSON object, or whose transactions member is missing
// or not an array, fails with InputValidationError. Array elements that are
// not objects are kept as invalid Inputs so the batch stays one-to-one with
// its results.
func DecodeRequest(r io.Reader) (*Request, error) {
	var root map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, &InputValidationError{Reason: "request body must be a JSON object", Err: err}
	}
	if root == nil {
		return nil, &InputValidationError{Reason: "request body must be a JSON object"}
	}

	raw, ok := root["transactions"]
	raw = bytes.TrimSpace(raw)
	if !ok || len(raw) == 0 || raw[0] != '[' {
		return nil, &InputValidationError{Reason: "transactions array is required"}
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, &InputValidationError{Reason: "transactions array is required", Err: err}
	}

	req := &Request{Transactions: make([]Input, len(elements))}
	for i, element := range elements {
		req.Transactions[i] = decodeInput(element)
	}

	return req, nil
}

func decodeInput(element json.RawMessage) Input {
	element = bytes.TrimSpace(element)
	if len(element) == 0 || element[0] != '{' {
		return Input{Invalid: &InvalidFieldError{
			Field:  "transaction",
			Value:  string(element),
			Reason: "must be a JSON object",
		}}
	}

	var in Input
	if err := json.Unmarshal(element, &in); err != nil {
		return Input{Invalid: &InvalidFieldError{
			Field:  "transaction",
			Reason: fmt.Sprintf("cannot be decoded: %v", err),
		}}
	}
	return in
}
