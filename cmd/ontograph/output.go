package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// envelope is the uniform JSON output contract: every command reports the
// inputs it acted on and the results it produced.
type envelope struct {
	Inputs  any `json:"inputs"`
	Results any `json:"results"`
}

// errorEnvelope is the JSON error contract.
type errorEnvelope struct {
	Error string `json:"error"`
}

// emitJSON writes the envelope as indented JSON with a trailing newline.
func emitJSON(inputs, results any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(envelope{Inputs: inputs, Results: results})
}

// fail reports a command failure. With --json the error goes to stdout as a
// JSON envelope; otherwise to stderr. The returned error propagates to main
// for the exit code.
func fail(jsonOut bool, err error) error {
	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		_ = enc.Encode(errorEnvelope{Error: err.Error()})
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
