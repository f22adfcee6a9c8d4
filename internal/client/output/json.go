package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Stdout and Stderr are where command output goes
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// JSONResponse is the envelope printed by every command run with --json
type JSONResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error,omitempty"`
}

// WriteJSON writes data, or err, wrapped in the envelope
func WriteJSON(w io.Writer, data interface{}, err error) error {
	response := JSONResponse{Success: err == nil, Data: data}
	if err != nil {
		response.Error = err.Error()
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// OutputJSON prints the envelope on Stdout and exits if it cannot be encoded
func OutputJSON(data interface{}, err error) {
	if encodeErr := WriteJSON(Stdout, data, err); encodeErr != nil {
		fmt.Fprintf(Stderr, "Failed to encode JSON: %v\n", encodeErr)
		os.Exit(1)
	}
}
