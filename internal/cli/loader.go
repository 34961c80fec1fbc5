package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/paceline/paceline/internal/normalize"
)

// Error codes for payload loading.
const (
	ErrCodeGeneric     = "E001" // unspecified command error
	ErrCodeNotFound    = "E005" // payload file not found
	ErrCodeParseFailed = "E006" // payload is not a JSON array of objects
	ErrCodeNoRecords   = "E007" // payload decoded to an empty array
)

// LoadError represents an error that occurred during payload loading.
type LoadError struct {
	Code    string
	Message string
	Path    string
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadRecords reads a JSON payload file and decodes it into raw records.
// The payload must be a JSON array of objects; anything else is a
// parse failure. Backends disagree on field names, so no key checking
// happens here. That is the normalizer's job.
func LoadRecords(path string) ([]normalize.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: "payload file not found", Path: path}
		}
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading payload: %v", err), Path: path}
	}

	var records []normalize.RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("payload must be a JSON array of objects: %v", err), Path: path}
	}
	if len(records) == 0 {
		return nil, &LoadError{Code: ErrCodeNoRecords, Message: "payload contains no records", Path: path}
	}
	return records, nil
}

// asMaps converts raw records to plain maps for schema validation.
func asMaps(records []normalize.RawRecord) []map[string]any {
	maps := make([]map[string]any, len(records))
	for i, r := range records {
		maps[i] = map[string]any(r)
	}
	return maps
}
