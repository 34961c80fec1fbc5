// Package schema provides strict validation of raw backend records.
//
// The normalizer (internal/normalize) deliberately drops malformed records
// instead of raising, because partial backend responses are routine. Some
// callers want the opposite: the import pipeline's --strict mode refuses a
// payload containing records the normalizer would drop or silently default.
// This package is that strict path, implemented as a CUE schema so the
// accepted shape is auditable in one place rather than spread across
// normalizer branches.
package schema

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed records.cue
var recordsCUE string

// Validation error codes.
const (
	ErrSchemaBroken   = "E200" // embedded schema failed to compile
	ErrPayloadDecode  = "E201" // payload is not a JSON array of objects
	ErrSessionRecord  = "E202" // session record violates schema
	ErrActivityRecord = "E203" // activity record violates schema
)

// ValidationError represents one schema violation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

var (
	schemaOnce sync.Once
	schemaCtx  *cue.Context
	schemaVal  cue.Value
)

func compiledSchema() (cue.Value, *cue.Context, error) {
	schemaOnce.Do(func() {
		schemaCtx = cuecontext.New()
		schemaVal = schemaCtx.CompileString(recordsCUE, cue.Filename("records.cue"))
	})
	if err := schemaVal.Err(); err != nil {
		return cue.Value{}, nil, err
	}
	return schemaVal, schemaCtx, nil
}

// ValidateSessions checks raw planned-session records against the strict
// schema. Returns every violation found; an empty slice means the payload
// is clean.
func ValidateSessions(records []map[string]any) []ValidationError {
	return validateRecords(records, "#Session", "sessions", ErrSessionRecord)
}

// ValidateActivities checks raw completed-activity records against the
// strict schema.
func ValidateActivities(records []map[string]any) []ValidationError {
	return validateRecords(records, "#Activity", "activities", ErrActivityRecord)
}

func validateRecords(records []map[string]any, defName, field, code string) []ValidationError {
	root, ctx, err := compiledSchema()
	if err != nil {
		return []ValidationError{{
			Field:   "schema",
			Message: fmt.Sprintf("compiling embedded schema: %v", err),
			Code:    ErrSchemaBroken,
		}}
	}

	def := root.LookupPath(cue.ParsePath(defName))
	if err := def.Err(); err != nil {
		return []ValidationError{{
			Field:   "schema",
			Message: fmt.Sprintf("looking up %s: %v", defName, err),
			Code:    ErrSchemaBroken,
		}}
	}

	var errs []ValidationError
	for i, rec := range records {
		unified := def.Unify(ctx.Encode(rec))
		if err := unified.Validate(cue.Concrete(false)); err != nil {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: err.Error(),
				Code:    code,
			})
		}
	}
	return errs
}
