package normalize

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord marks source data the normalizer cannot map.
var ErrMalformedRecord = errors.New("malformed record")

// MalformedRecordError names the game and the missing or invalid field.
type MalformedRecordError struct {
	GameID int64
	Field  string
	Err    error // optional parse error
}

func (e *MalformedRecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed record for game %d: field %s: %v", e.GameID, e.Field, e.Err)
	}
	return fmt.Sprintf("malformed record for game %d: missing field %s", e.GameID, e.Field)
}

func (e *MalformedRecordError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedRecord, e.Err}
	}
	return []error{ErrMalformedRecord}
}
