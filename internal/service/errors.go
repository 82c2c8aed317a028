package service

import (
	"errors"
	"fmt"

	"github.com/Skotchmaster/furnishing_catalog/internal/repo"
	"github.com/Skotchmaster/furnishing_catalog/internal/util"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Error carries a client-facing message while unwrapping to one of the sentinels above.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func validationf(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

func notFound(msg string) error {
	return &Error{Kind: ErrNotFound, Msg: msg}
}

func conflictf(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Msg: fmt.Sprintf(format, args...)}
}

// storeErr relabels store failures: missing rows become notFoundMsg and
// unique violations become conflictMsg.
func storeErr(err error, notFoundMsg, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case repo.IsNotFound(err) && notFoundMsg != "":
		return notFound(notFoundMsg)
	case repo.IsDuplicate(err):
		if conflictMsg == "" {
			conflictMsg = "Duplicate value error"
		}
		return conflictf("%s", conflictMsg)
	default:
		return err
	}
}

func parseID(id string) (string, error) {
	hex, ok := util.NormalizeObjectID(id)
	if !ok {
		return "", validationf("Invalid ID format")
	}
	return hex, nil
}
