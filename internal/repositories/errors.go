package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors returned by all repository implementations. Callers check
// them with errors.Is and map them to 404/409 responses.
var (
	// ErrNotFound indicates a lookup by natural key matched no row.
	ErrNotFound = errors.New("record not found")
	// ErrConflict indicates a write violated a unique or composite-unique
	// constraint. The enclosing transaction has been rolled back.
	ErrConflict = errors.New("record already exists")
)

// translate maps GORM errors to the repository sentinels. Requires the
// database handle to be opened with TranslateError so driver-specific
// duplicate-key errors surface as gorm.ErrDuplicatedKey.
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	}
	return err
}
