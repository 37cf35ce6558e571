package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// ErrDuplicate reports a unique index violation.
var ErrDuplicate = errors.New("duplicate record")

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
