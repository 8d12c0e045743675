package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsNotFound reports whether err is gorm's missing-row sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsValueTooLarge reports whether the database refused a value because of its
// size. Postgres, MySQL and SQLite phrase this differently.
func IsValueTooLarge(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, needle := range []string{
		"value too long",
		"data too long",
		"string or blob too big",
		"max_allowed_packet",
	} {
		if strings.Contains(msg, needle) {
			return true
		}
	}
	return false
}
