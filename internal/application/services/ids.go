package services

import "github.com/google/uuid"

// validID reports whether id can name a stored entity. Malformed ids are
// treated as missing rather than reaching the database.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
