package repo

import "errors"

// ErrProductNotFound is returned when a product is not found in the repository.
var ErrProductNotFound = errors.New("product not found")

// ErrConcurrentUpdate is returned by Update when the record was deleted
// between the caller's read and the write.
var ErrConcurrentUpdate = errors.New("product was modified or deleted concurrently")

// ErrUserNotFound is returned when a user is not found in the repository.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicatedValueUnique is returned on unique constraint violations.
var ErrDuplicatedValueUnique = errors.New("duplicated value violates unique constraint")
