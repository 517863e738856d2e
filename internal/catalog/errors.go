package catalog

import "errors"

// ErrDuplicateKey indicates an insert for a key already present in the
// catalog. Callers treat it as "this slot was already captured" and skip.
var ErrDuplicateKey = errors.New("catalog: duplicate episode key")
