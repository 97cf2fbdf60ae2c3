package catalog

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrLoadCatalog = errors.New("load catalog failed")
)
