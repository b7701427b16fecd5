package settings

import "errors"

// ErrUnknownKey indicates a key that is not in the binding table.
var ErrUnknownKey = errors.New("unknown settings key")
