package defaults

import "errors"

// ErrConfiguration marks a soil profile that cannot be defaulted at all, such as a
// crop record without a name.
var ErrConfiguration = errors.New("soil configuration error")
