package eventstream

import "errors"

// ErrNilRecord indicates a nil record was provided to a publisher.
var ErrNilRecord = errors.New("nil record")
