package service

import "errors"

// ErrUnknownScreen is returned when a data_exchange request names a screen
// the router has no transition for.
var ErrUnknownScreen = errors.New("unknown screen")
