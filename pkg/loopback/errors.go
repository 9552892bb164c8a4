package loopback

import "errors"

var (
	ErrListen  = errors.New("loopback: failed to listen")
	ErrClosed  = errors.New("loopback: receiver already used")
	ErrTimeout = errors.New("loopback: timed out waiting for redirect")
	ErrOpen    = errors.New("loopback: failed to open authorization url")
)
