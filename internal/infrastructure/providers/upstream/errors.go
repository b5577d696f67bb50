package upstream

import "errors"

var (
	ErrRequestFailed = errors.New("upstream request failed")
	ErrDecode        = errors.New("upstream response could not be decoded")
)
