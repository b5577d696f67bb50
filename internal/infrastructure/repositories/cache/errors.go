package cache

import "errors"

var (
	ErrKeyNotFound = errors.New("key not found in cache")
	ErrKeyExpired  = errors.New("key expired")
)

// IsMiss reports whether err just means the key is not there
func IsMiss(err error) bool {
	return errors.Is(err, ErrKeyNotFound) || errors.Is(err, ErrKeyExpired)
}
