package cache

import "errors"

var (
	// ErrCache возвращается при ошибках обращения к Redis
	ErrCache = errors.New("cache: redis operation failed")
)
