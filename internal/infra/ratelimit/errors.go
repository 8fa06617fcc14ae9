package ratelimit

import "errors"

var (
	// ErrStore возвращается при ошибках обращения к Redis
	ErrStore = errors.New("ratelimit.store: redis operation failed")
)
