package cache

import "errors"

var ErrUnknownKey = errors.New("cache key not registered")
