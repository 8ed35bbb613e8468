package filter

import "errors"

var ErrUnknownView = errors.New("unknown view: must be one of dashboard, employees, today, history")
