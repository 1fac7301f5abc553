package service

import "errors"

var ErrInvalidDate = errors.New("invalid date")
