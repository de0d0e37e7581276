package domain

import "errors"

var ErrInvalidInput = errors.New("invalid input")
var ErrListingNotFound = errors.New("waste listing not found")
var ErrUserNotFound = errors.New("user not found")
var ErrEmailExists = errors.New("user with this email already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
