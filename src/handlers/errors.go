package handlers

import "errors"

var errAccountNotFound = errors.New("account not found")
