package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., sqlrepo) inside this directory.

import "errors"

// ErrWithdrawalProcessed reports an attempt to process a withdrawal
// request that is no longer pending.
var ErrWithdrawalProcessed = errors.New("withdrawal request already processed")

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
