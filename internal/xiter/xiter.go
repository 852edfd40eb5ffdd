// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package xiter

import (
	"iter"
)

// FetchFunc fetches the page addressed by token and returns its items and the continuation token.
//
// An empty token requests the first page. An empty next token marks the last page.
type FetchFunc[T any] func(token string) (items []T, next string, err error)

// Error returns an iterator that yields err once.
func Error[T any](err error) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		yield(zero, err)
	}
}

// Paginate returns a pull-based iterator over every item of every page fetched by fetch.
//
// Each page is requested only when the consumer advances past the previous one, and the
// sequence ends after the first page that carries an empty continuation token. A fetch
// error is yielded once and ends the sequence. Ranging again restarts from the first page.
func Paginate[T any](fetch FetchFunc[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		token := ""
		for {
			items, next, err := fetch(token)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}
			if next == "" {
				return
			}
			token = next
		}
	}
}
