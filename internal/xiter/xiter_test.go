// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package xiter

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type pages map[string]struct {
	items []int
	next  string
}

func (p pages) fetcher(calls *[]string) FetchFunc[int] {
	return func(token string) ([]int, string, error) {
		*calls = append(*calls, token)
		pg, ok := p[token]
		if !ok {
			return nil, "", errors.New("unknown token " + token)
		}
		return pg.items, pg.next, nil
	}
}

func TestPaginate(t *testing.T) {
	p := pages{
		"":   {items: []int{1, 2}, next: "t1"},
		"t1": {items: nil, next: "t2"},
		"t2": {items: []int{3}, next: ""},
	}

	var calls []string
	var got []int
	for v, err := range Paginate(p.fetcher(&calls)) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, v)
	}

	if diff := cmp.Diff([]int{1, 2, 3}, got); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"", "t1", "t2"}, calls); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestPaginateStopsFetching(t *testing.T) {
	p := pages{
		"":   {items: []int{1, 2}, next: "t1"},
		"t1": {items: []int{3}, next: ""},
	}

	var calls []string
	for v := range Paginate(p.fetcher(&calls)) {
		if v == 1 {
			break
		}
	}
	if len(calls) != 1 {
		t.Errorf("fetch calls = %d, want 1", len(calls))
	}
}

func TestPaginateRestarts(t *testing.T) {
	p := pages{
		"": {items: []int{7}, next: ""},
	}

	var calls []string
	seq := Paginate(p.fetcher(&calls))
	for range 2 {
		for range seq {
		}
	}
	if diff := cmp.Diff([]string{"", ""}, calls); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestPaginateError(t *testing.T) {
	p := pages{
		"": {items: []int{1}, next: "missing"},
	}

	var calls []string
	var (
		got  []int
		errs int
	)
	for v, err := range Paginate(p.fetcher(&calls)) {
		if err != nil {
			errs++
			continue
		}
		got = append(got, v)
	}
	if errs != 1 {
		t.Errorf("errors = %d, want 1", errs)
	}
	if diff := cmp.Diff([]int{1}, got); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestError(t *testing.T) {
	want := errors.New("boom")
	n := 0
	for v, err := range Error[*int](want) {
		n++
		if v != nil || !errors.Is(err, want) {
			t.Errorf("got (%v, %v), want (nil, %v)", v, err, want)
		}
	}
	if n != 1 {
		t.Errorf("yields = %d, want 1", n)
	}
}
