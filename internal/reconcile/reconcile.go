// Package reconcile merges a freshly fetched remote collection into a local
// ordered collection by identity.
//
// Matching uses the identity string only. A match replaces the local slot
// with a freshly built entity; a miss appends. Local entries absent from the
// remote list are kept. A bad remote item is skipped without touching the
// local collection or stopping the pass.
package reconcile

import (
	"errors"
	"fmt"

	"o365-calendar/pkg/outlook"
)

// Entity is anything with a stable identity. Unsaved entities return "".
type Entity interface {
	ID() string
}

// Factory builds an entity around one raw remote item.
type Factory[T Entity] func(outlook.Payload) (T, error)

// Skipped records a remote item left out of the pass.
type Skipped struct {
	Index int    // position in the remote list
	ID    string // identity, when one could be read
	Err   error
}

// Result is the outcome of one pass. Items aliases the local slice passed
// in: replacements are written into it, appends may reallocate.
type Result[T Entity] struct {
	Items    []T
	Replaced int
	Appended int
	Skipped  []Skipped
}

// ErrPanicked wraps a panic raised while building one item.
var ErrPanicked = errors.New("panic while building entity")

// Reconcile merges remote into local. The scan is linear per remote item.
func Reconcile[T Entity](local []T, remote []outlook.Payload, build Factory[T]) Result[T] {
	res := Result[T]{Items: local}
	for i, raw := range remote {
		id, err := res.apply(raw, build)
		if err != nil {
			res.Skipped = append(res.Skipped, Skipped{Index: i, ID: id, Err: err})
		}
	}
	return res
}

func (r *Result[T]) apply(raw outlook.Payload, build Factory[T]) (id string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, rec)
		}
	}()

	id, ok := raw.ID()
	if !ok {
		return "", outlook.ErrMissingIdentity
	}

	entity, err := build(raw)
	if err != nil {
		return id, err
	}

	if i := indexOf(r.Items, id); i >= 0 {
		r.Items[i] = entity
		r.Replaced++
		return id, nil
	}
	r.Items = append(r.Items, entity)
	r.Appended++
	return id, nil
}

func indexOf[T Entity](items []T, id string) int {
	for i, e := range items {
		if e.ID() == id {
			return i
		}
	}
	return -1
}
