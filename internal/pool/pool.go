// Package pool provides reusable scratch containers for the object engine.
//
// Containers follow a strict checkout discipline: a container is either
// checked out to exactly one caller or idle in the pool, never both. Release
// clears the container before returning it, so an acquired container is
// always empty. Callers that hand a pooled container to third-party code
// must copy anything that code may retain before releasing.
package pool

import "sync"

var tables = sync.Pool{
	New: func() any { return make(map[string]any, 8) },
}

var lists = sync.Pool{
	New: func() any { return make([]any, 0, 8) },
}

// AcquireTable checks out an empty map container.
func AcquireTable() map[string]any {
	return tables.Get().(map[string]any)
}

// ReleaseTable clears the container and returns it to the pool.
func ReleaseTable(m map[string]any) {
	if m == nil {
		return
	}
	clear(m)
	tables.Put(m)
}

// AcquireList checks out an empty slice container.
func AcquireList() []any {
	return lists.Get().([]any)[:0]
}

// ReleaseList clears the container and returns it to the pool.
func ReleaseList(s []any) {
	if s == nil {
		return
	}
	clear(s)
	lists.Put(s[:0])
}
