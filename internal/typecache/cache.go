// Package typecache memoizes per-type computations that are stable for the
// lifetime of the process, such as parsed field lists. Values are computed at
// most once per key under concurrent access races (a duplicate computation
// may run, but a single result wins).
package typecache

import "sync"

var entries sync.Map

// Do returns the cached value for key, computing and storing it on first use.
func Do(key any, compute func() any) any {
	if v, ok := entries.Load(key); ok {
		return v
	}
	v, _ := entries.LoadOrStore(key, compute())
	return v
}
