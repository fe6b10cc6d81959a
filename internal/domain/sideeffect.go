package domain

type SideEffectKind string

const (
	SideEffectCacheSet     SideEffectKind = "cache.set"
	SideEffectCacheDelete  SideEffectKind = "cache.delete"
	SideEffectEventPublish SideEffectKind = "event.publish"
)

// SideEffect is the outcome of one best-effort action performed after a
// primary write. Err is nil on success. A failed side effect never fails the
// mutation that triggered it.
type SideEffect struct {
	Kind SideEffectKind
	// Key is the cache key or topic the side effect targeted.
	Key string
	Err error
}

func (s SideEffect) OK() bool { return s.Err == nil }
