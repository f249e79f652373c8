package circuit

import "sync/atomic"

// Process-wide monotonic counters. Per spec §5/§9 these need not persist
// across runs; they only guarantee uniqueness for the lifetime of the
// process, and are never reset.
var (
	nextGateID     uint64
	nextRegistryID uint64
)

func allocGateID() uint64 {
	return atomic.AddUint64(&nextGateID, 1)
}

func allocRegistryID() uint64 {
	return atomic.AddUint64(&nextRegistryID, 1)
}
