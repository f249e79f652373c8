package circuit

// Signature mixing. Spec §9's open question leaves the exact constants
// implementation-defined: they only need to be fixed, wide (at least 32
// bits of entropy), distinct per operator, and deterministic. mixSalt uses
// the 64-bit finalizer from MurmurHash3 (splitmix-style: xor-shift then two
// odd-constant multiplications) to spread a salted value across all 64
// bits; the salts below are arbitrary odd 64-bit constants, one per
// operator/variant, chosen to be pairwise distinct.
func mixSalt(salt, x uint64) uint64 {
	x ^= salt
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

// Expression-level salts (component A).
const (
	saltConst       uint64 = 0x9e3779b97f4a7c15
	saltVar         uint64 = 0xc2b2ae3d27d4eb4f
	saltUnMerge     uint64 = 0x61c8864680b583eb // unused placeholder kept distinct
	saltMerge       uint64 = 0x165667b19e3779f9
	saltSlice       uint64 = 0x5851f42d4c957f2d
	saltSliceBounds uint64 = 0x14057b7ef767814f
	saltConstParam  uint64 = 0xa24baed4963ee407

	sliceIndexMultiplier uint64 = 0x9e3779b185ebca87
)

var binOpSalt = [...]uint64{
	BinAnd: 0x85ebca6b7e8e6a1d,
	BinOr:  0xc4ceb9fe1a85ec53,
	BinXor: 0xff51afd7ed558ccd,
	BinAdd: 0x2545f4914f6cdd1d,
	BinSub: 0x9e3779b97f4a7c55,
	BinMul: 0xbf58476d1ce4e5b9,
	BinDiv: 0x94d049bb133111eb,
	BinMod: 0xd6e8feb86659fd93,
	BinLsr: 0xa5b85c5e198ed849,
	BinLsl: 0x8ebc6af09c88c6e3,
	BinAsr: 0x589965cc75374cc3,
}

var unOpSalt = [...]uint64{
	UnNot: 0x1b873593cc9e2d51,
}

var unConstOpSalt = [...]uint64{
	UnConstLsr: 0xe6546b6462b82175,
	UnConstLsl: 0x27d4eb2f165667c5,
	UnConstAsr: 0x3935c8e0c9ee5a0d,
}

// Gate-level salts (component D, §4.D). Leaf, combinational, assert and
// group each get a distinct tag transform so that two gates of different
// kinds never collide through the tag term alone.
const (
	saltLeafDelay     uint64 = 0x6c62272e07bb0143
	saltLeafTristate  uint64 = 0xcc9e2d51e654677
	saltCombinational uint64 = 0x1b56c4e9171d999d
	saltAssert        uint64 = 0x7feb352d7843f5e3
	saltGroup         uint64 = 0x846ca68b1f1f3177

	saltInputCount  uint64 = 0xd0e89891234b6a45
	saltOutputCount uint64 = 0xb5297a4d3a861b9d
)
