package tpkg

const (
	// TestTokenSupply is a test token supply constant.
	// Do not use this constant outside of unit tests, instead, query it via a node.
	TestTokenSupply = 2_779_530_283_277_761

	// TestVByteCost is a test vbyte cost constant, chosen small enough that
	// hand-computed expected deposits in tests stay readable.
	TestVByteCost = 100
)
