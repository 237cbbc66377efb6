// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packwire

// Named Config presets.
//
// Single source of truth — use case → (WireEndianness, checks):
//   - Network   → Big,    strict checks   // interop with an existing
//     network-byte-order peer that may send malformed data
//   - Compact   → Little, trusted checks  // two instances of the same
//     trusted process exchanging a local snapshot; smallest and fastest
//   - Archive   → Little, strict checks   // on-disk long-term storage
//     read back by a possibly different build
//
// One constructor per common deployment shape, instead of asking every
// caller to assemble a Config by hand.

// WithNetworkDefaults configures Config for interop with a big-endian,
// possibly adversarial peer: big-endian wire, both data and adapter checks
// enabled.
func WithNetworkDefaults() ConfigOption {
	return func(c *Config) {
		c.WireEndianness = Big
		c.CheckDataErrors = true
		c.CheckAdapterErrors = true
	}
}

// WithCompactDefaults configures Config for the smallest, fastest local
// exchange between two instances of the same trusted build: little-endian
// wire, all checks disabled.
func WithCompactDefaults() ConfigOption {
	return func(c *Config) {
		c.WireEndianness = Little
		c.CheckDataErrors = false
		c.CheckAdapterErrors = false
	}
}

// WithArchiveDefaults configures Config for on-disk storage that must be
// read back reliably, possibly by a different build: little-endian wire,
// data errors checked (corrupt files must be detected), adapter errors
// checked (misuse must not corrupt memory).
func WithArchiveDefaults() ConfigOption {
	return func(c *Config) {
		c.WireEndianness = Little
		c.CheckDataErrors = true
		c.CheckAdapterErrors = true
	}
}
