// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packwire

// Config configures a Writer/Reader/Serializer/Deserializer pair. All knobs are compile-time in the source library;
// here they are plain runtime fields set once at construction and never
// mutated mid-traversal, the closest idiomatic equivalent without a
// template system.
type Config struct {
	// WireEndianness is the byte order used for fundamental values on the
	// wire. Defaults to Little.
	WireEndianness Endianness

	// CheckDataErrors, when true, makes a Reader latch InvalidData/
	// DataOverflow on malformed input instead of silently assuming the
	// input is well-formed.
	CheckDataErrors bool

	// CheckAdapterErrors, when true, guards every adapter read/write with
	// bound checks (panics on programmer error) instead of trusting the
	// calling program.
	CheckAdapterErrors bool

	// SessionsEnabled gates the session bookkeeping cost. A
	// Serializer/Deserializer built with this false panics if BeginSession
	// is ever called, mirroring the source's static-assert-on-use.
	SessionsEnabled bool
}

var defaultConfig = Config{
	WireEndianness:     Little,
	CheckDataErrors:    true,
	CheckAdapterErrors: true,
	SessionsEnabled:    true,
}

// ConfigOption mutates a Config. The functional-options pattern mirrors the
// teacher's framer.Option (see the former options.go).
type ConfigOption func(*Config)

// WithLittleEndian selects little-endian as the wire byte order.
func WithLittleEndian() ConfigOption { return func(c *Config) { c.WireEndianness = Little } }

// WithBigEndian selects big-endian as the wire byte order.
func WithBigEndian() ConfigOption { return func(c *Config) { c.WireEndianness = Big } }

// WithStrictChecks enables both data and adapter error checking. This is
// the default; the option exists for callers that build Config values
// piecemeal and want to state intent explicitly.
func WithStrictChecks() ConfigOption {
	return func(c *Config) {
		c.CheckDataErrors = true
		c.CheckAdapterErrors = true
	}
}

// WithTrustedChecks disables both data and adapter error checking, trading
// safety for the fastest possible decode path when both peers are known to
// agree on the exact wire program.
func WithTrustedChecks() ConfigOption {
	return func(c *Config) {
		c.CheckDataErrors = false
		c.CheckAdapterErrors = false
	}
}

// WithSessionsEnabled toggles session bookkeeping support.
func WithSessionsEnabled(enabled bool) ConfigOption {
	return func(c *Config) { c.SessionsEnabled = enabled }
}
