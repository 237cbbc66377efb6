// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packwire

// measureSink implements Sink without storing any bytes: Writer recognizes
// StoresBytes()==false and skips every copy/allocation on the write path
// (see Writer.WriteBuffer), so Grow here is unreachable in normal use and
// exists only to satisfy the Sink interface.
type measureSink struct{}

func (s *measureSink) Bytes() []byte     { return nil }
func (s *measureSink) Resizable() bool   { return true }
func (s *measureSink) StoresBytes() bool { return false }

func (s *measureSink) Grow(cur []byte, minSize int) []byte {
	panic("packwire: measureSink.Grow is unreachable: StoresBytes is false")
}

// NewMeasureWriter returns a Writer that records byte counts without
// storing any payload, for computing the exact size a real Writer would
// produce.
func NewMeasureWriter(opts ...ConfigOption) *Writer {
	cfg := defaultConfig
	for _, fn := range opts {
		fn(&cfg)
	}
	return &Writer{
		sink: &measureSink{},
		wire: cfg.WireEndianness,
	}
}
