package throughput

import (
	"encoding/binary"
	"math"
)

// float32sToBytes encodes a slice of float32 as little-endian bytes, the
// wire format inference.Tensor.Data expects.
func float32sToBytes(values []float32) []byte {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// bytesToFloat32 decodes the first float32 from little-endian bytes.
func bytesToFloat32(data []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(data[:4]))
}
