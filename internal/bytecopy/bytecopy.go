// Package bytecopy implements the bitcopy payload convention used
// throughout the core: components, job data, and event payloads all cross
// API boundaries as fixed-size byte blobs rather than as interface{}
// values, mirroring the target spec's C-style struct-as-bytes contract.
// This follows the teacher repo's own style of reinterpreting []byte
// regions via unsafe.Pointer (see kernel/threads/foundation's epoch and
// message-queue code) rather than reaching for encoding/gob, which would
// impose an incompatible self-describing wire format on what is specified
// as a raw fixed-layout record.
package bytecopy

import (
	"fmt"
	"unsafe"
)

// Encode reinterprets v's bit pattern as a byte slice. T must be a plain,
// pointer-free data type (the component/payload contract the spec assumes);
// passing a type containing pointers or Go-runtime-managed fields produces
// nonsense bytes on decode.
func Encode[T any](v T) []byte {
	size := int(unsafe.Sizeof(v))
	buf := make([]byte, size)
	copy(buf, unsafe.Slice((*byte)(unsafe.Pointer(&v)), size))
	return buf
}

// Decode reinterprets payload's bytes as a T. Returns an error if the
// lengths don't match exactly, since a short or long payload indicates the
// caller staged bytes for the wrong type.
func Decode[T any](payload []byte) (T, error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if len(payload) != size {
		return zero, fmt.Errorf("bytecopy: payload length %d does not match %T size %d", len(payload), zero, size)
	}
	var out T
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&out)), size), payload)
	return out, nil
}
