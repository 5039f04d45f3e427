package iotago

import (
	"encoding/binary"
	"fmt"
)

// OutputIdLength is the packed size of an OutputId: a 32-byte transaction id
// plus a 2-byte big-endian output index (34 bytes total, per §3).
const OutputIdLength = HashSize + 2

// OutputId identifies an output by the transaction that created it and its
// index within that transaction's output list.
type OutputId struct {
	TransactionId Hash256
	Index         uint16
}

// Bytes packs the OutputId into its canonical 34-byte wire form.
func (o OutputId) Bytes() [OutputIdLength]byte {
	var out [OutputIdLength]byte
	copy(out[:HashSize], o.TransactionId[:])
	binary.BigEndian.PutUint16(out[HashSize:], o.Index)
	return out
}

func (o OutputId) String() string {
	b := o.Bytes()
	return fmt.Sprintf("%x", b[:])
}

// Hash derives a protocol hash over the OutputId; this is the digest used to
// mint AccountId/NftId values from a fresh output's creating OutputId (§3,
// §4.2). FoundryId is not derived from it.
func (o OutputId) Hash() Hash256 {
	b := o.Bytes()
	return sumBlake2b256(b[:])
}
