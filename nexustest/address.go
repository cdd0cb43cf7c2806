package nexustest

import (
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/iov-one/nexus"
)

var sequence uint64

// NewCondition returns a new, unique signature condition.
func NewCondition() nexus.Condition {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, atomic.AddUint64(&sequence, 1))
	return nexus.NewCondition("test", "sig", data)
}

// NewAddress returns a new, unique address.
func NewAddress() nexus.Address {
	return NewCondition().Address()
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation. This function is a test helper that is using
// nexus.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) nexus.Address {
	t.Helper()

	addr, err := nexus.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
