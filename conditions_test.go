package nexus

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/nexus/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionPrinting(t *testing.T) {
	cond := NewCondition("rewards", "pool", []byte("ABCD123456LHB"))
	assert.NotEqual(t, fmt.Sprintf("%X", cond), cond.String())
	assert.Equal(t, "rewards/pool/414243443132333435364C4842", cond.String())
	assert.NoError(t, cond.Validate())
	assert.Error(t, Condition("no-slashes").Validate())
}

func TestAddressUnmarshalJSON(t *testing.T) {
	cond := NewCondition("foo", "bar", []byte("conditiondata"))
	addr := cond.Address()
	b32, err := addr.Bech32(DefaultBech32Prefix)
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr Address
	}{
		"default decoding": {
			json:     fmt.Sprintf("%q", addr.String()),
			wantAddr: addr,
		},
		"hex decoding": {
			json:     fmt.Sprintf(`"hex:%s"`, addr.String()),
			wantAddr: addr,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: addr,
		},
		"bech32 decoding": {
			json:     fmt.Sprintf(`"bech32:%s"`, b32),
			wantAddr: addr,
		},
		"hex of a wrong length": {
			json:    `"hex:6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero cond address": {
			json:     `"cond:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil {
				assert.Equal(t, tc.wantAddr, a)
			}
		})
	}
}

func TestAddressJSONRoundTrip(t *testing.T) {
	addr := NewCondition("sigs", "ed25519", []byte("alice")).Address()
	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	var got Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, addr.Equals(got))
}
