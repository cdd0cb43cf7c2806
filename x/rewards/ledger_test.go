package rewards

import (
	"testing"

	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/nexustest/assert"
)

func TestSettle(t *testing.T) {
	cases := map[string]struct {
		global        string
		account       StakerAccount
		wantErr       *errors.Error
		wantClaimable uint64
		wantPending   string
	}{
		"whole reward": {
			global:        "0.09",
			account:       StakerAccount{Balance: decimal.NewUint(1000)},
			wantClaimable: 90,
			wantPending:   "0",
		},
		"fraction is carried": {
			global:        "0.0999999",
			account:       StakerAccount{Balance: decimal.NewUint(1000)},
			wantClaimable: 99,
			wantPending:   "0.9999",
		},
		"carried fraction adds up": {
			global: "0.0000001",
			account: StakerAccount{
				Balance: decimal.NewUint(1000),
				Real:    StreamAccount{Pending: decimal.MustParseDec("0.9999")},
			},
			wantClaimable: 1,
			wantPending:   "0",
		},
		"only pending": {
			global: "0.3",
			account: StakerAccount{
				Real: StreamAccount{Index: decimal.MustParseDec("0.1"), Pending: decimal.MustParseDec("2.5")},
			},
			wantClaimable: 2,
			wantPending:   "0.5",
		},
		"index ahead of global": {
			global: "0.1",
			account: StakerAccount{
				Balance: decimal.NewUint(1),
				Real:    StreamAccount{Index: decimal.MustParseDec("0.2")},
			},
			wantErr:     errors.ErrState,
			wantPending: "0",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			acc := tc.account
			global := decimal.MustParseDec(tc.global)
			got, err := Settle(global, &acc, Real)
			assert.IsErr(t, tc.wantErr, err)
			assert.Dec(t, tc.wantPending, acc.Real.Pending)
			if tc.wantErr != nil {
				return
			}
			assert.Uint(t, tc.wantClaimable, got)
			assert.Equal(t, global, acc.Real.Index)
			// The other stream is not touched.
			assert.Equal(t, tc.account.Virtual, acc.Virtual)
		})
	}
}

func TestFoldKeepsWholeReward(t *testing.T) {
	acc := StakerAccount{Balance: decimal.NewUint(1000)}
	assert.Nil(t, fold(decimal.MustParseDec("0.0999999"), &acc, Virtual))
	assert.Dec(t, "99.9999", acc.Virtual.Pending)
	assert.Dec(t, "0.0999999", acc.Virtual.Index)
}
