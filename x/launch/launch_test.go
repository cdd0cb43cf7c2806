package launch

import (
	"testing"

	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/gconf"
	"github.com/iov-one/nexus/nexustest"
	"github.com/iov-one/nexus/nexustest/assert"
	"github.com/iov-one/nexus/store"
	"github.com/iov-one/nexus/x/cash"
)

type routes map[string]nexus.Handler

func (r routes) Handle(path string, h nexus.Handler) {
	r[path] = h
}

func (r routes) deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	return r[msg.Path()].Deliver(ctx, db, msg)
}

func setup(t testing.TB, admin nexus.Address) (nexus.KVStore, routes) {
	t.Helper()
	db := store.MemStore()
	conf := Configuration{
		Admin:       admin,
		BondToken:   "yluna",
		BoostToken:  "xprism",
		RewardToken: "prism",
		BaseRatio:   decimal.MustParseDec("0.8"),
	}
	assert.Nil(t, gconf.Save(db, pkg, &conf))
	r := make(routes)
	RegisterRoutes(r)
	return db, r
}

func received(sender nexus.Address, token string, amount uint64) nexus.Context {
	return nexus.WithReceipt(nexustest.Ctx(nil), nexus.Receipt{
		Sender:    sender,
		Recipient: Address(),
		Token:     token,
		Amount:    decimal.NewUint(amount),
	})
}

func TestBondAndUnbond(t *testing.T) {
	admin := nexustest.NewAddress()
	alice := nexustest.NewAddress()
	bob := nexustest.NewAddress()
	db, r := setup(t, admin)

	_, err := r.deliver(received(alice, "yluna", 100), db, &BondMsg{})
	assert.Nil(t, err)
	_, err = r.deliver(received(bob, "yluna", 50), db, &BondMsg{})
	assert.Nil(t, err)
	_, err = r.deliver(received(bob, "prism", 50), db, &BondMsg{})
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = r.deliver(nexustest.Ctx(bob), db, &BondMsg{})
	assert.IsErr(t, errors.ErrInput, err)

	_, err = r.deliver(nexustest.Ctx(alice), db, &UnbondMsg{Amount: decimal.NewUint(101)})
	assert.IsErr(t, cash.ErrInsufficientFunds, err)

	res, err := r.deliver(nexustest.Ctx(alice), db, &UnbondMsg{Amount: decimal.NewUint(40)})
	assert.Nil(t, err)
	assert.Equal(t, []nexus.Call{nexus.Transfer("yluna", Address(), alice, decimal.NewUint(40))}, res.Calls)

	cv, err := Querier{}.Curve(db, alice)
	assert.Nil(t, err)
	assert.Uint(t, 110, cv.TotalBond)
	assert.Uint(t, 60, cv.Bond)
	assert.Dec(t, "0.8", cv.BaseRatio)
}

func TestBoost(t *testing.T) {
	admin := nexustest.NewAddress()
	alice := nexustest.NewAddress()
	bob := nexustest.NewAddress()
	db, r := setup(t, admin)

	_, err := r.deliver(received(alice, "xprism", 30), db, &BoostMsg{})
	assert.Nil(t, err)
	_, err = r.deliver(received(bob, "xprism", 70), db, &BoostMsg{})
	assert.Nil(t, err)

	cv, err := Querier{}.Curve(db, alice)
	assert.Nil(t, err)
	assert.Uint(t, 30, cv.Boosted)
	assert.Uint(t, 0, cv.Amplification)
	assert.Uint(t, 0, cv.TotalWeight)

	for _, who := range []nexus.Address{alice, bob, alice} {
		_, err = r.deliver(nexustest.Ctx(who), db, &ActivateBoostMsg{})
		assert.Nil(t, err)
	}

	cv, err = Querier{}.Curve(db, alice)
	assert.Nil(t, err)
	assert.Uint(t, 30, cv.Amplification)
	assert.Uint(t, 30, cv.Weight)
	assert.Uint(t, 100, cv.TotalWeight)
}

func TestRewardsLifecycle(t *testing.T) {
	admin := nexustest.NewAddress()
	alice := nexustest.NewAddress()
	db, r := setup(t, admin)

	accrue := &AccrueMsg{Holder: alice, Amount: decimal.NewUint(25)}
	_, err := r.deliver(nexustest.Ctx(alice), db, accrue)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = r.deliver(nexustest.Ctx(admin), db, accrue)
	assert.Nil(t, err)

	info, err := Querier{}.RewardInfo(db, alice)
	assert.Nil(t, err)
	assert.Uint(t, 25, info.Pending)
	assert.Uint(t, 0, info.Vested)

	res, err := r.deliver(nexustest.Ctx(alice), db, &ClaimWithdrawnMsg{})
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res.Calls))

	_, err = r.deliver(nexustest.Ctx(alice), db, &WithdrawRewardsMsg{})
	assert.Nil(t, err)
	info, err = Querier{}.RewardInfo(db, alice)
	assert.Nil(t, err)
	assert.Uint(t, 0, info.Pending)
	assert.Uint(t, 25, info.Vested)

	res, err = r.deliver(nexustest.Ctx(alice), db, &ClaimWithdrawnMsg{})
	assert.Nil(t, err)
	assert.Equal(t, []nexus.Call{nexus.Transfer("prism", Address(), alice, decimal.NewUint(25))}, res.Calls)

	info, err = Querier{}.RewardInfo(db, alice)
	assert.Nil(t, err)
	assert.Uint(t, 0, info.Vested)
}

func TestMint(t *testing.T) {
	admin := nexustest.NewAddress()
	alice := nexustest.NewAddress()
	bob := nexustest.NewAddress()
	db, r := setup(t, admin)

	cases := map[string]struct {
		ctx      nexus.Context
		msg      *MintMsg
		wantErr  *errors.Error
		wantCall nexus.Call
	}{
		"mint to sender": {
			ctx:      received(alice, "prism", 12),
			msg:      &MintMsg{},
			wantCall: nexus.Mint("xprism", Address(), alice, decimal.NewUint(12)),
		},
		"mint to receiver": {
			ctx:      received(alice, "prism", 12),
			msg:      &MintMsg{Receiver: bob},
			wantCall: nexus.Mint("xprism", Address(), bob, decimal.NewUint(12)),
		},
		"wrong token": {
			ctx:     received(alice, "yluna", 12),
			msg:     &MintMsg{},
			wantErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			res, err := r.deliver(tc.ctx, db, tc.msg)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil {
				assert.Equal(t, []nexus.Call{tc.wantCall}, res.Calls)
			}
		})
	}
}

func TestConfigurationValidate(t *testing.T) {
	conf := Configuration{
		BondToken:   "yluna",
		BoostToken:  "X",
		RewardToken: "prism",
		BaseRatio:   decimal.MustParseDec("1.5"),
	}
	err := conf.Validate()
	assert.FieldError(t, err, "Admin", errors.ErrInput)
	assert.FieldError(t, err, "BoostToken", errors.ErrInput)
	assert.FieldError(t, err, "BaseRatio", errors.ErrInput)
}
