package rewards

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/nexustest"
	"github.com/iov-one/nexus/nexustest/assert"
	"github.com/iov-one/nexus/store"
	"github.com/iov-one/nexus/x/cash"
	"github.com/iov-one/nexus/x/governance"
	"github.com/iov-one/nexus/x/launch"
	"github.com/iov-one/nexus/x/reply"
)

type routes map[string]nexus.Handler

func (r routes) Handle(path string, h nexus.Handler) {
	r[path] = h
}

func (r routes) deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return r[msg.Path()].Deliver(ctx, db, msg)
}

func (f *fixture) routes() routes {
	r := make(routes)
	RegisterRoutes(r, f.ctrl)
	return r
}

func (f *fixture) received(sender nexus.Address, token string, amount uint64) nexus.Context {
	return nexus.WithReceipt(nexustest.Ctx(nil), nexus.Receipt{
		Sender:    sender,
		Recipient: PoolAddress(testPool),
		Token:     token,
		Amount:    decimal.NewUint(amount),
	})
}

func TestCreatePool(t *testing.T) {
	db := store.MemStore()
	r := make(routes)
	RegisterRoutes(r, cash.NewController())
	owner := nexustest.NewAddress()
	msg := &CreatePoolMsg{
		Pool:           "prism_pool",
		StakingToken:   "xprism",
		RewardToken:    "prism",
		RewardOperator: nexustest.NewAddress(),
	}

	_, err := r.deliver(nexustest.Ctx(nil), db, msg)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	res, err := r.deliver(nexustest.Ctx(owner), db, msg)
	assert.Nil(t, err)
	assert.Equal(t, []byte(PoolAddress("prism_pool")), res.Data)

	gov, err := governance.Current(db, Namespace("prism_pool"))
	assert.Nil(t, err)
	assert.Equal(t, owner, gov)
	pool, err := LoadPool(db, "prism_pool")
	assert.Nil(t, err)
	assert.Equal(t, owner, pool.Owner)

	_, err = r.deliver(nexustest.Ctx(owner), db, msg)
	assert.IsErr(t, errors.ErrDuplicate, err)
}

func TestBondAndUnbondHandlers(t *testing.T) {
	f := newFixture(t, nil)
	r := f.routes()
	alice := nexustest.NewAddress()

	_, err := r.deliver(f.received(alice, "prism", 10), f.db, &BondMsg{Pool: testPool})
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = r.deliver(nexustest.Ctx(alice), f.db, &BondMsg{Pool: testPool})
	assert.IsErr(t, errors.ErrInput, err)
	_, err = r.deliver(f.received(alice, "luna", 10), f.db, &BondMsg{Pool: "other_pool"})
	assert.IsErr(t, errors.ErrInput, err)

	_, err = r.deliver(f.received(alice, "luna", 100), f.db, &BondMsg{Pool: testPool})
	assert.Nil(t, err)
	assert.Uint(t, 100, f.staker(t, alice).Balance)

	_, err = r.deliver(nexustest.Ctx(alice), f.db, &UnbondMsg{Pool: testPool, Amount: decimal.NewUint(101)})
	assert.IsErr(t, ErrInsufficientBalance, err)

	res, err := r.deliver(nexustest.Ctx(alice), f.db, &UnbondMsg{Pool: testPool, Amount: decimal.NewUint(60)})
	assert.Nil(t, err)
	want := []nexus.Call{nexus.Transfer("luna", PoolAddress(testPool), alice, decimal.NewUint(60))}
	assert.Equal(t, want, res.Calls)
	assert.Uint(t, 40, f.staker(t, alice).Balance)
}

func TestClaimRoutes(t *testing.T) {
	alice := nexustest.NewAddress()
	carol := nexustest.NewAddress()
	mintTarget := nexustest.NewAddress()

	cases := map[string]struct {
		configure func(*Pool)
		msg       nexus.Msg
		signer    nexus.Address
		wantErr   *errors.Error
		wantCall  nexus.Call
	}{
		"transfer to the signer": {
			msg:      &ClaimMsg{Pool: testPool},
			signer:   alice,
			wantCall: nexus.Transfer("prism", PoolAddress(testPool), alice, decimal.NewUint(30)),
		},
		"transfer to the recipient": {
			msg:      &ClaimMsg{Pool: testPool, Recipient: carol},
			signer:   alice,
			wantCall: nexus.Transfer("prism", PoolAddress(testPool), carol, decimal.NewUint(30)),
		},
		"claim on behalf of the staker": {
			msg:      &ClaimForMsg{Pool: testPool, Staker: alice},
			signer:   carol,
			wantCall: nexus.Transfer("prism", PoolAddress(testPool), alice, decimal.NewUint(30)),
		},
		"claim requires a signer": {
			msg:     &ClaimMsg{Pool: testPool},
			wantErr: errors.ErrUnauthorized,
		},
		"swap into the mint target": {
			configure: func(p *Pool) { p.SwapGovernance = mintTarget },
			msg:       &ClaimMsg{Pool: testPool},
			signer:    alice,
			wantCall: nexus.Send("prism", PoolAddress(testPool), mintTarget, decimal.NewUint(30),
				&launch.MintMsg{Receiver: alice}),
		},
		"incomplete swap configuration": {
			configure: func(p *Pool) { p.SwapToken = "xprism" },
			msg:       &ClaimMsg{Pool: testPool},
			signer:    alice,
			wantErr:   errors.ErrState,
		},
		"nothing to claim": {
			msg:     &ClaimMsg{Pool: testPool},
			signer:  carol,
			wantErr: ErrNoRewards,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t, nil)
			if tc.configure != nil {
				tc.configure(f.pool)
				assert.Nil(t, savePool(f.db, testPool, f.pool))
			}
			f.stake(t, alice, 1000)
			f.accrue(t, 50, 30)

			res, err := f.routes().deliver(nexustest.Ctx(tc.signer), f.db, tc.msg)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, []nexus.Call{tc.wantCall}, res.Calls)
			assert.Equal(t, []byte("30"), res.Data)
		})
	}
}

func TestClaimSwapAndForward(t *testing.T) {
	f := newFixture(t, nil)
	alice := nexustest.NewAddress()
	assert.Nil(t, cash.CreateToken(f.db, "xprism", f.minter))
	f.pool.SwapGovernance = launch.Address()
	f.pool.SwapToken = "xprism"
	f.pool.SwapPair = "xprism_prism"
	assert.Nil(t, savePool(f.db, testPool, f.pool))
	// Leftovers on the pool address are not forwarded.
	assert.Nil(t, f.ctrl.Mint(f.db, "xprism", f.minter, PoolAddress(testPool), decimal.NewUint(7)))

	f.stake(t, alice, 1000)
	f.accrue(t, 30, 30)

	h := NewClaimHandler(f.ctrl)
	res, err := h.Deliver(nexustest.Ctx(alice), f.db, &ClaimMsg{Pool: testPool})
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res.Calls))
	call := res.Calls[0]
	assert.Equal(t, nexus.CallSend, call.Kind)
	assert.Equal(t, launch.Address(), call.To)
	assert.Equal(t, &launch.MintMsg{}, call.Msg)
	assert.Equal(t, nexus.ReplySuccess, call.ReplyOn)

	pending, err := reply.Pending(f.db)
	assert.Nil(t, err)
	assert.Equal(t, 1, pending)

	// The mint target mints the swap token to the pool address.
	assert.Nil(t, f.ctrl.Mint(f.db, "xprism", f.minter, PoolAddress(testPool), decimal.NewUint(30)))

	res, err = h.Reply(nexustest.Ctx(nil), f.db, nexus.Reply{ID: call.ReplyID})
	assert.Nil(t, err)
	want := []nexus.Call{nexus.Send("xprism", PoolAddress(testPool), cash.PairAddress("xprism_prism"),
		decimal.NewUint(30), &cash.SwapMsg{Pair: "xprism_prism", Receiver: alice})}
	assert.Equal(t, want, res.Calls)

	_, err = h.Reply(nexustest.Ctx(nil), f.db, nexus.Reply{ID: call.ReplyID})
	assert.IsErr(t, reply.ErrUnknownReplyID, err)
}

func TestClaimSwapAndForwardFailedMint(t *testing.T) {
	f := newFixture(t, nil)
	alice := nexustest.NewAddress()
	assert.Nil(t, cash.CreateToken(f.db, "xprism", f.minter))
	f.pool.SwapGovernance = launch.Address()
	f.pool.SwapToken = "xprism"
	f.pool.SwapPair = "xprism_prism"
	assert.Nil(t, savePool(f.db, testPool, f.pool))
	f.stake(t, alice, 1000)
	f.accrue(t, 30, 30)

	h := NewClaimHandler(f.ctrl)
	res, err := h.Deliver(nexustest.Ctx(alice), f.db, &ClaimMsg{Pool: testPool})
	assert.Nil(t, err)

	_, err = h.Reply(nexustest.Ctx(nil), f.db, nexus.Reply{ID: res.Calls[0].ReplyID, Err: errors.ErrUnauthorized})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	pending, err := reply.Pending(f.db)
	assert.Nil(t, err)
	assert.Equal(t, 0, pending)
}

func TestOperatorMessages(t *testing.T) {
	operator := nexustest.NewAddress()
	f := newFixture(t, operator)
	r := f.routes()
	alice := nexustest.NewAddress()
	assert.Nil(t, f.ctrl.Mint(f.db, "luna", operator, alice, decimal.NewUint(100)))

	increase := &IncreaseBalanceMsg{Pool: testPool, Staker: alice, Amount: decimal.NewUint(100)}
	_, err := r.deliver(nexustest.Ctx(alice), f.db, increase)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = r.deliver(nexustest.Ctx(operator), f.db, increase)
	assert.Nil(t, err)

	// Delegated pools do not accept bonds.
	_, err = r.deliver(f.received(alice, "luna", 10), f.db, &BondMsg{Pool: testPool})
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = r.deliver(nexustest.Ctx(alice), f.db, &UnbondMsg{Pool: testPool, Amount: decimal.NewUint(10)})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	reward := &RewardMsg{Pool: testPool, Amount: decimal.NewUint(40)}
	_, err = r.deliver(nexustest.Ctx(operator), f.db, reward)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = r.deliver(nexustest.Ctx(f.pool.RewardOperator), f.db, reward)
	assert.Nil(t, err)

	_, err = r.deliver(nexustest.Ctx(nil), f.db, &UpdateGlobalIndexMsg{Pool: testPool})
	assert.Nil(t, err)
	state, err := f.engine.State(f.db, testPool)
	assert.Nil(t, err)
	assert.Dec(t, "0.4", state.Virtual.GlobalIndex)
	assert.Uint(t, 100, state.TotalStaked)

	assert.Nil(t, f.ctrl.Burn(f.db, "luna", alice, decimal.NewUint(100)))
	decrease := &DecreaseBalanceMsg{Pool: testPool, Staker: alice, Amount: decimal.NewUint(100)}
	_, err = r.deliver(nexustest.Ctx(operator), f.db, decrease)
	assert.Nil(t, err)
	assert.Dec(t, "40", f.staker(t, alice).Virtual.Pending)
}

func TestOperatorMessagesRequireDelegation(t *testing.T) {
	f := newFixture(t, nil)
	alice := nexustest.NewAddress()
	msg := &IncreaseBalanceMsg{Pool: testPool, Staker: alice, Amount: decimal.NewUint(1)}
	_, err := f.routes().deliver(nexustest.Ctx(alice), f.db, msg)
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestUpdatePool(t *testing.T) {
	f := newFixture(t, nil)
	r := f.routes()
	assert.Nil(t, governance.Init(f.db, Namespace(testPool), f.pool.Owner))
	operator := nexustest.NewAddress()
	msg := &UpdatePoolMsg{Pool: testPool, RewardOperator: operator}

	_, err := r.deliver(nexustest.Ctx(operator), f.db, msg)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = r.deliver(nexustest.Ctx(f.pool.Owner), f.db, msg)
	assert.Nil(t, err)

	pool, err := LoadPool(f.db, testPool)
	assert.Nil(t, err)
	assert.Equal(t, operator, pool.RewardOperator)
	assert.Equal(t, "luna", pool.StakingToken)

	_, err = r.deliver(nexustest.Ctx(f.pool.Owner), f.db, &UpdatePoolMsg{Pool: testPool})
	assert.IsErr(t, errors.ErrEmpty, err)
}

func TestMessageValidation(t *testing.T) {
	addr := nexustest.NewAddress()
	cases := map[string]struct {
		msg       nexus.Msg
		wantField string
		wantErr   *errors.Error
	}{
		"pool name too short": {
			msg:       &BondMsg{Pool: "ab"},
			wantField: "Pool",
			wantErr:   errors.ErrInput,
		},
		"zero unbond": {
			msg:       &UnbondMsg{Pool: testPool},
			wantField: "Amount",
			wantErr:   errors.ErrEmpty,
		},
		"same staking and reward token": {
			msg:       &CreatePoolMsg{Pool: testPool, StakingToken: "luna", RewardToken: "luna", RewardOperator: addr},
			wantField: "RewardToken",
			wantErr:   errors.ErrDuplicate,
		},
		"missing reward operator": {
			msg:       &CreatePoolMsg{Pool: testPool, StakingToken: "luna", RewardToken: "prism"},
			wantField: "RewardOperator",
			wantErr:   errors.ErrInput,
		},
		"missing staker": {
			msg:       &ClaimForMsg{Pool: testPool},
			wantField: "Staker",
			wantErr:   errors.ErrInput,
		},
		"zero reward": {
			msg:       &RewardMsg{Pool: testPool},
			wantField: "Amount",
			wantErr:   errors.ErrEmpty,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.FieldError(t, tc.msg.Validate(), tc.wantField, tc.wantErr)
		})
	}
}

func TestGenesis(t *testing.T) {
	owner := nexustest.NewAddress()
	operator := nexustest.NewAddress()
	raw, err := json.Marshal(map[string]interface{}{
		"pools": []interface{}{
			map[string]interface{}{
				"name":            "base_pool",
				"owner":           owner,
				"staking_token":   "nexprism",
				"reward_token":    "prism",
				"reward_operator": operator,
			},
		},
	})
	assert.Nil(t, err)

	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(nexus.Options{"rewards": raw}, db))

	pool, err := LoadPool(db, "base_pool")
	assert.Nil(t, err)
	assert.Equal(t, operator, pool.RewardOperator)
	assert.Equal(t, false, pool.Delegated())
	gov, err := governance.Current(db, Namespace("base_pool"))
	assert.Nil(t, err)
	assert.Equal(t, owner, gov)
}
