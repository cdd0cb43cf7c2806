package rewards

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/x/cash"
	"github.com/iov-one/nexus/x/governance"
	"github.com/iov-one/nexus/x/launch"
	"github.com/iov-one/nexus/x/reply"
)

// RegisterRoutes registers handlers for all pool messages. bank must be the
// ledger that the host executor moves tokens with.
func RegisterRoutes(r nexus.Registry, bank Bank) {
	engine := NewEngine(bank)
	claim := NewClaimHandler(bank)
	r.Handle(pathCreatePoolMsg, createPoolHandler{})
	r.Handle(pathBondMsg, bondHandler{engine: engine})
	r.Handle(pathUnbondMsg, unbondHandler{engine: engine})
	r.Handle(pathClaimMsg, claim)
	r.Handle(pathClaimForMsg, claim)
	r.Handle(pathUpdateGlobalIndexMsg, updateGlobalIndexHandler{engine: engine})
	r.Handle(pathRewardMsg, rewardHandler{engine: engine})
	r.Handle(pathIncreaseBalanceMsg, operatorHandler{engine: engine})
	r.Handle(pathDecreaseBalanceMsg, operatorHandler{engine: engine})
	r.Handle(pathUpdatePoolMsg, updatePoolHandler{})
}

func requireSigner(ctx nexus.Context) (nexus.Address, error) {
	signer := nexus.GetSigner(ctx)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	return signer, nil
}

type createPoolHandler struct{}

func (createPoolHandler) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	m, ok := msg.(*CreatePoolMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	signer, err := requireSigner(ctx)
	if err != nil {
		return nil, err
	}
	if err := CreatePool(db, m.Pool, m.pool(signer)); err != nil {
		return nil, err
	}
	if err := governance.Init(db, Namespace(m.Pool), signer); err != nil {
		return nil, err
	}
	nexus.GetLogger(ctx).Info("pool created", "pool", m.Pool, "owner", signer.String())
	return &nexus.Result{Log: "pool created", Data: PoolAddress(m.Pool)}, nil
}

type bondHandler struct {
	engine Engine
}

// Deliver stakes the staking tokens received by the pool address.
func (h bondHandler) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	m, ok := msg.(*BondMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	receipt, ok := nexus.GetReceipt(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrInput, "staking tokens required")
	}
	if !receipt.Recipient.Equals(PoolAddress(m.Pool)) {
		return nil, errors.Wrapf(errors.ErrInput, "tokens not sent to pool %q", m.Pool)
	}
	pool, err := LoadPool(db, m.Pool)
	if err != nil {
		return nil, err
	}
	if pool.Delegated() || receipt.Token != pool.StakingToken {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "pool %q does not accept %q bonds", m.Pool, receipt.Token)
	}
	if err := h.engine.IncreaseBalance(db, m.Pool, receipt.Sender, receipt.Amount); err != nil {
		return nil, err
	}
	return &nexus.Result{Log: "bonded"}, nil
}

type unbondHandler struct {
	engine Engine
}

func (h unbondHandler) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	m, ok := msg.(*UnbondMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	signer, err := requireSigner(ctx)
	if err != nil {
		return nil, err
	}
	pool, err := LoadPool(db, m.Pool)
	if err != nil {
		return nil, err
	}
	if pool.Delegated() {
		return nil, errors.Wrap(errors.ErrUnauthorized, "stake is managed by the stake operator")
	}
	if err := h.engine.DecreaseBalance(db, m.Pool, signer, m.Amount); err != nil {
		return nil, err
	}
	return &nexus.Result{
		Log:   "unbonded",
		Calls: []nexus.Call{nexus.Transfer(pool.StakingToken, PoolAddress(m.Pool), signer, m.Amount)},
	}, nil
}

// ClaimHandler pays rewards of ClaimMsg and ClaimForMsg and finishes the
// swap and forward delivery once the swap token is minted.
type ClaimHandler struct {
	engine Engine
	bank   Bank
}

var _ nexus.ReplyHandler = ClaimHandler{}

// NewClaimHandler returns a claim handler reading balances from bank.
func NewClaimHandler(bank Bank) ClaimHandler {
	return ClaimHandler{engine: NewEngine(bank), bank: bank}
}

func (h ClaimHandler) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	var name string
	var staker, recipient nexus.Address
	switch m := msg.(type) {
	case *ClaimMsg:
		signer, err := requireSigner(ctx)
		if err != nil {
			return nil, err
		}
		name, staker, recipient = m.Pool, signer, m.Recipient
		if recipient == nil {
			recipient = signer
		}
	case *ClaimForMsg:
		name, staker, recipient = m.Pool, m.Staker, m.Staker
	default:
		return nil, errors.WithType(errors.ErrMsg, msg)
	}

	pool, err := LoadPool(db, name)
	if err != nil {
		return nil, err
	}
	rt, err := pool.route()
	if err != nil {
		return nil, err
	}
	addr := PoolAddress(name)

	// Snapshot before the claim call mints anything.
	var cont *SwapForwardContinuation
	if rt == routeSwapForward {
		before, err := h.bank.Balance(db, pool.SwapToken, addr)
		if err != nil {
			return nil, err
		}
		cont = &SwapForwardContinuation{Pool: name, Recipient: recipient, BalanceBefore: before}
	}

	amount, err := h.engine.Claim(db, name, staker)
	if err != nil {
		return nil, err
	}

	var call nexus.Call
	switch rt {
	case routeTransfer:
		call = nexus.Transfer(pool.RewardToken, addr, recipient, amount)
	case routeSwap:
		call = nexus.Send(pool.RewardToken, addr, pool.SwapGovernance, amount, &launch.MintMsg{Receiver: recipient})
	case routeSwapForward:
		id, err := reply.Stash(db, cont)
		if err != nil {
			return nil, err
		}
		call = nexus.Send(pool.RewardToken, addr, pool.SwapGovernance, amount, &launch.MintMsg{}).
			WithReply(id, nexus.ReplySuccess)
	}

	observeClaim(name, rt, amount)
	nexus.GetLogger(ctx).Info("rewards claimed",
		"pool", name,
		"staker", staker.String(),
		"recipient", recipient.String(),
		"amount", amount.String(),
		"route", rt.String())
	return &nexus.Result{
		Log:   "rewards claimed",
		Data:  []byte(amount.String()),
		Calls: []nexus.Call{call},
	}, nil
}

// Reply forwards the minted swap token to the swap pair.
func (h ClaimHandler) Reply(ctx nexus.Context, db nexus.KVStore, r nexus.Reply) (*nexus.Result, error) {
	c, err := reply.Take(db, r.ID)
	if err != nil {
		return nil, err
	}
	switch c := c.(type) {
	case *SwapForwardContinuation:
		if r.Err != nil {
			return nil, errors.Wrap(r.Err, "swap token mint")
		}
		return h.forward(ctx, db, c)
	default:
		return nil, errors.Wrapf(errors.ErrType, "unexpected continuation %q", c.Kind())
	}
}

func (h ClaimHandler) forward(ctx nexus.Context, db nexus.KVStore, c *SwapForwardContinuation) (*nexus.Result, error) {
	pool, err := LoadPool(db, c.Pool)
	if err != nil {
		return nil, err
	}
	addr := PoolAddress(c.Pool)
	now, err := h.bank.Balance(db, pool.SwapToken, addr)
	if err != nil {
		return nil, err
	}
	minted, err := now.Sub(c.BalanceBefore)
	if err != nil {
		return nil, errors.Wrap(errors.ErrState, "swap token balance decreased")
	}
	if minted.IsZero() {
		return &nexus.Result{Log: "nothing minted"}, nil
	}
	nexus.GetLogger(ctx).Debug("forwarding minted rewards",
		"pool", c.Pool,
		"pair", pool.SwapPair,
		"amount", minted.String())
	swap := &cash.SwapMsg{Pair: pool.SwapPair, Receiver: c.Recipient}
	return &nexus.Result{
		Log:   "minted rewards forwarded",
		Calls: []nexus.Call{nexus.Send(pool.SwapToken, addr, cash.PairAddress(pool.SwapPair), minted, swap)},
	}, nil
}

type updateGlobalIndexHandler struct {
	engine Engine
}

func (h updateGlobalIndexHandler) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	m, ok := msg.(*UpdateGlobalIndexMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	up, err := h.engine.UpdateGlobalIndex(db, m.Pool)
	if err != nil {
		return nil, err
	}
	if up.Unattributed {
		nexus.GetLogger(ctx).Info("rewards accrued with nothing staked",
			"pool", m.Pool,
			"virtual", up.Virtual.String(),
			"real", up.Real.String())
	}
	return &nexus.Result{Log: "global index updated"}, nil
}

type rewardHandler struct {
	engine Engine
}

func (h rewardHandler) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	m, ok := msg.(*RewardMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	pool, err := LoadPool(db, m.Pool)
	if err != nil {
		return nil, err
	}
	if !nexus.HasSigner(ctx, pool.RewardOperator) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "reward operator only")
	}
	if err := h.engine.Reward(db, m.Pool, m.Amount); err != nil {
		return nil, err
	}
	return &nexus.Result{Log: "virtual rewards credited"}, nil
}

// operatorHandler processes balance changes reported by the stake operator.
type operatorHandler struct {
	engine Engine
}

func (h operatorHandler) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	var name string
	var change func() error
	switch m := msg.(type) {
	case *IncreaseBalanceMsg:
		name = m.Pool
		change = func() error { return h.engine.IncreaseBalance(db, m.Pool, m.Staker, m.Amount) }
	case *DecreaseBalanceMsg:
		name = m.Pool
		change = func() error { return h.engine.DecreaseBalance(db, m.Pool, m.Staker, m.Amount) }
	default:
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	pool, err := LoadPool(db, name)
	if err != nil {
		return nil, err
	}
	if !pool.Delegated() || !nexus.HasSigner(ctx, pool.StakeOperator) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "stake operator only")
	}
	if err := change(); err != nil {
		return nil, err
	}
	return &nexus.Result{Log: "balance updated"}, nil
}

type updatePoolHandler struct{}

func (updatePoolHandler) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	m, ok := msg.(*UpdatePoolMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	if err := governance.Authorize(ctx, db, Namespace(m.Pool)); err != nil {
		return nil, err
	}
	pool, err := LoadPool(db, m.Pool)
	if err != nil {
		return nil, err
	}
	if m.StakeOperator != nil {
		pool.StakeOperator = m.StakeOperator
	}
	if m.RewardOperator != nil {
		pool.RewardOperator = m.RewardOperator
	}
	if m.SwapPair != "" {
		pool.SwapPair = m.SwapPair
	}
	if err := savePool(db, m.Pool, pool); err != nil {
		return nil, err
	}
	return &nexus.Result{Log: "pool updated"}, nil
}
