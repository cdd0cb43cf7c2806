package launch

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/x/cash"
)

// RegisterRoutes registers handlers for all launch pool messages.
func RegisterRoutes(r nexus.Registry) {
	r.Handle(pathBondMsg, hookHandler{token: bondToken, apply: bond})
	r.Handle(pathBoostMsg, hookHandler{token: boostToken, apply: boost})
	r.Handle(pathMintMsg, hookHandler{token: rewardToken, apply: mint})
	r.Handle(pathUnbondMsg, signedHandler{apply: unbond})
	r.Handle(pathActivateBoostMsg, signedHandler{apply: activateBoost})
	r.Handle(pathWithdrawRewardsMsg, signedHandler{apply: withdrawRewards})
	r.Handle(pathClaimWithdrawnMsg, signedHandler{apply: claimWithdrawn})
	r.Handle(pathAccrueMsg, signedHandler{apply: accrue})
}

func bondToken(c *Configuration) string   { return c.BondToken }
func boostToken(c *Configuration) string  { return c.BoostToken }
func rewardToken(c *Configuration) string { return c.RewardToken }

// hookHandler processes hook messages of tokens sent to the pool.
type hookHandler struct {
	token func(*Configuration) string
	apply func(db nexus.KVStore, conf *Configuration, r nexus.Receipt, msg nexus.Msg) (*nexus.Result, error)
}

func (h hookHandler) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	receipt, ok := nexus.GetReceipt(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrInput, "tokens required")
	}
	if !receipt.Recipient.Equals(Address()) {
		return nil, errors.Wrap(errors.ErrInput, "tokens not sent to the launch pool")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if want := h.token(conf); receipt.Token != want {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "token %q not accepted, %q required", receipt.Token, want)
	}
	return h.apply(db, conf, receipt, msg)
}

// signedHandler processes messages signed by a holder or the admin.
type signedHandler struct {
	apply func(db nexus.KVStore, conf *Configuration, signer nexus.Address, msg nexus.Msg) (*nexus.Result, error)
}

func (h signedHandler) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	signer := nexus.GetSigner(ctx)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	return h.apply(db, conf, signer, msg)
}

func bond(db nexus.KVStore, conf *Configuration, r nexus.Receipt, msg nexus.Msg) (*nexus.Result, error) {
	if _, ok := msg.(*BondMsg); !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	h, err := loadHolder(db, r.Sender)
	if err != nil {
		return nil, err
	}
	dist, err := loadDistribution(db)
	if err != nil {
		return nil, err
	}
	if h.Bond, err = h.Bond.Add(r.Amount); err != nil {
		return nil, err
	}
	if dist.TotalBond, err = dist.TotalBond.Add(r.Amount); err != nil {
		return nil, err
	}
	if err := saveHolder(db, r.Sender, h); err != nil {
		return nil, err
	}
	if err := saveDistribution(db, dist); err != nil {
		return nil, err
	}
	return &nexus.Result{Log: "bonded"}, nil
}

func boost(db nexus.KVStore, conf *Configuration, r nexus.Receipt, msg nexus.Msg) (*nexus.Result, error) {
	if _, ok := msg.(*BoostMsg); !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	h, err := loadHolder(db, r.Sender)
	if err != nil {
		return nil, err
	}
	if h.Boost, err = h.Boost.Add(r.Amount); err != nil {
		return nil, err
	}
	if err := saveHolder(db, r.Sender, h); err != nil {
		return nil, err
	}
	return &nexus.Result{Log: "boost bonded"}, nil
}

func mint(db nexus.KVStore, conf *Configuration, r nexus.Receipt, msg nexus.Msg) (*nexus.Result, error) {
	m, ok := msg.(*MintMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	receiver := m.Receiver
	if receiver == nil {
		receiver = r.Sender
	}
	return &nexus.Result{
		Log:   "boost minted",
		Calls: []nexus.Call{nexus.Mint(conf.BoostToken, Address(), receiver, r.Amount)},
	}, nil
}

func unbond(db nexus.KVStore, conf *Configuration, signer nexus.Address, msg nexus.Msg) (*nexus.Result, error) {
	m, ok := msg.(*UnbondMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	h, err := loadHolder(db, signer)
	if err != nil {
		return nil, err
	}
	if h.Bond.LT(m.Amount) {
		return nil, errors.Wrapf(cash.ErrInsufficientFunds, "bonded %s, %s requested", h.Bond, m.Amount)
	}
	dist, err := loadDistribution(db)
	if err != nil {
		return nil, err
	}
	if h.Bond, err = h.Bond.Sub(m.Amount); err != nil {
		return nil, err
	}
	if dist.TotalBond, err = dist.TotalBond.Sub(m.Amount); err != nil {
		return nil, errors.Wrap(errors.ErrState, "total bond lower than holder bond")
	}
	if err := saveHolder(db, signer, h); err != nil {
		return nil, err
	}
	if err := saveDistribution(db, dist); err != nil {
		return nil, err
	}
	return &nexus.Result{
		Log:   "unbonded",
		Calls: []nexus.Call{nexus.Transfer(conf.BondToken, Address(), signer, m.Amount)},
	}, nil
}

func activateBoost(db nexus.KVStore, conf *Configuration, signer nexus.Address, msg nexus.Msg) (*nexus.Result, error) {
	if _, ok := msg.(*ActivateBoostMsg); !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	h, err := loadHolder(db, signer)
	if err != nil {
		return nil, err
	}
	dist, err := loadDistribution(db)
	if err != nil {
		return nil, err
	}
	if dist.TotalWeight, err = dist.TotalWeight.Sub(h.Weight); err != nil {
		return nil, errors.Wrap(errors.ErrState, "total weight lower than holder weight")
	}
	h.ActiveBoost = h.Boost
	h.Weight = h.Boost
	if dist.TotalWeight, err = dist.TotalWeight.Add(h.Weight); err != nil {
		return nil, err
	}
	if err := saveHolder(db, signer, h); err != nil {
		return nil, err
	}
	if err := saveDistribution(db, dist); err != nil {
		return nil, err
	}
	return &nexus.Result{Log: "boost activated"}, nil
}

func accrue(db nexus.KVStore, conf *Configuration, signer nexus.Address, msg nexus.Msg) (*nexus.Result, error) {
	m, ok := msg.(*AccrueMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	if !conf.Admin.Equals(signer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "admin only")
	}
	h, err := loadHolder(db, m.Holder)
	if err != nil {
		return nil, err
	}
	if h.Pending, err = h.Pending.Add(m.Amount); err != nil {
		return nil, err
	}
	if err := saveHolder(db, m.Holder, h); err != nil {
		return nil, err
	}
	return &nexus.Result{Log: "rewards accrued"}, nil
}

func withdrawRewards(db nexus.KVStore, conf *Configuration, signer nexus.Address, msg nexus.Msg) (*nexus.Result, error) {
	if _, ok := msg.(*WithdrawRewardsMsg); !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	h, err := loadHolder(db, signer)
	if err != nil {
		return nil, err
	}
	if h.Vested, err = h.Vested.Add(h.Pending); err != nil {
		return nil, err
	}
	h.Pending = decimal.ZeroUint()
	if err := saveHolder(db, signer, h); err != nil {
		return nil, err
	}
	return &nexus.Result{Log: "rewards withdrawn"}, nil
}

func claimWithdrawn(db nexus.KVStore, conf *Configuration, signer nexus.Address, msg nexus.Msg) (*nexus.Result, error) {
	if _, ok := msg.(*ClaimWithdrawnMsg); !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	h, err := loadHolder(db, signer)
	if err != nil {
		return nil, err
	}
	if h.Vested.IsZero() {
		return &nexus.Result{Log: "nothing to claim"}, nil
	}
	amount := h.Vested
	h.Vested = decimal.ZeroUint()
	if err := saveHolder(db, signer, h); err != nil {
		return nil, err
	}
	return &nexus.Result{
		Log:   "withdrawn rewards claimed",
		Calls: []nexus.Call{nexus.Transfer(conf.RewardToken, Address(), signer, amount)},
	}, nil
}
