package vault

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/gconf"
	"github.com/iov-one/nexus/x/cash"
	"github.com/iov-one/nexus/x/governance"
	"github.com/iov-one/nexus/x/launch"
	"github.com/iov-one/nexus/x/ratio"
	"github.com/iov-one/nexus/x/reply"
	"github.com/iov-one/nexus/x/rewards"
)

// LaunchPool is the view of the launch pool the vault needs.
type LaunchPool interface {
	// RewardInfo returns the launch rewards of given holder.
	RewardInfo(db nexus.ReadOnlyKVStore, holder nexus.Address) (launch.RewardInfo, error)
	// Curve returns the bonding curve inputs as seen by given holder.
	Curve(db nexus.ReadOnlyKVStore, holder nexus.Address) (ratio.Curve, error)
}

var _ LaunchPool = launch.Querier{}

// RegisterRoutes registers handlers for all vault messages. bank must be the
// ledger that the host executor moves tokens with.
func RegisterRoutes(r nexus.Registry, bank cash.Controller, lp LaunchPool) {
	rb := rebalancer{bank: bank, launch: lp}
	claim := NewClaimHandler(bank, lp)
	r.Handle(pathDepositMsg, depositHandler{rb: rb})
	r.Handle(pathWithdrawMsg, withdrawHandler{rb: rb})
	r.Handle(pathRebalanceMsg, rebalanceHandler{rb: rb})
	r.Handle(pathUpdateRatiosMsg, updateRatiosHandler{})
	r.Handle(pathUpdateConfigurationMsg, gconf.NewUpdateConfigurationHandler(
		pkg, newConfiguration, governance.Authorizer(pkg), validatePatched))
	r.Handle(pathClaimVirtualMsg, claim)
	r.Handle(pathClaimRealMsg, claim)
}

func newConfiguration() gconf.Configuration {
	return &Configuration{}
}

// validatePatched rejects a configuration that the current split does not
// satisfy.
func validatePatched(ctx nexus.Context, db nexus.KVStore, c gconf.Configuration) error {
	conf, ok := c.(*Configuration)
	if !ok {
		return errors.Wrapf(errors.ErrType, "%T", c)
	}
	st, err := LoadRatios(db)
	if err != nil {
		return err
	}
	return st.Validate(conf.Ratio())
}

// rebalancer runs the ratio controller with the signal of the launch pool
// curve and the market prices.
type rebalancer struct {
	bank   cash.Controller
	launch LaunchPool
}

func (rb rebalancer) signal(db nexus.ReadOnlyKVStore, conf *Configuration) ratio.SignalFunc {
	return func() (ratio.Signal, error) {
		priceY, err := cash.Price(db, rb.bank, conf.BondPair, conf.BondToken, conf.RewardToken)
		if err != nil {
			return ratio.Zero, errors.Wrap(err, "bond token price")
		}
		priceX, err := cash.Price(db, rb.bank, conf.BoostPair, conf.BoostToken, conf.RewardToken)
		if err != nil {
			return ratio.Zero, errors.Wrap(err, "boost token price")
		}
		cv, err := rb.launch.Curve(db, Address())
		if err != nil {
			return ratio.Zero, errors.Wrap(err, "launch curve")
		}
		return ratio.ComputeSignal(cv, priceY, priceX)
	}
}

// rebalance moves the split once the period elapsed, or right away when
// forced. A skipped rebalance writes nothing.
func (rb rebalancer) rebalance(ctx nexus.Context, db nexus.KVStore, conf *Configuration, force bool) (ratio.Outcome, error) {
	now, err := nexus.BlockUnixTime(ctx)
	if err != nil {
		return ratio.Skipped, err
	}
	st, err := LoadRatios(db)
	if err != nil {
		return ratio.Skipped, err
	}

	var next ratio.State
	var outcome ratio.Outcome
	if force {
		st.Last = now
		next, outcome, err = ratio.Step(conf.Ratio(), st, rb.signal(db, conf))
	} else {
		next, outcome, err = ratio.Rebalance(now, conf.Ratio(), st, rb.signal(db, conf))
	}
	if err != nil {
		return outcome, errors.Wrap(err, "rebalance")
	}
	observeRebalance(outcome)
	if outcome == ratio.Skipped {
		return outcome, nil
	}
	if err := saveRatios(db, conf, next); err != nil {
		return outcome, err
	}
	nexus.GetLogger(ctx).Debug("rebalanced",
		"outcome", outcome.String(),
		"ratio_a", next.A.String(),
		"ratio_b", next.B.String(),
		"ratio_c", next.C.String())
	return outcome, nil
}

// receipt returns the tokens sent to the vault together with the processed
// hook message.
func receipt(ctx nexus.Context) (nexus.Receipt, error) {
	r, ok := nexus.GetReceipt(ctx)
	if !ok {
		return r, errors.Wrap(errors.ErrInput, "tokens required")
	}
	if !r.Recipient.Equals(Address()) {
		return r, errors.Wrap(errors.ErrInput, "tokens not sent to the vault")
	}
	return r, nil
}

type depositHandler struct {
	rb rebalancer
}

// Deliver mints share tokens for the deposit and bonds the deposit to the
// launch pool.
func (h depositHandler) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	if _, ok := msg.(*DepositMsg); !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	r, err := receipt(ctx)
	if err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}

	var share string
	var hook nexus.Msg
	switch r.Token {
	case conf.BondToken:
		share, hook = conf.BondShare, &launch.BondMsg{}
	case conf.BoostToken:
		share, hook = conf.BoostShare, &launch.BoostMsg{}
	default:
		return nil, errors.Wrapf(errors.ErrUnauthorized, "token %q cannot be deposited", r.Token)
	}
	if _, err := h.rb.rebalance(ctx, db, conf, false); err != nil {
		return nil, err
	}

	vault := Address()
	return &nexus.Result{
		Log: "deposited",
		Calls: []nexus.Call{
			nexus.Mint(share, vault, r.Sender, r.Amount),
			nexus.Send(r.Token, vault, launch.Address(), r.Amount, hook),
		},
	}, nil
}

type withdrawHandler struct {
	rb rebalancer
}

// Deliver burns the received bond shares and returns the same amount of bond
// tokens unbonded from the launch pool.
func (h withdrawHandler) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	if _, ok := msg.(*WithdrawMsg); !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	r, err := receipt(ctx)
	if err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if r.Token != conf.BondShare {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "token %q cannot be withdrawn", r.Token)
	}
	if _, err := h.rb.rebalance(ctx, db, conf, false); err != nil {
		return nil, err
	}

	vault := Address()
	return &nexus.Result{
		Log: "withdrawn",
		Calls: []nexus.Call{
			nexus.Burn(conf.BondShare, vault, r.Amount),
			nexus.Execute(vault, &launch.UnbondMsg{Amount: r.Amount}),
			nexus.Transfer(conf.BondToken, vault, r.Sender, r.Amount),
		},
	}, nil
}

type rebalanceHandler struct {
	rb rebalancer
}

func (h rebalanceHandler) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	if _, ok := msg.(*RebalanceMsg); !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !nexus.HasSigner(ctx, conf.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner only")
	}
	outcome, err := h.rb.rebalance(ctx, db, conf, true)
	if err != nil {
		return nil, err
	}
	return &nexus.Result{Log: "rebalance " + outcome.String(), Data: []byte(outcome.String())}, nil
}

type updateRatiosHandler struct{}

func (updateRatiosHandler) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	m, ok := msg.(*UpdateRatiosMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	if err := governance.Authorize(ctx, db, pkg); err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	st, err := LoadRatios(db)
	if err != nil {
		return nil, err
	}
	st.A, st.B, st.C = m.RatioA, m.RatioB, m.RatioC
	if err := saveRatios(db, conf, st); err != nil {
		return nil, err
	}
	return &nexus.Result{Log: "ratios updated"}, nil
}

// ClaimHandler claims the launch rewards of the vault and splits them
// between the reward pools once the launch pool processed the claim.
type ClaimHandler struct {
	bank   cash.Controller
	launch LaunchPool
}

var _ nexus.ReplyHandler = ClaimHandler{}

// NewClaimHandler returns a handler of both claim messages.
func NewClaimHandler(bank cash.Controller, lp LaunchPool) ClaimHandler {
	return ClaimHandler{bank: bank, launch: lp}
}

func (h ClaimHandler) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	vault := Address()
	switch msg.(type) {
	case *ClaimVirtualRewardsMsg:
		info, err := h.launch.RewardInfo(db, vault)
		if err != nil {
			return nil, err
		}
		id, err := reply.Stash(db, &VirtualClaimContinuation{VestedBefore: info.Vested})
		if err != nil {
			return nil, err
		}
		return &nexus.Result{
			Log: "virtual rewards claim",
			Calls: []nexus.Call{
				nexus.Execute(vault, &launch.ActivateBoostMsg{}),
				nexus.Execute(vault, &launch.WithdrawRewardsMsg{}).WithReply(id, nexus.ReplySuccess),
			},
		}, nil
	case *ClaimRealRewardsMsg:
		conf, err := loadConf(db)
		if err != nil {
			return nil, err
		}
		before, err := h.bank.Balance(db, conf.RewardToken, vault)
		if err != nil {
			return nil, err
		}
		id, err := reply.Stash(db, &RealClaimContinuation{BalanceBefore: before})
		if err != nil {
			return nil, err
		}
		return &nexus.Result{
			Log: "real rewards claim",
			Calls: []nexus.Call{
				nexus.Execute(vault, &launch.ClaimWithdrawnMsg{}).WithReply(id, nexus.ReplySuccess),
			},
		}, nil
	default:
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
}

// Reply splits what the launch pool paid since the continuation was
// stashed.
func (h ClaimHandler) Reply(ctx nexus.Context, db nexus.KVStore, r nexus.Reply) (*nexus.Result, error) {
	c, err := reply.Take(db, r.ID)
	if err != nil {
		return nil, err
	}
	if r.Err != nil {
		return nil, errors.Wrap(r.Err, "launch rewards claim")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	vault := Address()

	var stream string
	var claimed decimal.Uint
	switch c := c.(type) {
	case *VirtualClaimContinuation:
		info, err := h.launch.RewardInfo(db, vault)
		if err != nil {
			return nil, err
		}
		stream = "virtual"
		claimed, err = info.Vested.Sub(c.VestedBefore)
		if err != nil {
			return nil, errors.Wrap(errors.ErrState, "vested rewards decreased")
		}
	case *RealClaimContinuation:
		now, err := h.bank.Balance(db, conf.RewardToken, vault)
		if err != nil {
			return nil, err
		}
		stream = "real"
		claimed, err = now.Sub(c.BalanceBefore)
		if err != nil {
			return nil, errors.Wrap(errors.ErrState, "reward balance decreased")
		}
	default:
		return nil, errors.Wrapf(errors.ErrType, "unexpected continuation %q", c.Kind())
	}

	st, err := LoadRatios(db)
	if err != nil {
		return nil, err
	}
	a, b, rest, err := st.Split(claimed)
	if err != nil {
		return nil, errors.Wrap(err, "split")
	}
	shares := []struct {
		pool   string
		amount decimal.Uint
	}{
		{conf.PoolA, a}, {conf.PoolB, b}, {conf.PoolC, rest},
	}
	var calls []nexus.Call
	for _, s := range shares {
		if s.amount.IsZero() {
			continue
		}
		if stream == "virtual" {
			calls = append(calls, nexus.Execute(vault, &rewards.RewardMsg{Pool: s.pool, Amount: s.amount}))
		} else {
			calls = append(calls, nexus.Transfer(conf.RewardToken, vault, rewards.PoolAddress(s.pool), s.amount))
		}
	}

	observeSplit(stream, claimed)
	nexus.GetLogger(ctx).Info("launch rewards split",
		"stream", stream,
		"total", claimed.String(),
		conf.PoolA, a.String(),
		conf.PoolB, b.String(),
		conf.PoolC, rest.String())
	return &nexus.Result{Log: stream + " rewards split", Calls: calls}, nil
}
