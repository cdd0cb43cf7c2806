package governance

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/errors"
)

// Init sets the initial governance of a namespace. It fails if the namespace
// already has one.
func Init(db nexus.KVStore, ns string, addr nexus.Address) error {
	b := NewBucket()
	if ok, err := b.Has(db, []byte(ns)); err != nil {
		return err
	} else if ok {
		return errors.Wrapf(errors.ErrDuplicate, "namespace %q", ns)
	}
	return b.Save(db, ns, &Governance{Current: addr})
}

// Current returns the address currently in charge of given namespace.
func Current(db nexus.ReadOnlyKVStore, ns string) (nexus.Address, error) {
	g, err := NewBucket().Get(db, ns)
	if err != nil {
		return nil, err
	}
	return g.Current, nil
}

// Authorize returns ErrUnauthorized unless the processed message is signed
// by the current governance of given namespace.
func Authorize(ctx nexus.Context, db nexus.ReadOnlyKVStore, ns string) error {
	current, err := Current(db, ns)
	if err != nil {
		return err
	}
	if !nexus.HasSigner(ctx, current) {
		return errors.Wrapf(errors.ErrUnauthorized, "governance of %q", ns)
	}
	return nil
}

// Authorizer returns Authorize bound to given namespace.
func Authorizer(ns string) func(nexus.Context, nexus.ReadOnlyKVStore) error {
	return func(ctx nexus.Context, db nexus.ReadOnlyKVStore) error {
		return Authorize(ctx, db, ns)
	}
}

// Propose starts a handoff of given namespace to a new address. The handoff
// can be accepted until wait elapses. A handoff in progress is replaced.
func Propose(ctx nexus.Context, db nexus.KVStore, ns string, to nexus.Address, wait nexus.Seconds) error {
	b := NewBucket()
	g, err := b.Get(db, ns)
	if err != nil {
		return err
	}
	if !nexus.HasSigner(ctx, g.Current) {
		return errors.Wrapf(errors.ErrUnauthorized, "governance of %q", ns)
	}
	now, err := nexus.BlockUnixTime(ctx)
	if err != nil {
		return errors.Wrap(err, "block time")
	}
	g.Pending = to
	g.Expiry = now.Add(wait.Duration())
	if err := b.Save(db, ns, g); err != nil {
		return err
	}
	nexus.GetLogger(ctx).Info("governance handoff proposed",
		"namespace", ns, "to", to, "expiry", g.Expiry)
	return nil
}

// Accept completes the handoff of given namespace. It must be signed by the
// proposed address, not later than the handoff expiry.
func Accept(ctx nexus.Context, db nexus.KVStore, ns string) error {
	b := NewBucket()
	g, err := b.Get(db, ns)
	if err != nil {
		return err
	}
	if len(g.Pending) == 0 {
		return errors.Wrapf(errors.ErrNotFound, "no handoff of %q", ns)
	}
	now, err := nexus.BlockUnixTime(ctx)
	if err != nil {
		return errors.Wrap(err, "block time")
	}
	if g.Expiry < now {
		return errors.Wrapf(ErrStaleGovernanceTransfer, "expired at %s", g.Expiry)
	}
	if !nexus.HasSigner(ctx, g.Pending) {
		return errors.Wrap(ErrStaleGovernanceTransfer, "not the proposed address")
	}
	g.Current = g.Pending
	g.Pending = nil
	g.Expiry = 0
	if err := b.Save(db, ns, g); err != nil {
		return err
	}
	nexus.GetLogger(ctx).Info("governance handoff accepted", "namespace", ns, "governance", g.Current)
	return nil
}
