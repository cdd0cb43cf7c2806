package governance

import (
	"regexp"

	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/orm"
)

var isNamespace = regexp.MustCompile(`^[a-z][a-z0-9_/]{2,39}$`).MatchString

// Governance is the governance record of a single namespace.
type Governance struct {
	Current nexus.Address
	// Pending is the address a handoff was proposed to. Empty if there is
	// no handoff in progress.
	Pending nexus.Address
	// Expiry is the last moment the pending handoff can be accepted.
	Expiry nexus.UnixTime
}

var _ orm.Model = (*Governance)(nil)

// Validate ensures the record is consistent.
func (g *Governance) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Current", g.Current.Validate())
	if len(g.Pending) != 0 {
		errs = errors.AppendField(errs, "Pending", g.Pending.Validate())
		errs = errors.AppendField(errs, "Expiry", g.Expiry.Validate())
	}
	return errs
}

// Bucket stores governance records keyed by namespace.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket returns a bucket for governance records.
func NewBucket() Bucket {
	return Bucket{ModelBucket: orm.NewModelBucket("governance")}
}

// Get returns the governance record of given namespace.
func (b Bucket) Get(db nexus.ReadOnlyKVStore, ns string) (*Governance, error) {
	var g Governance
	if err := b.One(db, []byte(ns), &g); err != nil {
		return nil, errors.Wrapf(err, "namespace %q", ns)
	}
	return &g, nil
}

// Save writes the governance record of given namespace.
func (b Bucket) Save(db nexus.KVStore, ns string, g *Governance) error {
	if !isNamespace(ns) {
		return errors.Wrapf(errors.ErrInput, "invalid namespace %q", ns)
	}
	return b.Put(db, []byte(ns), g)
}
