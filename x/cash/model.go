package cash

import (
	"regexp"

	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/orm"
)

var (
	isTokenName = regexp.MustCompile(`^[a-z][a-z0-9_]{1,15}$`).MatchString
	isPairName  = isTokenName
)

// ValidateToken returns an error if given name cannot be a token name.
func ValidateToken(name string) error {
	if !isTokenName(name) {
		return errors.Wrapf(errors.ErrInput, "invalid token name %q", name)
	}
	return nil
}

// Token declares a token and who can mint it.
type Token struct {
	Minter nexus.Address
	Supply decimal.Uint
}

var _ orm.Model = (*Token)(nil)

func (t *Token) Validate() error {
	return errors.AppendField(nil, "Minter", t.Minter.Validate())
}

// Account is the balance of a single holder of a single token.
type Account struct {
	Amount decimal.Uint
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Validate() error {
	return nil
}

// Pair declares a trading pair of two different tokens. Its reserves are the
// balances held by the pair address.
type Pair struct {
	TokenA string
	TokenB string
}

var _ orm.Model = (*Pair)(nil)

func (p *Pair) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "TokenA", ValidateToken(p.TokenA))
	errs = errors.AppendField(errs, "TokenB", ValidateToken(p.TokenB))
	if p.TokenA == p.TokenB {
		errs = errors.AppendField(errs, "TokenB", errors.ErrDuplicate)
	}
	return errs
}

// Other returns the token of the pair that is not the given one.
func (p *Pair) Other(token string) (string, error) {
	switch token {
	case p.TokenA:
		return p.TokenB, nil
	case p.TokenB:
		return p.TokenA, nil
	default:
		return "", errors.Wrapf(errors.ErrInput, "token %q not traded by pair", token)
	}
}

// PairAddress returns the address holding the reserves of the named pair.
func PairAddress(name string) nexus.Address {
	return nexus.NewCondition("cash", "pair", []byte(name)).Address()
}

var (
	tokens   = orm.NewModelBucket("cash_token")
	accounts = orm.NewModelBucket("cash_account")
	pairs    = orm.NewModelBucket("cash_pair")
)

func accountKey(token string, holder nexus.Address) []byte {
	return append([]byte(token+":"), holder...)
}

func loadToken(db nexus.ReadOnlyKVStore, name string) (*Token, error) {
	var t Token
	if err := tokens.One(db, []byte(name), &t); err != nil {
		return nil, errors.Wrapf(err, "token %q", name)
	}
	return &t, nil
}

// LoadPair returns the named pair.
func LoadPair(db nexus.ReadOnlyKVStore, name string) (*Pair, error) {
	var p Pair
	if err := pairs.One(db, []byte(name), &p); err != nil {
		return nil, errors.Wrapf(err, "pair %q", name)
	}
	return &p, nil
}

// CreateToken declares a new token with zero supply.
func CreateToken(db nexus.KVStore, name string, minter nexus.Address) error {
	if err := ValidateToken(name); err != nil {
		return err
	}
	switch ok, err := tokens.Has(db, []byte(name)); {
	case err != nil:
		return err
	case ok:
		return errors.Wrapf(errors.ErrDuplicate, "token %q", name)
	}
	t := Token{Minter: minter, Supply: decimal.ZeroUint()}
	return errors.Wrapf(tokens.Put(db, []byte(name), &t), "token %q", name)
}

// CreatePair declares a new trading pair of two existing tokens.
func CreatePair(db nexus.KVStore, name, tokenA, tokenB string) error {
	if !isPairName(name) {
		return errors.Wrapf(errors.ErrInput, "invalid pair name %q", name)
	}
	for _, t := range []string{tokenA, tokenB} {
		if _, err := loadToken(db, t); err != nil {
			return errors.Wrapf(err, "pair %q", name)
		}
	}
	p := Pair{TokenA: tokenA, TokenB: tokenB}
	return errors.Wrapf(pairs.Put(db, []byte(name), &p), "pair %q", name)
}
