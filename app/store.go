package app

import (
	"context"
	"time"

	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp binds a Host to a committing store. Messages are delivered in
// blocks: BeginBlock sets the height and time every message of the block
// sees and Commit persists the state.
type StoreApp struct {
	name    string
	logger  log.Logger
	store   nexus.CommitKVStore
	host    *Host
	chainID string

	height    int64
	blockTime time.Time
}

// NewStoreApp initializes this app into a ready state with some defaults.
// The chain id is loaded from the store if it was initialized before.
func NewStoreApp(name string, store nexus.CommitKVStore, host *Host) (*StoreApp, error) {
	chainID, err := loadChainID(store)
	if err != nil {
		return nil, err
	}
	last, err := store.LatestVersion()
	if err != nil {
		return nil, err
	}
	return &StoreApp{
		name:    name,
		logger:  nexus.DefaultLogger,
		store:   store,
		host:    host,
		chainID: chainID,
		height:  last.Version,
	}, nil
}

// WithLogger sets the logger every delivered message logs with.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	return s
}

// GetChainID returns the current chainID, empty before InitChain.
func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// Height returns the height of the current block.
func (s *StoreApp) Height() int64 {
	return s.height
}

// ReadStore gives read access to the committed and delivered state.
func (s *StoreApp) ReadStore() nexus.ReadOnlyKVStore {
	return s.store
}

// InitChain stores the chain id and passes the genesis options to init.
// Nothing is written if any initializer fails.
func (s *StoreApp) InitChain(gen Genesis, init nexus.Initializer) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "chain %q already initialized", s.chainID)
	}
	cache := s.store.CacheWrap()
	if err := saveChainID(cache, gen.ChainID); err != nil {
		cache.Discard()
		return err
	}
	if err := init.FromGenesis(gen.AppOptions, cache); err != nil {
		cache.Discard()
		return errors.Wrap(err, "genesis")
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	s.chainID = gen.ChainID
	s.logger.Info("chain initialized", "chain_id", gen.ChainID)
	return nil
}

// BeginBlock starts the block following the last committed one.
func (s *StoreApp) BeginBlock(blockTime time.Time) {
	s.height++
	s.blockTime = blockTime
}

// BlockContext returns the context every message of the current block is
// delivered with.
func (s *StoreApp) BlockContext() nexus.Context {
	ctx := context.Background()
	ctx = nexus.WithChainID(ctx, s.chainID)
	ctx = nexus.WithHeight(ctx, s.height)
	ctx = nexus.WithBlockTime(ctx, s.blockTime)
	return nexus.WithLogger(ctx, s.logger.With("module", s.name, "height", s.height))
}

// Deliver processes msg authorized by signer. A nil signer delivers an
// unsigned message.
func (s *StoreApp) Deliver(signer nexus.Address, msg nexus.Msg) (*nexus.Result, error) {
	if s.chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	if s.blockTime.IsZero() {
		return nil, errors.Wrap(errors.ErrState, "no block started")
	}
	ctx := s.BlockContext()
	if signer != nil {
		ctx = nexus.WithSigner(ctx, signer)
	}
	return s.host.Deliver(ctx, s.store, msg)
}

// Commit persists the state of all delivered messages.
func (s *StoreApp) Commit() (nexus.CommitID, error) {
	id, err := s.store.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	s.height = id.Version
	s.logger.Info("commit synced", "version", id.Version)
	return id, nil
}
