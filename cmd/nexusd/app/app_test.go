package app

import (
	"context"
	"testing"

	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/app"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/nexustest/assert"
	"github.com/iov-one/nexus/store"
	"github.com/iov-one/nexus/store/pebble"
	"github.com/iov-one/nexus/x/cash"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T) (*app.StoreApp, nexus.ReadOnlyKVStore) {
	t.Helper()
	db, err := pebble.Open("nexusd-test", pebble.InMemory())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sa, err := app.NewStoreApp("nexusd", db, NewHost(prometheus.NewRegistry()))
	require.NoError(t, err)

	gen, err := DefaultGenesis("test-chain", "alice", "bob")
	require.NoError(t, err)
	require.NoError(t, sa.InitChain(gen, Initializers()))
	_, err = sa.Commit()
	require.NoError(t, err)
	return sa, db
}

const vaultScenario = `
blocks:
  - time: 2023-01-01T00:00:00Z
    actions:
      - signer: alice
        path: cash/send
        msg: {token: yluna, to: "@vault", amount: 100}
        hook:
          path: vault/deposit
      - signer: owner
        path: launch/accrue
        msg: {holder: "@vault", amount: 50}
      - signer: bob
        path: vault/claim_virtual_rewards
  - time: 2023-01-01T01:00:00Z
    actions:
      - signer: alice
        path: cash/send
        msg: {token: nyluna, to: "@pool:nyluna_pool", amount: 40}
        hook:
          path: rewards/bond
          msg: {pool: nyluna_pool}
      - signer: alice
        path: cash/send
        msg: {token: nyluna, to: "@vault", amount: 1000}
        hook:
          path: vault/withdraw
        fail: true
      - signer: bob
        path: launch/accrue
        msg: {holder: "@vault", amount: 1}
        fail: true
`

func TestReplayVaultScenario(t *testing.T) {
	sa, db := newApp(t)

	sc, err := ParseScenario([]byte(vaultScenario))
	require.NoError(t, err)

	var outcomes []Outcome
	err = Replay(sa, sc, func(o Outcome) { outcomes = append(outcomes, o) })
	require.NoError(t, err)
	require.Len(t, outcomes, 6)
	assert.Equal(t, "", outcomes[0].Err)
	assert.Equal(t, int64(3), outcomes[3].Height)
	assert.Equal(t, true, outcomes[4].Err != "")
	assert.Equal(t, true, outcomes[5].Err != "")

	alice := AccountAddress("alice")
	bal, err := QueryBalance(db, BondShare, alice)
	require.NoError(t, err)
	assert.Uint(t, 60, bal.Balance)
	assert.Uint(t, 100, bal.Supply)

	bal, err = QueryBalance(db, BondToken, alice)
	require.NoError(t, err)
	assert.Uint(t, 99900, bal.Balance)

	v, err := QueryVault(db)
	require.NoError(t, err)
	assert.Uint(t, 100, v.Launch.Bond)
	assert.Uint(t, 50, v.Launch.Vested)
	assert.Dec(t, "0.5", v.Split.A)

	// 50 claimed launch rewards are split 25/15/10 between the pools
	for pool, want := range map[string]uint64{PoolA: 25, PoolB: 15, PoolC: 10} {
		view, err := QueryPool(db, pool, nil)
		require.NoError(t, err)
		assert.Uint(t, want, view.State.VirtualBalance)
	}

	view, err := QueryPool(db, PoolA, alice)
	require.NoError(t, err)
	assert.Uint(t, 40, view.Staker.Balance)
	assert.Uint(t, 40, view.State.TotalStaked)
}

func TestReplayScenarioFile(t *testing.T) {
	sa, _ := newApp(t)

	sc, err := LoadScenario("testdata/vault.yaml")
	require.NoError(t, err)
	require.Len(t, sc.Blocks, 2)

	var failed []Outcome
	err = Replay(sa, sc, func(o Outcome) {
		if o.Err != "" {
			failed = append(failed, o)
		}
	})
	require.NoError(t, err)
	assert.Equal(t, 0, len(failed))
	assert.Equal(t, int64(3), sa.Height())
}

func TestReplayStopsOnUnexpectedResult(t *testing.T) {
	cases := map[string]string{
		"unexpected failure": `
blocks:
  - time: 2023-01-01T00:00:00Z
    actions:
      - signer: bob
        path: launch/accrue
        msg: {holder: "@vault", amount: 1}
`,
		"unexpected success": `
blocks:
  - time: 2023-01-01T00:00:00Z
    actions:
      - signer: owner
        path: launch/accrue
        msg: {holder: "@vault", amount: 1}
        fail: true
`,
	}
	for testName, raw := range cases {
		t.Run(testName, func(t *testing.T) {
			sa, _ := newApp(t)
			sc, err := ParseScenario([]byte(raw))
			require.NoError(t, err)

			var outcomes []Outcome
			err = Replay(sa, sc, func(o Outcome) { outcomes = append(outcomes, o) })
			require.Error(t, err)
			require.Len(t, outcomes, 1)
		})
	}
}

func TestParseScenario(t *testing.T) {
	cases := map[string]struct {
		raw     string
		wantErr *errors.Error
	}{
		"valid": {
			raw: `
blocks:
  - time: 2023-01-01T00:00:00Z
    actions:
      - signer: alice
        path: rewards/claim
        msg: {pool: nyluna_pool, recipient: "@bob"}
`,
		},
		"unknown path": {
			raw: `
blocks:
  - time: 2023-01-01T00:00:00Z
    actions:
      - path: nothing/here
`,
			wantErr: errors.ErrInput,
		},
		"send without hook": {
			raw: `
blocks:
  - time: 2023-01-01T00:00:00Z
    actions:
      - signer: alice
        path: cash/send
        msg: {token: yluna, to: "@vault", amount: 1}
`,
			wantErr: errors.ErrEmpty,
		},
		"hook on a plain message": {
			raw: `
blocks:
  - time: 2023-01-01T00:00:00Z
    actions:
      - signer: alice
        path: vault/rebalance
        hook:
          path: vault/deposit
`,
			wantErr: errors.ErrInput,
		},
		"block time missing": {
			raw: `
blocks:
  - actions: []
`,
			wantErr: errors.ErrEmpty,
		},
		"block times not increasing": {
			raw: `
blocks:
  - time: 2023-01-01T00:00:00Z
  - time: 2023-01-01T00:00:00Z
`,
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := ParseScenario([]byte(tc.raw))
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestResolveAddress(t *testing.T) {
	addr, err := ResolveAddress("@alice")
	require.NoError(t, err)
	assert.Equal(t, AccountAddress("alice"), addr)

	parsed, err := ResolveAddress(addr.String())
	require.NoError(t, err)
	assert.Equal(t, addr, parsed)

	_, err = ResolveAddress("@")
	assert.IsErr(t, errors.ErrInput, err)
}

func TestMessagesAreRouted(t *testing.T) {
	r := Router(cash.NewController())
	for _, path := range Paths() {
		msg, err := NewMsg(path)
		require.NoError(t, err)
		assert.Equal(t, path, msg.Path())
		if err := deliverEmpty(r.Handler(path), msg); app.ErrNoSuchPath.Is(err) {
			t.Fatalf("no handler for %q", path)
		}
	}
}

// deliverEmpty delivers msg on an empty store. Only the routing matters, so
// any failure of the handler itself is ignored.
func deliverEmpty(h nexus.Handler, msg nexus.Msg) (err error) {
	defer errors.Recover(&err)
	_, err = h.Deliver(context.Background(), store.MemStore(), msg)
	return err
}
