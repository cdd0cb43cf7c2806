package gconf

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type config struct {
	Owner  nexus.Address
	Period nexus.Seconds
	Step   decimal.Dec
}

func (c *config) Validate() error {
	if c.Period <= 0 {
		return errors.Field("Period", errors.ErrInput, "must be positive")
	}
	return nil
}

type patchMsg struct {
	Patch *config
}

func (patchMsg) Path() string              { return "test/patch" }
func (patchMsg) Validate() error           { return nil }
func (m patchMsg) GetPatch() Configuration { return m.Patch }

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	var got config
	err := Load(db, "vault", &got)
	assert.True(t, errors.ErrNotFound.Is(err))

	err = Save(db, "vault", &config{})
	assert.True(t, errors.ErrInput.Is(err))

	want := config{Period: 86400, Step: decimal.MustParseDec("0.99")}
	require.NoError(t, Save(db, "vault", &want))
	require.NoError(t, Load(db, "vault", &got))
	assert.Equal(t, want.Period, got.Period)
	assert.True(t, want.Step.Equal(got.Step))
}

func TestInitConfig(t *testing.T) {
	db := store.MemStore()
	opts := nexus.Options{
		"conf": json.RawMessage(`{"vault": {"Period": "24h", "Step": "0.99"}}`),
	}
	var conf config
	require.NoError(t, InitConfig(db, opts, "vault", &conf))

	var got config
	require.NoError(t, Load(db, "vault", &got))
	assert.Equal(t, nexus.Seconds(86400), got.Period)

	err := InitConfig(db, opts, "missing", &conf)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestUpdateConfigurationHandler(t *testing.T) {
	admin := nexus.NewCondition("sigs", "ed25519", []byte("admin")).Address()
	auth := func(ctx nexus.Context, db nexus.ReadOnlyKVStore) error {
		if !nexus.HasSigner(ctx, admin) {
			return errors.ErrUnauthorized
		}
		return nil
	}
	newConf := func() Configuration { return &config{} }

	cases := map[string]struct {
		signer     nexus.Address
		patch      *config
		validate   Validator
		wantErr    *errors.Error
		wantPeriod nexus.Seconds
		wantStep   string
	}{
		"patch only the step": {
			signer:     admin,
			patch:      &config{Step: decimal.MustParseDec("0.95")},
			wantPeriod: 60,
			wantStep:   "0.95",
		},
		"not the admin": {
			signer:  nexus.NewCondition("sigs", "ed25519", []byte("eve")).Address(),
			patch:   &config{Step: decimal.MustParseDec("0.95")},
			wantErr: errors.ErrUnauthorized,
		},
		"extension validation rejects": {
			signer: admin,
			patch:  &config{Period: 1},
			validate: func(nexus.Context, nexus.KVStore, Configuration) error {
				return errors.ErrState
			},
			wantErr: errors.ErrState,
		},
		"missing patch": {
			signer:  admin,
			wantErr: errors.ErrEmpty,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			require.NoError(t, Save(db, "vault", &config{Period: 60, Step: decimal.MustParseDec("0.99")}))

			h := NewUpdateConfigurationHandler("vault", newConf, auth, tc.validate)
			ctx := nexus.WithSigner(context.Background(), tc.signer)
			_, err := h.Deliver(ctx, db, patchMsg{Patch: tc.patch})
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			var got config
			require.NoError(t, Load(db, "vault", &got))
			assert.Equal(t, tc.wantPeriod, got.Period)
			assert.Equal(t, tc.wantStep, got.Step.String())
		})
	}
}
