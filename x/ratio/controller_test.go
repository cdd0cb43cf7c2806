package ratio

import (
	"testing"
	"time"

	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/nexustest/assert"
)

func dec(s string) decimal.Dec {
	return decimal.MustParseDec(s)
}

func signalOf(s Signal) SignalFunc {
	return func() (Signal, error) { return s, nil }
}

func testConfig() Config {
	return Config{
		Period: nexus.Seconds(3600),
		Step:   dec("0.99"),
		MinA:   dec("0.1"),
		MaxA:   dec("0.52"),
		MinB:   dec("0.1"),
		MaxB:   dec("0.8"),
	}
}

func TestRebalance(t *testing.T) {
	start := nexus.AsUnixTime(time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC))
	hour := time.Hour

	cases := map[string]struct {
		conf    func(*Config)
		state   State
		now     nexus.UnixTime
		signal  Signal
		want    State
		outcome Outcome
	}{
		"positive signal multiplies ratio A by step": {
			state:   State{A: dec("0.50"), B: dec("0.30"), C: dec("0.20"), Last: start},
			now:     start.Add(hour),
			signal:  Positive,
			want:    State{A: dec("0.495"), B: dec("0.305"), C: dec("0.20"), Last: start.Add(hour)},
			outcome: Moved,
		},
		"negative signal divides ratio A by step": {
			state:   State{A: dec("0.495"), B: dec("0.305"), C: dec("0.20"), Last: start},
			now:     start.Add(2 * hour),
			signal:  Negative,
			want:    State{A: dec("0.5"), B: dec("0.3"), C: dec("0.20"), Last: start.Add(2 * hour)},
			outcome: Moved,
		},
		"period did not elapse": {
			state:   State{A: dec("0.50"), B: dec("0.30"), C: dec("0.20"), Last: start},
			now:     start.Add(hour - time.Second),
			signal:  Positive,
			want:    State{A: dec("0.50"), B: dec("0.30"), C: dec("0.20"), Last: start},
			outcome: Skipped,
		},
		"zero signal only moves the timer": {
			state:   State{A: dec("0.50"), B: dec("0.30"), C: dec("0.20"), Last: start},
			now:     start.Add(hour),
			signal:  Zero,
			want:    State{A: dec("0.50"), B: dec("0.30"), C: dec("0.20"), Last: start.Add(hour)},
			outcome: Unchanged,
		},
		"dependent ratio above its max": {
			conf:    func(c *Config) { c.MaxB = dec("0.302") },
			state:   State{A: dec("0.50"), B: dec("0.30"), C: dec("0.20"), Last: start},
			now:     start.Add(hour),
			signal:  Positive,
			want:    State{A: dec("0.50"), B: dec("0.30"), C: dec("0.20"), Last: start.Add(hour)},
			outcome: Rejected,
		},
		"dependent ratio below its min": {
			conf:    func(c *Config) { c.MinB = dec("0.299") },
			state:   State{A: dec("0.50"), B: dec("0.30"), C: dec("0.20"), Last: start},
			now:     start.Add(hour),
			signal:  Negative,
			want:    State{A: dec("0.50"), B: dec("0.30"), C: dec("0.20"), Last: start.Add(hour)},
			outcome: Rejected,
		},
		"ratio A above its max": {
			state:   State{A: dec("0.52"), B: dec("0.28"), C: dec("0.20"), Last: start},
			now:     start.Add(hour),
			signal:  Negative,
			want:    State{A: dec("0.52"), B: dec("0.28"), C: dec("0.20"), Last: start.Add(hour)},
			outcome: Rejected,
		},
		"ratio A below its min": {
			state:   State{A: dec("0.1"), B: dec("0.7"), C: dec("0.20"), Last: start},
			now:     start.Add(hour),
			signal:  Positive,
			want:    State{A: dec("0.1"), B: dec("0.7"), C: dec("0.20"), Last: start.Add(hour)},
			outcome: Rejected,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			conf := testConfig()
			if tc.conf != nil {
				tc.conf(&conf)
			}
			got, outcome, err := Rebalance(tc.now, conf, tc.state, signalOf(tc.signal))
			assert.Nil(t, err)
			assert.Equal(t, tc.outcome, outcome)
			assert.Dec(t, tc.want.A.String(), got.A)
			assert.Dec(t, tc.want.B.String(), got.B)
			assert.Dec(t, tc.want.C.String(), got.C)
			assert.Equal(t, tc.want.Last, got.Last)
			if outcome == Moved {
				assert.Nil(t, got.Validate(conf))
			}
		})
	}
}

func TestRebalanceSignalFailure(t *testing.T) {
	st := State{A: dec("0.50"), B: dec("0.30"), C: dec("0.20")}
	failing := func() (Signal, error) { return Zero, errors.ErrInput.New("zero reserve") }
	_, _, err := Rebalance(nexus.UnixTime(7200), testConfig(), st, failing)
	assert.IsErr(t, errors.ErrInput, err)

	// The signal is not computed while the gate is closed.
	got, outcome, err := Rebalance(nexus.UnixTime(60), testConfig(), st, failing)
	assert.Nil(t, err)
	assert.Equal(t, Skipped, outcome)
	assert.Equal(t, st, got)
}

func TestRepeatedStepsKeepInvariant(t *testing.T) {
	conf := testConfig()
	st := State{A: dec("0.50"), B: dec("0.30"), C: dec("0.20")}
	signals := []Signal{Negative, Negative, Negative, Negative, Positive, Negative, Negative, Positive, Positive}
	for i, s := range signals {
		next, outcome, err := Step(conf, st, signalOf(s))
		assert.Nil(t, err)
		if outcome == Rejected {
			assert.Equal(t, st, next)
		}
		st = next
		if err := st.Validate(conf); err != nil {
			t.Fatalf("step %d: %s", i, err)
		}
	}
}

func TestStateValidate(t *testing.T) {
	conf := testConfig()
	cases := map[string]struct {
		state   State
		wantErr *errors.Error
	}{
		"valid":            {state: State{A: dec("0.5"), B: dec("0.3"), C: dec("0.2")}},
		"sum below one":    {state: State{A: dec("0.5"), B: dec("0.3"), C: dec("0.1")}, wantErr: ErrInvalidRatioState},
		"sum above one":    {state: State{A: dec("0.5"), B: dec("0.3"), C: dec("0.3")}, wantErr: ErrInvalidRatioState},
		"A out of bounds":  {state: State{A: dec("0.6"), B: dec("0.3"), C: dec("0.1")}, wantErr: ErrInvalidRatioState},
		"B out of bounds":  {state: State{A: dec("0.15"), B: dec("0.85"), C: dec("0")}, wantErr: ErrInvalidRatioState},
		"C is not bounded": {state: State{A: dec("0.1"), B: dec("0.1"), C: dec("0.8")}},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.state.Validate(conf)
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	cases := map[string]struct {
		mod     func(*Config)
		field   string
		wantErr *errors.Error
	}{
		"valid":           {field: "Step"},
		"zero step":       {mod: func(c *Config) { c.Step = decimal.ZeroDec() }, field: "Step", wantErr: errors.ErrInput},
		"step of one":     {mod: func(c *Config) { c.Step = decimal.OneDec() }, field: "Step", wantErr: errors.ErrInput},
		"max above one":   {mod: func(c *Config) { c.MaxB = dec("1.1") }, field: "MaxB", wantErr: errors.ErrInput},
		"min equals max":  {mod: func(c *Config) { c.MinA = c.MaxA }, field: "MinA", wantErr: errors.ErrInput},
		"negative period": {mod: func(c *Config) { c.Period = -1 }, field: "Period", wantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			conf := testConfig()
			if tc.mod != nil {
				tc.mod(&conf)
			}
			assert.FieldError(t, conf.Validate(), tc.field, tc.wantErr)
		})
	}
}

func TestSplit(t *testing.T) {
	st := State{A: dec("0.333"), B: dec("0.333"), C: dec("0.334")}
	a, b, c, err := st.Split(decimal.NewUint(1000))
	assert.Nil(t, err)
	assert.Uint(t, 333, a)
	assert.Uint(t, 333, b)
	assert.Uint(t, 334, c)

	a, b, c, err = st.Split(decimal.NewUint(10))
	assert.Nil(t, err)
	assert.Uint(t, 3, a)
	assert.Uint(t, 3, b)
	assert.Uint(t, 4, c)
}
