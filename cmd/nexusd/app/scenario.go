package app

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/app"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/x/cash"
	"gopkg.in/yaml.v3"
)

// Scenario is a list of blocks replayed on top of the current state.
type Scenario struct {
	Blocks []Block `yaml:"blocks"`
}

// Block groups actions delivered with the same block time.
type Block struct {
	Time    time.Time `yaml:"time"`
	Actions []Action  `yaml:"actions"`
}

// Action is a single message. String values starting with "@" are resolved
// to addresses, see ResolveAddress.
type Action struct {
	// Signer is the account reference that authorizes the message. Empty
	// for unsigned messages.
	Signer string                 `yaml:"signer"`
	Path   string                 `yaml:"path"`
	Msg    map[string]interface{} `yaml:"msg"`
	// Hook is the message delivered together with the tokens of a
	// cash/send action.
	Hook *Action `yaml:"hook"`
	// Fail declares that the action is expected to fail.
	Fail bool `yaml:"fail"`
}

// Outcome is the result of a replayed action.
type Outcome struct {
	Height int64  `json:"height"`
	Path   string `json:"path"`
	Signer string `json:"signer,omitempty"`
	Log    string `json:"log,omitempty"`
	Data   string `json:"data,omitempty"`
	Err    string `json:"error,omitempty"`
}

// LoadScenario reads a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "read scenario: %s", err)
	}
	return ParseScenario(raw)
}

// ParseScenario decodes a YAML scenario.
func ParseScenario(raw []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "decode scenario: %s", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate returns an error if block times do not increase or an action
// cannot be decoded.
func (sc *Scenario) Validate() error {
	var last time.Time
	for i, b := range sc.Blocks {
		if b.Time.IsZero() {
			return errors.Wrapf(errors.ErrEmpty, "block #%d time", i)
		}
		if !b.Time.After(last) {
			return errors.Wrapf(errors.ErrInput, "block #%d time must be after %s", i, last)
		}
		last = b.Time
		for j, a := range b.Actions {
			if _, err := a.Decode(); err != nil {
				return errors.Wrapf(err, "block #%d action #%d", i, j)
			}
		}
	}
	return nil
}

// Decode returns the message described by the action.
func (a *Action) Decode() (nexus.Msg, error) {
	msg, err := NewMsg(a.Path)
	if err != nil {
		return nil, err
	}
	resolved, err := resolveRefs(a.Msg)
	if err != nil {
		return nil, errors.Wrap(err, a.Path)
	}
	if resolved != nil {
		raw, err := json.Marshal(resolved)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "%s: %s", a.Path, err)
		}
		if err := json.Unmarshal(raw, msg); err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "%s: %s", a.Path, err)
		}
	}

	if send, ok := msg.(*cash.SendMsg); ok {
		if a.Hook == nil {
			return nil, errors.Wrapf(errors.ErrEmpty, "%s requires a hook", a.Path)
		}
		hook, err := a.Hook.Decode()
		if err != nil {
			return nil, errors.Wrap(err, "hook")
		}
		send.Hook = hook
	} else if a.Hook != nil {
		return nil, errors.Wrapf(errors.ErrInput, "%s does not accept a hook", a.Path)
	}
	return msg, nil
}

// resolveRefs replaces all "@" references found in v with addresses.
func resolveRefs(v interface{}) (interface{}, error) {
	switch v := v.(type) {
	case string:
		if !strings.HasPrefix(v, "@") {
			return v, nil
		}
		return ResolveAddress(v)
	case map[string]interface{}:
		if v == nil {
			return nil, nil
		}
		out := make(map[string]interface{}, len(v))
		for k, val := range v {
			r, err := resolveRefs(val)
			if err != nil {
				return nil, errors.Wrap(err, k)
			}
			out[k] = r
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, val := range v {
			r, err := resolveRefs(val)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	default:
		return v, nil
	}
}

// Replay delivers all blocks of the scenario and commits after each block.
// It stops at the first action that does not behave as declared.
func Replay(sa *app.StoreApp, sc *Scenario, report func(Outcome)) error {
	for i, b := range sc.Blocks {
		sa.BeginBlock(b.Time)
		for j, a := range b.Actions {
			out, err := deliver(sa, a)
			report(out)
			if err != nil {
				return errors.Wrapf(err, "block #%d action #%d", i, j)
			}
		}
		if _, err := sa.Commit(); err != nil {
			return err
		}
	}
	return nil
}

func deliver(sa *app.StoreApp, a Action) (Outcome, error) {
	out := Outcome{Height: sa.Height(), Path: a.Path, Signer: a.Signer}
	msg, err := a.Decode()
	if err != nil {
		return out, err
	}
	var signer nexus.Address
	if a.Signer != "" {
		ref := a.Signer
		if !strings.HasPrefix(ref, "@") {
			ref = "@" + ref
		}
		if signer, err = ResolveAddress(ref); err != nil {
			return out, errors.Wrap(err, "signer")
		}
	}

	res, err := sa.Deliver(signer, msg)
	switch {
	case err != nil && a.Fail:
		out.Err = err.Error()
		return out, nil
	case err != nil:
		out.Err = err.Error()
		return out, err
	case a.Fail:
		return out, errors.Wrap(errors.ErrState, "action expected to fail")
	}
	out.Log = res.Log
	out.Data = string(res.Data)
	return out, nil
}
