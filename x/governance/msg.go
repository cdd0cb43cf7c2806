package governance

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/errors"
)

const (
	pathProposeMsg = "governance/propose"
	pathAcceptMsg  = "governance/accept"
)

// ProposeMsg starts a governance handoff of a namespace.
type ProposeMsg struct {
	Namespace string        `json:"namespace"`
	Address   nexus.Address `json:"address"`
	// Wait is the time the proposed address has to accept the handoff.
	Wait nexus.Seconds `json:"wait"`
}

var _ nexus.Msg = (*ProposeMsg)(nil)

func (ProposeMsg) Path() string {
	return pathProposeMsg
}

func (m *ProposeMsg) Validate() error {
	var errs error
	if !isNamespace(m.Namespace) {
		errs = errors.AppendField(errs, "Namespace", errors.ErrInput)
	}
	errs = errors.AppendField(errs, "Address", m.Address.Validate())
	if m.Wait <= 0 {
		errs = errors.AppendField(errs, "Wait", errors.ErrInput)
	}
	return errs
}

// AcceptMsg completes a governance handoff. It must be signed by the
// proposed address.
type AcceptMsg struct {
	Namespace string `json:"namespace"`
}

var _ nexus.Msg = (*AcceptMsg)(nil)

func (AcceptMsg) Path() string {
	return pathAcceptMsg
}

func (m *AcceptMsg) Validate() error {
	if !isNamespace(m.Namespace) {
		return errors.Field("Namespace", errors.ErrInput, "invalid namespace %q", m.Namespace)
	}
	return nil
}
