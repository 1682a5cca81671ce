package feed

import (
	"errors"
	"fmt"
	"strings"

	"greenbutton/internal/domain"
	"greenbutton/internal/enum"
	"greenbutton/internal/espi"
)

// ErrMissingServiceKind is returned by the Reject policy
var ErrMissingServiceKind = errors.New("usage point has no service kind")

// ServicePolicy decides the service kind of a usage point whose feed omits it.
// It runs after the usage point's meter readings are built and may adjust
// their reading types.
type ServicePolicy interface {
	Resolve(up *domain.UsagePoint) error
}

// PolicyFunc adapts a function to ServicePolicy
type PolicyFunc func(up *domain.UsagePoint) error

func (f PolicyFunc) Resolve(up *domain.UsagePoint) error {
	return f(up)
}

// Policy names accepted by PolicyByName
const (
	PolicyAssumeGas   = "assume-gas"
	PolicyReject      = "reject"
	PolicyKeepMissing = "missing"
)

// AssumeGas treats the usage point as natural gas metered in thousandths of a
// therm, which is how the providers that omit the service kind publish it
type AssumeGas struct{}

func (AssumeGas) Resolve(up *domain.UsagePoint) error {
	up.ServiceKind = domain.ServiceGas
	for _, mr := range up.MeterReadings {
		if mr.ReadingType == nil {
			mr.ReadingType = &espi.ReadingType{}
			mr.Patch()
		}
		mr.ReadingType.UOM = enum.Wire(espi.UnitSymbolTherm)
		mr.ReadingType.PowerOfTenMultiplier = enum.Wire(espi.UnitMultiplierMilli)
		if err := mr.ComputeMultipliers(); err != nil {
			return err
		}
	}
	return nil
}

// Reject fails the build
type Reject struct{}

func (Reject) Resolve(up *domain.UsagePoint) error {
	return fmt.Errorf("%w: %s", ErrMissingServiceKind, up.URI)
}

// KeepMissing records the service kind as MISSING and leaves readings untouched
type KeepMissing struct{}

func (KeepMissing) Resolve(up *domain.UsagePoint) error {
	up.ServiceKind = domain.ServiceMissing
	return nil
}

// PolicyByName returns the policy registered under name. An empty name selects
// AssumeGas.
func PolicyByName(name string) (ServicePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyAssumeGas:
		return AssumeGas{}, nil
	case PolicyReject:
		return Reject{}, nil
	case PolicyKeepMissing:
		return KeepMissing{}, nil
	}
	return nil, fmt.Errorf("unknown service policy %q (want %s, %s or %s)",
		name, PolicyAssumeGas, PolicyReject, PolicyKeepMissing)
}
