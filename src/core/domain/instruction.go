package domain

import "fmt"

// Kind is the wire tag of an instruction variant.
type Kind uint8

const (
	KindRegisterAccount Kind = iota + 1
	KindRegisterAsset
)

// Kinds lists every variant tag in wire order.
var Kinds = []Kind{KindRegisterAccount, KindRegisterAsset}

func (k Kind) String() string {
	switch k {
	case KindRegisterAccount:
		return "RegisterAccount"
	case KindRegisterAsset:
		return "RegisterAsset"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind resolves a variant name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, NewValidationError("kind", fmt.Sprintf("unknown instruction %q", s))
}

// WorldState is the handle instructions execute against.
type WorldState interface {
	// Domain returns the live, mutable domain stored under name.
	Domain(name Name) (*Domain, bool)
}

// Instruction is the closed union of executable mutations.
type Instruction interface {
	Kind() Kind
	Execute(ws WorldState) error
	isInstruction()
}

// DomainInstruction is the family of instructions whose destination is a
// Domain.
type DomainInstruction interface {
	Instruction
	Destination() Name
	isDomainInstruction()
}

// RegisterAccount registers Account in the domain named DomainName.
type RegisterAccount struct {
	DomainName Name
	Account    Account
}

func (RegisterAccount) Kind() Kind                    { return KindRegisterAccount }
func (i RegisterAccount) Destination() Name           { return i.DomainName }
func (i RegisterAccount) Execute(ws WorldState) error { return Execute(i, ws) }
func (RegisterAccount) isInstruction()                {}
func (RegisterAccount) isDomainInstruction()          {}

// Register recovers the generic form.
func (i RegisterAccount) Register() Register[Domain, Name, Account] {
	return NewRegister[Domain](i.Account, i.DomainName)
}

// RegisterAsset registers Asset with its owning account in the domain named
// DomainName.
type RegisterAsset struct {
	DomainName Name
	Asset      Asset
}

func (RegisterAsset) Kind() Kind                    { return KindRegisterAsset }
func (i RegisterAsset) Destination() Name           { return i.DomainName }
func (i RegisterAsset) Execute(ws WorldState) error { return Execute(i, ws) }
func (RegisterAsset) isInstruction()                {}
func (RegisterAsset) isDomainInstruction()          {}

// Register recovers the generic form.
func (i RegisterAsset) Register() Register[Domain, Name, Asset] {
	return NewRegister[Domain](i.Asset, i.DomainName)
}

// Destination returns the domain an instruction targets.
func Destination(ins Instruction) (Name, bool) {
	di, ok := ins.(DomainInstruction)
	if !ok {
		return "", false
	}
	return di.Destination(), true
}
