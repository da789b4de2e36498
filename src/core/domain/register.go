package domain

import "fmt"

// Register attaches Object to the destination entity of type D identified by
// DestinationID. It is transient: Into converts it to an Instruction, which
// is what gets transmitted and executed.
type Register[D Identifiable[I], I comparable, O any] struct {
	DestinationID I
	Object        O
}

// NewRegister builds a Register. D is usually the only explicit type
// argument: NewRegister[Domain](account, Name("wonderland")).
func NewRegister[D Identifiable[I], I comparable, O any](object O, destinationID I) Register[D, I, O] {
	return Register[D, I, O]{DestinationID: destinationID, Object: object}
}

// Into flattens r into its Instruction variant. Instantiations without a
// variant are rejected.
func (r Register[D, I, O]) Into() (Instruction, error) {
	switch v := any(r).(type) {
	case Register[Domain, Name, Account]:
		return RegisterAccount{DomainName: v.DestinationID, Account: v.Object}, nil
	case Register[Domain, Name, Asset]:
		return RegisterAsset{DomainName: v.DestinationID, Asset: v.Object}, nil
	}
	return nil, &DomainError{
		Base:    ErrInvalidInput,
		Message: fmt.Sprintf("no instruction registers %T", r.Object),
	}
}
