package domain

import "fmt"

// Execute applies ins to ws. It either applies fully and returns nil, or
// returns an error with ws unchanged.
//
// Registering an asset for an account its domain does not hold is a broken
// invariant: Execute panics with an error matching IsPreconditionViolated.
func Execute(ins Instruction, ws WorldState) error {
	switch v := ins.(type) {
	case DomainInstruction:
		return executeDomain(v, ws)
	case nil:
		return NewValidationError("instruction", "missing")
	default:
		return &DomainError{Base: ErrInvalidInput, Message: fmt.Sprintf("unsupported instruction %T", ins)}
	}
}

func executeDomain(ins DomainInstruction, ws WorldState) error {
	switch v := ins.(type) {
	case RegisterAccount:
		return registerAccount(v.Register(), ws)
	case RegisterAsset:
		return registerAsset(v.Register(), ws)
	default:
		return &DomainError{Base: ErrInvalidInput, Message: fmt.Sprintf("unsupported domain instruction %T", ins)}
	}
}

func registerAccount(r Register[Domain, Name, Account], ws WorldState) error {
	d, ok := ws.Domain(r.DestinationID)
	if !ok {
		return NewNotFoundError(fmt.Sprintf("domain %s", r.DestinationID))
	}
	if _, exists := d.accounts[r.Object.ID]; exists {
		return NewAlreadyExistsError(fmt.Sprintf("domain %s already contains an account with id %s", d.name, r.Object.ID))
	}
	acc := r.Object.Clone()
	d.accounts[acc.ID] = &acc
	return nil
}

func registerAsset(r Register[Domain, Name, Asset], ws WorldState) error {
	d, ok := ws.Domain(r.DestinationID)
	if !ok {
		return NewNotFoundError(fmt.Sprintf("domain %s", r.DestinationID))
	}
	owner := r.Object.ID.AccountID()
	acc, ok := d.accounts[owner]
	if !ok {
		panic(NewPreconditionError(fmt.Sprintf("failed to find account %s in domain %s", owner, d.name)))
	}
	if acc.Assets == nil {
		acc.Assets = make(map[AssetID]Asset)
	}
	acc.Assets[r.Object.ID] = r.Object
	return nil
}
