// Package domain contains the ledger entity model and its instruction set.
//
// This package defines:
//   - Identifiers: Name, AccountID, AssetDefinitionID, AssetID
//   - Entities: Domain, Account, Asset
//   - Register, the generic attach-object-to-destination primitive
//   - Instruction, the closed and serializable union Register converts into
//   - Execute, the dispatcher that applies an Instruction to a WorldState
//   - Domain errors used across the application
//
// Rules for this package:
//   - No external dependencies except the standard library
//   - No infrastructure concerns (database, HTTP, etc.)
//   - A Domain is only mutated through instruction execution
//
// Example:
//
//	wonderland := domain.NewDomain("wonderland")
//	alice := domain.NewAccount(domain.AccountID{Name: "alice", Domain: "wonderland"})
//
//	ins, err := domain.NewRegister[domain.Domain](alice, wonderland.Name()).Into()
//	if err != nil {
//	    return err
//	}
//	if err := domain.Execute(ins, view); err != nil {
//	    // domain.IsNotFound(err), domain.IsAlreadyExists(err)
//	}
package domain
