package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"isiledger/src/core/domain"
	"isiledger/src/core/ports"
	"isiledger/src/core/wsv"
)

// LedgerService owns the world state view. It serializes submissions,
// persists the destination domain after every applied instruction and
// reports outcomes to the journal and event stream.
type LedgerService struct {
	mu      sync.RWMutex
	view    *wsv.View
	repo    ports.WorldStateRepository
	hasher  ports.Hasher
	journal ports.Journal
	events  ports.EventPublisher
	log     *slog.Logger
	now     func() time.Time
}

// NewLedgerService creates a LedgerService. journal and events may be nil.
func NewLedgerService(
	repo ports.WorldStateRepository,
	hasher ports.Hasher,
	journal ports.Journal,
	events ports.EventPublisher,
	log *slog.Logger,
) *LedgerService {
	return &LedgerService{
		view:    wsv.New(),
		repo:    repo,
		hasher:  hasher,
		journal: journal,
		events:  events,
		log:     log,
		now:     time.Now,
	}
}

// Receipt identifies an applied instruction.
type Receipt struct {
	Hash        string
	Kind        domain.Kind
	Destination domain.Name
}

// Bootstrap loads persisted domains into the view. When storage is empty and
// a genesis is supplied, it is applied to a scratch view first and persisted
// only if every step succeeds, so a broken genesis leaves storage empty.
func (s *LedgerService) Bootstrap(ctx context.Context, genesis *ports.Genesis) error {
	domains, err := s.repo.LoadDomains(ctx)
	if err != nil {
		return fmt.Errorf("failed to load world state: %w", err)
	}

	s.mu.Lock()
	for _, d := range domains {
		s.view.Put(d)
	}
	loaded := s.view.Len()
	s.mu.Unlock()

	if loaded > 0 || genesis == nil {
		s.log.Info("world state loaded", "domains", loaded)
		return nil
	}
	return s.applyGenesis(ctx, genesis)
}

func (s *LedgerService) applyGenesis(ctx context.Context, genesis *ports.Genesis) error {
	scratch := wsv.New()
	for _, name := range genesis.Domains {
		n, err := domain.ParseName(name.String())
		if err != nil {
			return fmt.Errorf("genesis domain %q: %w", name, err)
		}
		if _, err := scratch.AddDomain(n); err != nil {
			return fmt.Errorf("genesis domain %s: %w", n, err)
		}
	}

	receipts := make([]*Receipt, 0, len(genesis.Instructions))
	for i, ins := range genesis.Instructions {
		receipt, err := s.receipt(ins)
		if err != nil {
			return fmt.Errorf("genesis instruction %d: %w", i, err)
		}
		if err := executeRecovered(ins, scratch); err != nil {
			return fmt.Errorf("genesis instruction %d: %w", i, err)
		}
		receipts = append(receipts, receipt)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	names := scratch.Names()
	for _, name := range names {
		d, _ := scratch.Domain(name)
		if err := s.repo.SaveDomain(ctx, d); err != nil {
			return fmt.Errorf("failed to persist genesis domain %s: %w", name, err)
		}
	}
	for _, name := range names {
		d, _ := scratch.Domain(name)
		s.view.Put(d)
	}
	for _, r := range receipts {
		s.record(r, nil)
		s.publish(r)
	}

	s.log.Info("genesis applied",
		"domains", len(names),
		"instructions", len(receipts),
	)
	return nil
}

// executeRecovered runs ins and turns a precondition panic into its error.
func executeRecovered(ins domain.Instruction, ws domain.WorldState) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok || !domain.IsPreconditionViolated(e) {
				panic(r)
			}
			err = e
		}
	}()
	return domain.Execute(ins, ws)
}

// CreateDomain registers a new empty domain.
func (s *LedgerService) CreateDomain(ctx context.Context, name string) (*domain.Domain, error) {
	n, err := domain.ParseName(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.view.AddDomain(n)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveDomain(ctx, d); err != nil {
		s.view.Remove(n)
		return nil, fmt.Errorf("failed to persist domain %s: %w", n, err)
	}

	s.log.Info("domain created", "domain", n)
	return d.Clone(), nil
}

// Submit executes ins against the world state.
//
// A rejected instruction leaves the state unchanged. If persisting the
// result fails the destination domain is rolled back. A precondition panic
// from the executor is journaled and re-raised.
func (s *LedgerService) Submit(ctx context.Context, ins domain.Instruction) (*Receipt, error) {
	receipt, err := s.receipt(ins)
	if err != nil {
		return nil, err
	}
	hash, dest := receipt.Hash, receipt.Destination

	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.record(receipt, fmt.Errorf("%v", r))
			panic(r)
		}
	}()

	var snapshot *domain.Domain
	if d, ok := s.view.Domain(dest); ok {
		snapshot = d.Clone()
	}

	if err := domain.Execute(ins, s.view); err != nil {
		s.log.Warn("instruction rejected", "hash", hash, "kind", receipt.Kind.String(), "error", err)
		s.record(receipt, err)
		return nil, err
	}

	if d, ok := s.view.Domain(dest); ok {
		if err := s.repo.SaveDomain(ctx, d); err != nil {
			s.view.Put(snapshot)
			err = fmt.Errorf("failed to persist domain %s: %w", dest, err)
			s.log.Error("instruction rolled back", "hash", hash, "error", err)
			s.record(receipt, err)
			return nil, err
		}
	}

	s.log.Info("instruction applied", "hash", hash, "kind", receipt.Kind.String(), "domain", dest)
	s.record(receipt, nil)
	s.publish(receipt)
	return receipt, nil
}

// Domain returns a copy of the named domain.
func (s *LedgerService) Domain(_ context.Context, name string) (*domain.Domain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.view.Domain(domain.Name(name))
	if !ok {
		return nil, domain.NewNotFoundError(fmt.Sprintf("domain %s", name))
	}
	return d.Clone(), nil
}

// Domains returns copies of every domain ordered by name.
func (s *LedgerService) Domains(_ context.Context) []*domain.Domain {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := s.view.Names()
	out := make([]*domain.Domain, 0, len(names))
	for _, name := range names {
		d, _ := s.view.Domain(name)
		out = append(out, d.Clone())
	}
	return out
}

// Account returns a copy of one account in the named domain.
func (s *LedgerService) Account(ctx context.Context, domainName, accountID string) (domain.Account, error) {
	id, err := domain.ParseAccountID(accountID)
	if err != nil {
		return domain.Account{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.view.Domain(domain.Name(domainName))
	if !ok {
		return domain.Account{}, domain.NewNotFoundError(fmt.Sprintf("domain %s", domainName))
	}
	acc, ok := d.Account(id)
	if !ok {
		return domain.Account{}, domain.NewNotFoundError(fmt.Sprintf("account %s in domain %s", id, domainName))
	}
	return acc, nil
}

func (s *LedgerService) receipt(ins domain.Instruction) (*Receipt, error) {
	if ins == nil {
		return nil, domain.NewValidationError("instruction", "missing")
	}
	hash, err := s.hasher.Hash(ins)
	if err != nil {
		return nil, err
	}
	dest, _ := domain.Destination(ins)
	return &Receipt{Hash: hash, Kind: ins.Kind(), Destination: dest}, nil
}

func (s *LedgerService) publish(r *Receipt) {
	if s.events == nil {
		return
	}
	s.events.Publish(ports.Event{
		Hash:        r.Hash,
		Kind:        r.Kind.String(),
		Destination: r.Destination.String(),
		At:          s.now().UTC(),
	})
}

func (s *LedgerService) record(r *Receipt, execErr error) {
	if s.journal == nil {
		return
	}
	entry := ports.JournalEntry{
		Hash:        r.Hash,
		Kind:        r.Kind.String(),
		Destination: r.Destination.String(),
		Status:      ports.StatusApplied,
		At:          s.now().UTC(),
	}
	if execErr != nil {
		entry.Status = ports.StatusRejected
		entry.Error = execErr.Error()
	}
	if err := s.journal.Append(entry); err != nil {
		s.log.Error("failed to journal instruction", "hash", r.Hash, "error", err)
	}
}
