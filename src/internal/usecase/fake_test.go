package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"customer-service/src/internal/entity"
	"customer-service/src/internal/repository"
)

// memStore is an in-memory stand-in for the sql repositories. Every operation is
// atomic under mu; WithinTransaction restores a snapshot when fn fails.
type memStore struct {
	mu        sync.Mutex
	customers map[int64]*entity.Customer
	wallets   map[int64]*entity.Wallet
	entries   []entity.WalletTransaction
	sources   map[string]*entity.Source
	audits    []entity.TokenAuditLog
	nextID    int64

	failSerials  int
	failReferral error
}

func newMemStore() *memStore {
	s := &memStore{
		customers: map[int64]*entity.Customer{},
		wallets:   map[int64]*entity.Wallet{},
		sources:   map[string]*entity.Source{},
	}
	for i, p := range []string{"T", "S", "M", "W", "A", "U"} {
		s.sources[p] = &entity.Source{ID: int64(i + 1), Name: p, Prefix: p, IsActive: true}
	}
	return s
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

type snapshot struct {
	customers map[int64]entity.Customer
	wallets   map[int64]entity.Wallet
	entries   []entity.WalletTransaction
}

func (s *memStore) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		customers: map[int64]entity.Customer{},
		wallets:   map[int64]entity.Wallet{},
		entries:   append([]entity.WalletTransaction(nil), s.entries...),
	}
	for k, v := range s.customers {
		snap.customers[k] = *v
	}
	for k, v := range s.wallets {
		snap.wallets[k] = *v
	}
	return snap
}

func (s *memStore) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = map[int64]*entity.Customer{}
	for k, v := range snap.customers {
		v := v
		s.customers[k] = &v
	}
	s.wallets = map[int64]*entity.Wallet{}
	for k, v := range snap.wallets {
		v := v
		s.wallets[k] = &v
	}
	s.entries = snap.entries
}

type memTx struct{ *memStore }

func (t memTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := t.snapshot()
	if err := fn(ctx); err != nil {
		t.restore(snap)
		return err
	}
	return nil
}

type memCustomers struct{ *memStore }

func (s memCustomers) Create(_ context.Context, c *entity.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSerials > 0 {
		s.failSerials--
		return repository.ErrDuplicateSerial
	}
	for _, existing := range s.customers {
		if existing.Phone == c.Phone {
			return repository.ErrDuplicatePhone
		}
		if existing.Serial == c.Serial {
			return repository.ErrDuplicateSerial
		}
	}
	c.ID = s.id()
	stored := *c
	s.customers[c.ID] = &stored
	return nil
}

func (s memCustomers) find(match func(*entity.Customer) bool) (*entity.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.customers {
		if match(c) {
			found := *c
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s memCustomers) FindByID(_ context.Context, id int64) (*entity.Customer, error) {
	return s.find(func(c *entity.Customer) bool { return c.ID == id })
}

func (s memCustomers) FindBySerial(_ context.Context, serial string) (*entity.Customer, error) {
	return s.find(func(c *entity.Customer) bool { return c.Serial == serial })
}

func (s memCustomers) FindByPhone(_ context.Context, phone string) (*entity.Customer, error) {
	return s.find(func(c *entity.Customer) bool { return c.Phone == phone })
}

func (s memCustomers) ExistsPhone(ctx context.Context, phone string) (bool, error) {
	_, err := s.FindByPhone(ctx, phone)
	return err == nil, nil
}

func (s memCustomers) update(id int64, fn func(*entity.Customer)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(c)
	return nil
}

func (s memCustomers) ExpireTrial(_ context.Context, id int64, now time.Time) (bool, error) {
	changed := false
	err := s.update(id, func(c *entity.Customer) {
		if c.IsTrialActive && c.TrialExpiresAt.Before(now) {
			c.IsTrialActive = false
			changed = true
		}
	})
	return changed, err
}

func (s memCustomers) UpdatePinHash(_ context.Context, id int64, pinHash string, now time.Time) error {
	return s.update(id, func(c *entity.Customer) { c.PinHash = pinHash; c.UpdatedAt = now })
}

func (s memCustomers) UpdateName(_ context.Context, id int64, name string, now time.Time) error {
	return s.update(id, func(c *entity.Customer) { c.Name = name; c.UpdatedAt = now })
}

func (s memCustomers) Deactivate(_ context.Context, id int64, now time.Time) error {
	return s.update(id, func(c *entity.Customer) { c.IsActive = false; c.UpdatedAt = now })
}

func (s memCustomers) AddReferralReward(_ context.Context, id int64, amount int64, now time.Time) error {
	if s.failReferral != nil {
		return s.failReferral
	}
	return s.update(id, func(c *entity.Customer) {
		c.TotalReferrals++
		c.ReferralEarnings += amount
		c.UpdatedAt = now
	})
}

func (s memCustomers) ListReferred(_ context.Context, referrerID int64) ([]entity.ReferredCustomer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := []entity.ReferredCustomer{}
	for _, c := range s.customers {
		if c.ReferrerID.Valid && c.ReferrerID.Int64 == referrerID {
			res = append(res, entity.ReferredCustomer{ID: c.ID, Name: c.Name, Serial: c.Serial, CreatedAt: c.CreatedAt})
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID > res[j].ID })
	return res, nil
}

type memWallets struct{ *memStore }

func (s memWallets) Create(_ context.Context, customerID int64, now time.Time) (*entity.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := &entity.Wallet{ID: s.id(), CustomerID: customerID, CreatedAt: now, UpdatedAt: now}
	s.wallets[customerID] = w
	out := *w
	return &out, nil
}

func (s memWallets) FindByCustomerID(_ context.Context, customerID int64) (*entity.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wallets[customerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *w
	return &out, nil
}

func (s memWallets) appendEntry(m entity.LedgerMutation, signed, balance int64, now time.Time) *entity.WalletTransaction {
	id := s.id()
	e := entity.WalletTransaction{
		ID:           id,
		ReferenceID:  fmt.Sprintf("ref-%d", id),
		CustomerID:   m.CustomerID,
		Type:         m.Type,
		Amount:       signed,
		BalanceAfter: balance,
		Description:  m.Description,
		SourceID:     m.SourceID,
		CreatedAt:    now,
	}
	s.entries = append(s.entries, e)
	return &e
}

func (s memWallets) Credit(_ context.Context, m entity.LedgerMutation, now time.Time) (*entity.WalletTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wallets[m.CustomerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	w.Balance += m.Amount
	if m.Type.Deposit() {
		w.TotalDeposited += m.Amount
	} else {
		w.TotalRewarded += m.Amount
	}
	w.UpdatedAt = now
	return s.appendEntry(m, m.Amount, w.Balance, now), nil
}

func (s memWallets) Debit(_ context.Context, m entity.LedgerMutation, now time.Time) (*entity.WalletTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wallets[m.CustomerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if w.Balance < m.Amount {
		return nil, repository.ErrInsufficientFunds
	}
	w.Balance -= m.Amount
	w.TotalSpent += m.Amount
	w.UpdatedAt = now
	return s.appendEntry(m, -m.Amount, w.Balance, now), nil
}

func (s memWallets) History(_ context.Context, customerID int64, limit, offset int) ([]entity.WalletTransaction, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var mine []entity.WalletTransaction
	for _, e := range s.entries {
		if e.CustomerID == customerID {
			mine = append(mine, e)
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		if !mine[i].CreatedAt.Equal(mine[j].CreatedAt) {
			return mine[i].CreatedAt.After(mine[j].CreatedAt)
		}
		return mine[i].ID > mine[j].ID
	})
	total := int64(len(mine))
	if offset >= len(mine) {
		return []entity.WalletTransaction{}, total, nil
	}
	end := offset + limit
	if end > len(mine) {
		end = len(mine)
	}
	return mine[offset:end], total, nil
}

func (s *memStore) entriesFor(customerID int64) []entity.WalletTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.WalletTransaction
	for _, e := range s.entries {
		if e.CustomerID == customerID {
			out = append(out, e)
		}
	}
	return out
}

type memSources struct{ *memStore }

func (s memSources) FindByPrefix(_ context.Context, prefix string) (*entity.Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, ok := s.sources[prefix]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *src
	return &out, nil
}

type memAudits struct{ *memStore }

func (s memAudits) Create(_ context.Context, l *entity.TokenAuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = s.id()
	s.audits = append(s.audits, *l)
	return nil
}

func (s *memStore) auditActions(customerID int64) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, a := range s.audits {
		if a.CustomerID == customerID {
			out = append(out, a.Action)
		}
	}
	return out
}

type memStats struct{ *memStore }

func (s memStats) SourceStats(_ context.Context) ([]entity.SourceStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.SourceStat
	for _, src := range s.sources {
		out = append(out, entity.SourceStat{SourceID: src.ID, Name: src.Name, Prefix: src.Prefix})
	}
	return out, nil
}

func (s memStats) Dashboard(_ context.Context, since time.Time) (*entity.DashboardStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stat := &entity.DashboardStat{TotalTransactions: int64(len(s.entries))}
	for _, c := range s.customers {
		stat.TotalCustomers++
		if c.IsActive {
			stat.ActiveCustomers++
		}
		if !c.CreatedAt.Before(since) {
			stat.RegistrationsLastDay++
		}
	}
	for _, w := range s.wallets {
		stat.TotalBalance += w.Balance
	}
	return stat, nil
}

// clock is a settable time source shared by every usecase under test.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
