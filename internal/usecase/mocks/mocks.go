package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
// Without Func overrides it behaves like a small map-backed store.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[int64]*domain.Account
	nextID   int64

	CreateFunc            func(ctx context.Context, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, id int64) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []int64) ([]*domain.Account, error)
	CreditFunc            func(ctx context.Context, tx usecase.Transaction, id int64, amount decimal.Decimal, at time.Time) (decimal.Decimal, error)
	DebitFunc             func(ctx context.Context, tx usecase.Transaction, id int64, amount decimal.Decimal, at time.Time) (decimal.Decimal, error)
	AdjustFunc            func(ctx context.Context, tx usecase.Transaction, id int64, delta decimal.Decimal, at time.Time) (*domain.Account, error)
	DeleteFunc            func(ctx context.Context, tx usecase.Transaction, id int64) error
	ListFunc              func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	ListByOwnerFunc       func(ctx context.Context, ownerID int64) ([]*domain.Account, error)

	// Calls records Credit/Debit calls as signed postings, in order.
	Calls []domain.Posting
}

func NewMockAccountRepository(accounts ...*domain.Account) *MockAccountRepository {
	m := &MockAccountRepository{
		accounts: make(map[int64]*domain.Account),
	}
	for _, a := range accounts {
		m.accounts[a.ID] = a
		if a.ID > m.nextID {
			m.nextID = a.ID
		}
	}
	return m
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	account.ID = m.nextID
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []int64) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) Credit(ctx context.Context, tx usecase.Transaction, id int64, amount decimal.Decimal, at time.Time) (decimal.Decimal, error) {
	if m.CreditFunc != nil {
		return m.CreditFunc(ctx, tx, id, amount, at)
	}
	return m.apply(id, amount)
}

func (m *MockAccountRepository) Debit(ctx context.Context, tx usecase.Transaction, id int64, amount decimal.Decimal, at time.Time) (decimal.Decimal, error) {
	if m.DebitFunc != nil {
		return m.DebitFunc(ctx, tx, id, amount, at)
	}
	return m.apply(id, amount.Neg())
}

func (m *MockAccountRepository) apply(id int64, delta decimal.Decimal) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, domain.Posting{AccountID: id, Amount: delta})
	acc, ok := m.accounts[id]
	if !ok {
		return decimal.Zero, domain.ErrAccountNotFound
	}
	acc.Balance = acc.Balance.Add(delta)
	acc.Version++
	return acc.Balance, nil
}

func (m *MockAccountRepository) Adjust(ctx context.Context, tx usecase.Transaction, id int64, delta decimal.Decimal, at time.Time) (*domain.Account, error) {
	if m.AdjustFunc != nil {
		return m.AdjustFunc(ctx, tx, id, delta, at)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	acc.Balance = acc.Balance.Add(delta)
	acc.Adjustments = acc.Adjustments.Add(delta)
	acc.Version++
	return acc, nil
}

func (m *MockAccountRepository) Delete(ctx context.Context, tx usecase.Transaction, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return m.sorted(func(*domain.Account) bool { return true }), nil
}

func (m *MockAccountRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Account, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	return m.sorted(func(a *domain.Account) bool { return a.OwnerID == ownerID }), nil
}

func (m *MockAccountRepository) sorted(keep func(*domain.Account) bool) []*domain.Account {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, a := range m.accounts {
		if keep(a) {
			accounts = append(accounts, a)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts
}

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries map[int64]*domain.Entry
	nextID  int64

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	GetByIDFunc          func(ctx context.Context, id int64) (*domain.Entry, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Entry, error)
	UpdateFunc           func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	DeleteFunc           func(ctx context.Context, tx usecase.Transaction, id int64) error
	ListByMakerFunc      func(ctx context.Context, makerID int64) ([]*domain.Entry, error)
}

func NewMockEntryRepository(entries ...*domain.Entry) *MockEntryRepository {
	m := &MockEntryRepository{
		entries: make(map[int64]*domain.Entry),
	}
	for _, e := range entries {
		m.entries[e.ID] = e
		if e.ID > m.nextID {
			m.nextID = e.ID
		}
	}
	return m
}

func (m *MockEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	entry.ID = m.nextID
	stored := *entry
	m.entries[entry.ID] = &stored
	return nil
}

func (m *MockEntryRepository) GetByID(ctx context.Context, id int64) (*domain.Entry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		out := *e
		return &out, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockEntryRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Entry, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockEntryRepository) Update(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[entry.ID]; !ok {
		return domain.ErrEntryNotFound
	}
	stored := *entry
	m.entries[entry.ID] = &stored
	return nil
}

func (m *MockEntryRepository) Delete(ctx context.Context, tx usecase.Transaction, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return domain.ErrEntryNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *MockEntryRepository) ListByMaker(ctx context.Context, makerID int64) ([]*domain.Entry, error) {
	if m.ListByMakerFunc != nil {
		return m.ListByMakerFunc(ctx, makerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Entry
	for _, e := range m.entries {
		if e.MakerID == makerID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[int64]*domain.Transaction
	nextID       int64

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Transaction, error)
	UpdateFunc           func(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error
	DeleteFunc           func(ctx context.Context, tx usecase.Transaction, id int64) error
}

func NewMockTransactionRepository(transactions ...*domain.Transaction) *MockTransactionRepository {
	m := &MockTransactionRepository{
		transactions: make(map[int64]*domain.Transaction),
	}
	for _, t := range transactions {
		m.transactions[t.ID] = t
		if t.ID > m.nextID {
			m.nextID = t.ID
		}
	}
	return m
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	t.ID = m.nextID
	stored := *t
	m.transactions[t.ID] = &stored
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transactions[id]; ok {
		out := *t
		return &out, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Transaction, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *t
	m.transactions[t.ID] = &stored
	return nil
}

func (m *MockTransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.transactions, id)
	return nil
}

func (m *MockTransactionRepository) ListByMaker(ctx context.Context, makerID int64) ([]*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, t := range m.transactions {
		if t.MakerID == makerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mu            sync.RWMutex
	categories    map[int64]*domain.Category
	subcategories map[int64]*domain.Subcategory
	nextID        int64

	ListCategoriesFunc func(ctx context.Context, relatedTo domain.RelatedTo) ([]*domain.Category, error)
	DeleteCategoryFunc func(ctx context.Context, id int64) error

	// ListCategoriesCalls counts repository reads, for cache tests.
	ListCategoriesCalls int
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		categories:    make(map[int64]*domain.Category),
		subcategories: make(map[int64]*domain.Subcategory),
	}
}

// AddCategory seeds a category and returns it.
func (m *MockCategoryRepository) AddCategory(name string, relatedTo domain.RelatedTo) *domain.Category {
	c := &domain.Category{Name: name, RelatedTo: relatedTo}
	_ = m.CreateCategory(context.Background(), c)
	return c
}

// AddSubcategory seeds a subcategory and returns it.
func (m *MockCategoryRepository) AddSubcategory(name string, relatedTo domain.RelatedTo) *domain.Subcategory {
	s := &domain.Subcategory{Name: name, RelatedTo: relatedTo}
	_ = m.CreateSubcategory(context.Background(), s)
	return s
}

func (m *MockCategoryRepository) CreateCategory(ctx context.Context, c *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c.ID = m.nextID
	m.categories[c.ID] = c
	return nil
}

func (m *MockCategoryRepository) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.categories[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, relatedTo domain.RelatedTo) ([]*domain.Category, error) {
	m.mu.Lock()
	m.ListCategoriesCalls++
	m.mu.Unlock()
	if m.ListCategoriesFunc != nil {
		return m.ListCategoriesFunc(ctx, relatedTo)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*domain.Category{}
	for _, c := range m.categories {
		if relatedTo == "" || c.RelatedTo == relatedTo {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	if m.DeleteCategoryFunc != nil {
		return m.DeleteCategoryFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *MockCategoryRepository) CreateSubcategory(ctx context.Context, s *domain.Subcategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	s.ID = m.nextID
	m.subcategories[s.ID] = s
	return nil
}

func (m *MockCategoryRepository) GetSubcategory(ctx context.Context, id int64) (*domain.Subcategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.subcategories[id]; ok {
		return s, nil
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *MockCategoryRepository) ListSubcategories(ctx context.Context, relatedTo domain.RelatedTo) ([]*domain.Subcategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*domain.Subcategory{}
	for _, s := range m.subcategories {
		if relatedTo == "" || s.RelatedTo == relatedTo {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockCategoryRepository) DeleteSubcategory(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subcategories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.subcategories, id)
	return nil
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu     sync.RWMutex
	users  map[int64]*domain.User
	nextID int64

	CreateFunc func(ctx context.Context, user *domain.User) error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[int64]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.User
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	AccountSnapshotFunc  func(ctx context.Context, accountID int64) (usecase.AccountSnapshot, error)
	CheckConsistencyFunc func(ctx context.Context) (decimal.Decimal, decimal.Decimal, error)
}

func (m *MockLedgerRepository) AccountSnapshot(ctx context.Context, accountID int64) (usecase.AccountSnapshot, error) {
	if m.AccountSnapshotFunc != nil {
		return m.AccountSnapshotFunc(ctx, accountID)
	}
	return usecase.AccountSnapshot{}, nil
}

func (m *MockLedgerRepository) CheckConsistency(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	if m.CheckConsistencyFunc != nil {
		return m.CheckConsistencyFunc(ctx)
	}
	return decimal.Zero, decimal.Zero, nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	mu        sync.Mutex
	Commits   int
	Rollbacks int
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{manager: m}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	manager *MockTransactionManager
	done    bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	if m.manager != nil && !m.done {
		m.manager.mu.Lock()
		m.manager.Commits++
		m.manager.mu.Unlock()
	}
	m.done = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	if m.manager != nil && !m.done {
		m.manager.mu.Lock()
		m.manager.Rollbacks++
		m.manager.mu.Unlock()
	}
	m.done = true
	return nil
}

// MockCache is a map-backed implementation of Cache.
type MockCache struct {
	mu   sync.Mutex
	data map[string][]byte

	GetFunc func(ctx context.Context, key string) ([]byte, error)
}

func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, usecase.ErrCacheMiss
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Has reports whether key is cached.
func (m *MockCache) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Stored returns the value held for key.
func (m *MockIdempotencyStore) Stored(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}
