package ledger

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/julianstephens/norton/internal/models"
	"github.com/julianstephens/norton/internal/utils"
)

var ErrNotFound = errors.New("transaction not found")

// Labeler returns the display label of a category. It supplies the default
// description of a transaction entered without one.
type Labeler func(models.Category) string

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDs(next func() string) Option {
	return func(s *Store) { s.newID = next }
}

func WithLabeler(l Labeler) Option {
	return func(s *Store) { s.label = l }
}

// WithOnChange registers a hook that receives a snapshot after every
// mutation.
func WithOnChange(fn func([]models.Transaction) error) Option {
	return func(s *Store) { s.onChange = fn }
}

// Store owns the transaction collection, most recent first.
type Store struct {
	mu       sync.Mutex
	txs      []models.Transaction
	now      func() time.Time
	newID    func() string
	label    Labeler
	onChange func([]models.Transaction) error
}

func New(txs []models.Transaction, opts ...Option) *Store {
	s := &Store{
		txs:   append([]models.Transaction{}, txs...),
		now:   time.Now,
		newID: uuid.NewString,
		label: func(c models.Category) string { return string(c) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetLabeler swaps the category labeler, e.g. after a language change.
func (s *Store) SetLabeler(l Labeler) {
	s.mu.Lock()
	s.label = l
	s.mu.Unlock()
}

func (s *Store) normalize(amount float64, typ models.TransactionType, category models.Category, description string) (models.Transaction, error) {
	if !models.ValidAmount(amount) {
		return models.Transaction{}, models.ErrInvalidAmount
	}
	if !typ.Valid() {
		return models.Transaction{}, models.ErrInvalidType
	}

	category = models.NormalizeCategory(string(category))
	description = strings.TrimSpace(description)
	if description == "" {
		description = s.label(category)
	}
	return models.Transaction{
		Amount:      amount,
		Type:        typ,
		Category:    category,
		Description: description,
	}, nil
}

// AddTransaction records a new entry stamped with the current instant and
// prepends it. Invalid amounts or types leave the ledger untouched.
func (s *Store) AddTransaction(amount float64, typ models.TransactionType, category models.Category, description string) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.normalize(amount, typ, category, description)
	if err != nil {
		return models.Transaction{}, err
	}
	tx.ID = s.newID()
	tx.Date = s.now().UnixMilli()

	s.txs = append([]models.Transaction{tx}, s.txs...)
	return tx, s.changed()
}

// EditTransaction replaces every field except ID and Date.
func (s *Store) EditTransaction(id string, amount float64, typ models.TransactionType, category models.Category, description string) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.normalize(amount, typ, category, description)
	if err != nil {
		return models.Transaction{}, err
	}

	i := s.index(id)
	if i < 0 {
		return models.Transaction{}, ErrNotFound
	}
	tx.ID = s.txs[i].ID
	tx.Date = s.txs[i].Date
	s.txs[i] = tx
	return tx, s.changed()
}

func (s *Store) DeleteTransaction(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	s.txs = append(s.txs[:i:i], s.txs[i+1:]...)
	return true, s.changed()
}

func (s *Store) Get(id string) (models.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return models.Transaction{}, false
	}
	return s.txs[i], true
}

// Transactions returns a copy of the collection in storage order.
func (s *Store) Transactions() []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Transaction{}, s.txs...)
}

func (s *Store) Replace(txs []models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txs = append([]models.Transaction{}, txs...)
	return s.changed()
}

func (s *Store) index(id string) int {
	for i := range s.txs {
		if s.txs[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) changed() error {
	if s.onChange == nil {
		return nil
	}
	return s.onChange(append([]models.Transaction{}, s.txs...))
}

// TotalByType sums the amounts of every transaction of typ.
func TotalByType(typ models.TransactionType, txs []models.Transaction) float64 {
	sum := decimal.Zero
	for _, tx := range txs {
		if tx.Type == typ {
			sum = sum.Add(decimal.NewFromFloat(tx.Amount))
		}
	}
	return sum.InexactFloat64()
}

// TotalForMonth sums the transactions of typ whose instant falls in the
// given local calendar month.
func TotalForMonth(txs []models.Transaction, typ models.TransactionType, year int, month time.Month) float64 {
	sum := decimal.Zero
	for _, tx := range txs {
		if tx.Type == typ && utils.InMonth(tx.Date, year, month) {
			sum = sum.Add(decimal.NewFromFloat(tx.Amount))
		}
	}
	return sum.InexactFloat64()
}

// SortForDisplay orders transactions newest first, stable on ties.
func SortForDisplay(txs []models.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date > txs[j].Date
	})
}
