// Package testutil provides in-memory repositories for tests.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"accounting_docs_service/internal/domain/company"
	"accounting_docs_service/internal/domain/document"
	"accounting_docs_service/internal/domain/notification"
)

// Clock hands out strictly increasing timestamps.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
}

// Tick advances the clock by one second and returns the new time.
func (c *Clock) Tick() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

// Now returns the current time without advancing it.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// NotificationRepo is an in-memory notification.Repository.
// Setting Err makes every call fail with it.
type NotificationRepo struct {
	mu     sync.Mutex
	clock  *Clock
	nextID int64
	rows   map[int64]*notification.Notification
	Err    error
}

func NewNotificationRepo(clock *Clock) *NotificationRepo {
	return &NotificationRepo{clock: clock, rows: make(map[int64]*notification.Notification)}
}

func (r *NotificationRepo) Create(_ context.Context, n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.nextID++
	n.ID = r.nextID
	n.IsRead = false
	n.CreatedAt = r.clock.Tick()
	stored := *n
	r.rows[n.ID] = &stored
	return nil
}

func (r *NotificationRepo) ListForRecipient(_ context.Context, rcpt notification.Recipient) ([]*notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	list := make([]*notification.Notification, 0)
	for _, n := range r.rows {
		if n.Recipient() == rcpt {
			c := *n
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if len(list) > notification.ListLimit {
		list = list[:notification.ListLimit]
	}
	return list, nil
}

func (r *NotificationRepo) MarkRead(_ context.Context, id int64, rcpt notification.Recipient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	n, ok := r.rows[id]
	if !ok || n.Recipient() != rcpt {
		return notification.ErrNotFound
	}
	n.IsRead = true
	return nil
}

func (r *NotificationRepo) MarkAllRead(_ context.Context, rcpt notification.Recipient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, n := range r.rows {
		if n.Recipient() == rcpt {
			n.IsRead = true
		}
	}
	return nil
}

func (r *NotificationRepo) CountUnread(_ context.Context, rcpt notification.Recipient) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	count := 0
	for _, n := range r.rows {
		if n.Recipient() == rcpt && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *NotificationRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.rows[id]; !ok {
		return notification.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

// Get returns a copy of the stored row, for assertions.
func (r *NotificationRepo) Get(id int64) (notification.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.rows[id]
	if !ok {
		return notification.Notification{}, false
	}
	return *n, true
}

// All returns copies of every stored row ordered by id.
func (r *NotificationRepo) All() []notification.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]notification.Notification, 0, len(r.rows))
	for _, n := range r.rows {
		all = append(all, *n)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// CompanyRepo is an in-memory company.Repository.
type CompanyRepo struct {
	mu          sync.Mutex
	clock       *Clock
	companies   map[int64]*company.Company
	accountants map[int64]*company.Accountant
	nextCompany int64
	nextAcct    int64
}

func NewCompanyRepo(clock *Clock) *CompanyRepo {
	return &CompanyRepo{
		clock:       clock,
		companies:   make(map[int64]*company.Company),
		accountants: make(map[int64]*company.Accountant),
	}
}

func (r *CompanyRepo) CreateCompany(_ context.Context, c *company.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.companies {
		if existing.Email == c.Email {
			return company.ErrDuplicateEmail
		}
	}
	if c.AccountantID != nil {
		if _, ok := r.accountants[*c.AccountantID]; !ok {
			return company.ErrAccountantNotFound
		}
	}
	r.nextCompany++
	c.ID = r.nextCompany
	c.CreatedAt = r.clock.Tick()
	stored := *c
	r.companies[c.ID] = &stored
	return nil
}

func (r *CompanyRepo) GetCompany(_ context.Context, id int64) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return nil, company.ErrCompanyNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *CompanyRepo) ListCompanies(_ context.Context) ([]*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*company.Company, 0, len(r.companies))
	for _, c := range r.companies {
		cp := *c
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *CompanyRepo) AssignAccountant(_ context.Context, companyID, accountantID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accountants[accountantID]; !ok {
		return company.ErrAccountantNotFound
	}
	c, ok := r.companies[companyID]
	if !ok {
		return company.ErrCompanyNotFound
	}
	id := accountantID
	c.AccountantID = &id
	return nil
}

func (r *CompanyRepo) CreateAccountant(_ context.Context, a *company.Accountant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accountants {
		if existing.Email == a.Email {
			return company.ErrDuplicateEmail
		}
	}
	r.nextAcct++
	a.ID = r.nextAcct
	a.CreatedAt = r.clock.Tick()
	stored := *a
	r.accountants[a.ID] = &stored
	return nil
}

func (r *CompanyRepo) GetAccountant(_ context.Context, id int64) (*company.Accountant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accountants[id]
	if !ok {
		return nil, company.ErrAccountantNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *CompanyRepo) ListAccountants(_ context.Context) ([]*company.Accountant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*company.Accountant, 0, len(r.accountants))
	for _, a := range r.accountants {
		cp := *a
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// DocumentRepo is an in-memory document.Repository. It needs the company
// repository to resolve accountant scoping.
type DocumentRepo struct {
	mu        sync.Mutex
	clock     *Clock
	companies *CompanyRepo
	nextID    int64
	rows      map[int64]*document.Document
}

func NewDocumentRepo(clock *Clock, companies *CompanyRepo) *DocumentRepo {
	return &DocumentRepo{clock: clock, companies: companies, rows: make(map[int64]*document.Document)}
}

func (r *DocumentRepo) accountantOf(companyID int64) *int64 {
	r.companies.mu.Lock()
	defer r.companies.mu.Unlock()
	if c, ok := r.companies.companies[companyID]; ok {
		return c.AccountantID
	}
	return nil
}

func (r *DocumentRepo) Create(_ context.Context, d *document.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	d.ID = r.nextID
	d.CreatedAt = r.clock.Tick()
	stored := *d
	r.rows[d.ID] = &stored
	return nil
}

func (r *DocumentRepo) GetByID(_ context.Context, id int64) (*document.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.rows[id]
	if !ok {
		return nil, document.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *DocumentRepo) List(_ context.Context, f document.Filter) ([]*document.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*document.Document, 0)
	for _, d := range r.rows {
		if f.CompanyID != nil && d.CompanyID != *f.CompanyID {
			continue
		}
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		if f.AccountantID != nil {
			acct := r.accountantOf(d.CompanyID)
			if acct == nil || *acct != *f.AccountantID {
				continue
			}
		}
		cp := *d
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (r *DocumentRepo) Process(_ context.Context, id int64, u document.ProcessUpdate) (*document.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.rows[id]
	if !ok {
		return nil, document.ErrNotFound
	}
	if !document.CanTransition(d.Status, u.Status, !u.RequireNew) {
		return nil, document.ErrAlreadyProcessed
	}
	actor, actorType := u.ProcessedBy, u.ProcessedByType
	date := u.ProcessingDate
	d.Status = u.Status
	d.Comments = u.Comments
	d.ProcessedBy = &actor
	d.ProcessedByType = &actorType
	d.ProcessingDate = &date
	cp := *d
	return &cp, nil
}

func (r *DocumentRepo) PendingByAccountant(_ context.Context, cutoff time.Time) ([]document.PendingSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[int64]int)
	for _, d := range r.rows {
		if d.Status != document.StatusNew || !d.CreatedAt.Before(cutoff) {
			continue
		}
		if acct := r.accountantOf(d.CompanyID); acct != nil {
			counts[*acct]++
		}
	}
	out := make([]document.PendingSummary, 0, len(counts))
	for id, n := range counts {
		out = append(out, document.PendingSummary{AccountantID: id, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountantID < out[j].AccountantID })
	return out, nil
}

// SetCreatedAt overrides the creation time of a stored document.
func (r *DocumentRepo) SetCreatedAt(id int64, t time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.rows[id]; ok {
		d.CreatedAt = t
	}
}
