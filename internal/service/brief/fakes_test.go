package brief

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/briefdesk-backend/internal/domain"
	"github.com/heartmarshall/briefdesk-backend/pkg/ctxutil"
)

// store is an in-memory persistence gateway. Any operation can be made to
// fail with failOn("briefs.IncrementCommentCount", err).
type store struct {
	mu sync.Mutex

	briefs     map[uuid.UUID]*domain.Brief
	recipients map[uuid.UUID]*domain.Recipient
	comments   map[uuid.UUID]*domain.Comment
	audit      []domain.AuditEntry

	// seq orders rows by insertion and drives the fake clock.
	seq   int
	order map[uuid.UUID]int

	failures map[string]error
	calls    map[string]int
}

func newStore() *store {
	return &store{
		briefs:     make(map[uuid.UUID]*domain.Brief),
		recipients: make(map[uuid.UUID]*domain.Recipient),
		comments:   make(map[uuid.UUID]*domain.Comment),
		order:      make(map[uuid.UUID]int),
		failures:   make(map[string]error),
		calls:      make(map[string]int),
	}
}

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func (s *store) failOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

func (s *store) callCount(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// enter records a call and returns the injected failure, if any.
// Caller must hold s.mu.
func (s *store) enter(op string) error {
	s.calls[op]++
	return s.failures[op]
}

func (s *store) tick(id uuid.UUID) time.Time {
	s.seq++
	if id != uuid.Nil {
		s.order[id] = s.seq
	}
	return epoch.Add(time.Duration(s.seq) * time.Millisecond)
}

// snapshot and restore emulate transaction rollback.
type storeState struct {
	briefs     map[uuid.UUID]*domain.Brief
	recipients map[uuid.UUID]*domain.Recipient
	comments   map[uuid.UUID]*domain.Comment
	audit      []domain.AuditEntry
}

func (s *store) snapshot() storeState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := storeState{
		briefs:     make(map[uuid.UUID]*domain.Brief, len(s.briefs)),
		recipients: make(map[uuid.UUID]*domain.Recipient, len(s.recipients)),
		comments:   maps.Clone(s.comments),
		audit:      slices.Clone(s.audit),
	}
	for id, b := range s.briefs {
		cp := *b
		st.briefs[id] = &cp
	}
	for id, r := range s.recipients {
		cp := *r
		st.recipients[id] = &cp
	}
	return st
}

func (s *store) restore(st storeState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.briefs, s.recipients, s.comments, s.audit = st.briefs, st.recipients, st.comments, st.audit
}

// brief returns a copy of the stored brief or nil.
func (s *store) brief(id uuid.UUID) *domain.Brief {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.briefs[id]
	if !ok {
		return nil
	}
	cp := *b
	return &cp
}

func (s *store) liveComments(briefID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.comments {
		if c.BriefID == briefID {
			n++
		}
	}
	return n
}

func (s *store) recipientsOf(briefID uuid.UUID) []*domain.Recipient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipientsOfLocked(briefID)
}

func (s *store) recipientsOfLocked(briefID uuid.UUID) []*domain.Recipient {
	var out []*domain.Recipient
	for _, r := range s.recipients {
		if r.BriefID == briefID {
			cp := *r
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *domain.Recipient) int { return s.order[a.ID] - s.order[b.ID] })
	return out
}

func (s *store) auditActions() []domain.AuditAction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditAction, len(s.audit))
	for i, e := range s.audit {
		out[i] = e.Action
	}
	return out
}

func notFound(entity string, id uuid.UUID) error {
	return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// briefRepo
// ---------------------------------------------------------------------------

type fakeBriefs struct{ *store }

func (f fakeBriefs) GetByID(_ context.Context, id uuid.UUID) (*domain.Brief, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("briefs.GetByID"); err != nil {
		return nil, err
	}
	b, ok := f.briefs[id]
	if !ok {
		return nil, notFound("brief", id)
	}
	cp := *b
	return &cp, nil
}

func (f fakeBriefs) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Brief, error) {
	return f.GetByID(ctx, id)
}

func (f fakeBriefs) CountByOwner(_ context.Context, ownerID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("briefs.CountByOwner"); err != nil {
		return 0, err
	}
	n := 0
	for _, b := range f.briefs {
		if b.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (f fakeBriefs) List(_ context.Context, filter domain.BriefFilter) ([]*domain.Brief, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("briefs.List"); err != nil {
		return nil, 0, err
	}

	shared := func(b *domain.Brief) bool {
		if b.OwnerID == filter.PrincipalID {
			return false
		}
		for _, r := range f.recipients {
			if r.BriefID != b.ID {
				continue
			}
			if (r.RecipientID != nil && *r.RecipientID == filter.PrincipalID) ||
				strings.EqualFold(r.RecipientEmail, filter.PrincipalEmail) {
				return true
			}
		}
		return false
	}

	var matched []*domain.Brief
	for _, b := range f.briefs {
		owned := b.OwnerID == filter.PrincipalID
		var ok bool
		switch filter.Scope {
		case domain.BriefScopeOwned:
			ok = owned
		case domain.BriefScopeShared:
			ok = shared(b)
		default:
			ok = owned || shared(b)
		}
		if ok && filter.Status != nil && b.Status != *filter.Status {
			ok = false
		}
		if ok {
			cp := *b
			matched = append(matched, &cp)
		}
	}
	slices.SortFunc(matched, func(a, b *domain.Brief) int { return b.UpdatedAt.Compare(a.UpdatedAt) })

	total := len(matched)
	start := min(filter.Offset, total)
	end := min(start+filter.Limit, total)
	return matched[start:end], total, nil
}

func (f fakeBriefs) LockOwner(context.Context, uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enter("briefs.LockOwner")
}

func (f fakeBriefs) Create(_ context.Context, b *domain.Brief) (*domain.Brief, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("briefs.Create"); err != nil {
		return nil, err
	}
	cp := *b
	cp.ID = uuid.New()
	cp.Status = domain.BriefStatusDraft
	cp.CommentCount = 0
	cp.CreatedAt = f.tick(cp.ID)
	cp.UpdatedAt = cp.CreatedAt
	f.briefs[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f fakeBriefs) UpdateContent(_ context.Context, id uuid.UUID, p domain.BriefContentParams) (*domain.Brief, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("briefs.UpdateContent"); err != nil {
		return nil, err
	}
	b, ok := f.briefs[id]
	if !ok {
		return nil, notFound("brief", id)
	}
	if p.ExpectedStatus != "" && b.Status != p.ExpectedStatus {
		return nil, fmt.Errorf("brief %s changed concurrently: %w", id, domain.ErrConflict)
	}
	if p.Header != nil {
		b.Header = *p.Header
	}
	if p.Content != nil {
		b.Content = *p.Content
	}
	if p.Footer != nil {
		if *p.Footer == "" {
			b.Footer = nil
		} else {
			footer := *p.Footer
			b.Footer = &footer
		}
	}
	now := f.tick(uuid.Nil)
	if p.ResetStatus != nil {
		by := p.ChangedBy
		b.Status = *p.ResetStatus
		b.StatusChangedAt = &now
		b.StatusChangedBy = &by
	}
	b.UpdatedAt = now
	cp := *b
	return &cp, nil
}

func (f fakeBriefs) UpdateStatus(_ context.Context, id uuid.UUID, expected, next domain.BriefStatus, changedBy uuid.UUID) (*domain.Brief, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("briefs.UpdateStatus"); err != nil {
		return nil, err
	}
	b, ok := f.briefs[id]
	if !ok || b.Status != expected {
		return nil, fmt.Errorf("brief %s status changed concurrently: %w", id, domain.ErrConflict)
	}
	now := f.tick(uuid.Nil)
	b.Status = next
	b.StatusChangedAt = &now
	b.StatusChangedBy = &changedBy
	b.UpdatedAt = now
	cp := *b
	return &cp, nil
}

func (f fakeBriefs) IncrementCommentCount(_ context.Context, id uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("briefs.IncrementCommentCount"); err != nil {
		return 0, err
	}
	b, ok := f.briefs[id]
	if !ok {
		return 0, notFound("brief", id)
	}
	b.CommentCount++
	return b.CommentCount, nil
}

func (f fakeBriefs) DecrementCommentCount(_ context.Context, id uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("briefs.DecrementCommentCount"); err != nil {
		return 0, err
	}
	b, ok := f.briefs[id]
	if !ok {
		return 0, notFound("brief", id)
	}
	b.CommentCount = max(b.CommentCount-1, 0)
	return b.CommentCount, nil
}

func (f fakeBriefs) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("briefs.Delete"); err != nil {
		return err
	}
	if _, ok := f.briefs[id]; !ok {
		return notFound("brief", id)
	}
	delete(f.briefs, id)
	maps.DeleteFunc(f.recipients, func(_ uuid.UUID, r *domain.Recipient) bool { return r.BriefID == id })
	maps.DeleteFunc(f.comments, func(_ uuid.UUID, c *domain.Comment) bool { return c.BriefID == id })
	return nil
}

// ---------------------------------------------------------------------------
// recipientRepo
// ---------------------------------------------------------------------------

type fakeRecipients struct{ *store }

func (f fakeRecipients) GetByID(_ context.Context, id uuid.UUID) (*domain.Recipient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("recipients.GetByID"); err != nil {
		return nil, err
	}
	r, ok := f.recipients[id]
	if !ok {
		return nil, notFound("recipient", id)
	}
	cp := *r
	return &cp, nil
}

func (f fakeRecipients) FindForPrincipal(_ context.Context, briefID, principalID uuid.UUID, email string) (*domain.Recipient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("recipients.FindForPrincipal"); err != nil {
		return nil, err
	}
	var found *domain.Recipient
	for _, r := range f.recipientsOfLocked(briefID) {
		byID := r.RecipientID != nil && *r.RecipientID == principalID
		byEmail := email != "" && strings.EqualFold(r.RecipientEmail, email)
		if !byID && !byEmail {
			continue
		}
		if found == nil || (found.IsPending() && !r.IsPending()) {
			found = r
		}
	}
	if found == nil {
		return nil, notFound("recipient", briefID)
	}
	return found, nil
}

func (f fakeRecipients) ListByBrief(_ context.Context, briefID uuid.UUID) ([]*domain.Recipient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("recipients.ListByBrief"); err != nil {
		return nil, err
	}
	return f.recipientsOfLocked(briefID), nil
}

func (f fakeRecipients) CountByBrief(_ context.Context, briefID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("recipients.CountByBrief"); err != nil {
		return 0, err
	}
	return len(f.recipientsOfLocked(briefID)), nil
}

func (f fakeRecipients) ExistsByEmail(_ context.Context, briefID uuid.UUID, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("recipients.ExistsByEmail"); err != nil {
		return false, err
	}
	for _, r := range f.recipientsOfLocked(briefID) {
		if strings.EqualFold(r.RecipientEmail, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeRecipients) Create(_ context.Context, rec *domain.Recipient) (*domain.Recipient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("recipients.Create"); err != nil {
		return nil, err
	}
	for _, r := range f.recipientsOfLocked(rec.BriefID) {
		if strings.EqualFold(r.RecipientEmail, rec.RecipientEmail) {
			return nil, fmt.Errorf("recipient: %w", domain.ErrAlreadyExists)
		}
	}
	cp := *rec
	cp.ID = uuid.New()
	cp.RecipientEmail = domain.NormalizeEmail(rec.RecipientEmail)
	cp.SharedAt = f.tick(cp.ID)
	f.recipients[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f fakeRecipients) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("recipients.Delete"); err != nil {
		return err
	}
	if _, ok := f.recipients[id]; !ok {
		return notFound("recipient", id)
	}
	delete(f.recipients, id)
	return nil
}

func (f fakeRecipients) ResolvePending(_ context.Context, identityID uuid.UUID, email string) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("recipients.ResolvePending"); err != nil {
		return nil, err
	}
	ids := []uuid.UUID{}
	for _, r := range f.recipients {
		if r.IsPending() && strings.EqualFold(r.RecipientEmail, email) {
			id := identityID
			r.RecipientID = &id
			ids = append(ids, r.BriefID)
		}
	}
	return ids, nil
}

// ---------------------------------------------------------------------------
// commentRepo
// ---------------------------------------------------------------------------

type fakeComments struct{ *store }

func (f fakeComments) GetByID(_ context.Context, id uuid.UUID) (*domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("comments.GetByID"); err != nil {
		return nil, err
	}
	c, ok := f.comments[id]
	if !ok {
		return nil, notFound("comment", id)
	}
	cp := *c
	return &cp, nil
}

func (f fakeComments) ListByBrief(_ context.Context, briefID uuid.UUID) ([]*domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("comments.ListByBrief"); err != nil {
		return nil, err
	}
	var out []*domain.Comment
	for _, c := range f.comments {
		if c.BriefID == briefID {
			cp := *c
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *domain.Comment) int { return f.order[a.ID] - f.order[b.ID] })
	return out, nil
}

func (f fakeComments) Create(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("comments.Create"); err != nil {
		return nil, err
	}
	if _, ok := f.briefs[c.BriefID]; !ok {
		return nil, notFound("brief", c.BriefID)
	}
	cp := *c
	cp.ID = uuid.New()
	cp.CreatedAt = f.tick(cp.ID)
	f.comments[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f fakeComments) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("comments.Delete"); err != nil {
		return err
	}
	if _, ok := f.comments[id]; !ok {
		return notFound("comment", id)
	}
	delete(f.comments, id)
	return nil
}

// ---------------------------------------------------------------------------
// auditLogger
// ---------------------------------------------------------------------------

type fakeAudit struct{ *store }

func (f fakeAudit) Log(_ context.Context, e domain.AuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("audit.Log"); err != nil {
		return err
	}
	if err := f.failures["audit.Log:"+string(e.Action)]; err != nil {
		return err
	}
	e.ID = uuid.New()
	e.CreatedAt = f.tick(e.ID)
	f.audit = append(f.audit, e)
	return nil
}

func (f fakeAudit) ListByEntity(_ context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("audit.ListByEntity"); err != nil {
		return nil, err
	}
	var out []domain.AuditEntry
	for i := len(f.audit) - 1; i >= 0 && len(out) < limit; i-- {
		e := f.audit[i]
		if e.EntityType == entityType && e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// txManager
// ---------------------------------------------------------------------------

// fakeTx rolls the store back when fn fails.
type fakeTx struct{ *store }

func (f fakeTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	f.calls["tx.RunInTx"]++
	f.mu.Unlock()

	saved := f.snapshot()
	if err := fn(ctx); err != nil {
		f.restore(saved)
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// identityDirectory
// ---------------------------------------------------------------------------

type identityDirectoryMock struct {
	FindIdentityByEmailFunc func(ctx context.Context, email string) (uuid.UUID, bool, error)
	RoleOfFunc              func(ctx context.Context, id uuid.UUID) (domain.Role, error)

	mu    sync.Mutex
	calls struct{ FindIdentityByEmail []string }
}

func (m *identityDirectoryMock) FindIdentityByEmail(ctx context.Context, email string) (uuid.UUID, bool, error) {
	m.mu.Lock()
	m.calls.FindIdentityByEmail = append(m.calls.FindIdentityByEmail, email)
	m.mu.Unlock()
	if m.FindIdentityByEmailFunc == nil {
		return uuid.Nil, false, nil
	}
	return m.FindIdentityByEmailFunc(ctx, email)
}

func (m *identityDirectoryMock) FindIdentityByEmailCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls.FindIdentityByEmail)
}

func (m *identityDirectoryMock) RoleOf(ctx context.Context, id uuid.UUID) (domain.Role, error) {
	if m.RoleOfFunc == nil {
		return domain.RoleCreator, nil
	}
	return m.RoleOfFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type harness struct {
	svc   *Service
	store *store
	ids   *identityDirectoryMock
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	st := newStore()
	ids := &identityDirectoryMock{}
	svc := NewService(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		fakeBriefs{st}, fakeRecipients{st}, fakeComments{st}, fakeAudit{st}, fakeTx{st},
		ids, Options{DefaultPageSize: 20, MaxPageSize: 100},
	)
	return &harness{svc: svc, store: st, ids: ids}
}

type principal struct {
	ID    uuid.UUID
	Email string
}

func newPrincipal(name string) principal {
	return principal{ID: uuid.New(), Email: name + "@example.com"}
}

func (p principal) ctx() context.Context {
	ctx := ctxutil.WithUserID(context.Background(), p.ID)
	return ctxutil.WithEmail(ctx, p.Email)
}

func ptr[T any](v T) *T { return &v }

// mustCreate creates a brief owned by p or fails the test.
func (h *harness) mustCreate(t *testing.T, p principal, header string) *BriefDetail {
	t.Helper()
	d, err := h.svc.CreateBrief(p.ctx(), CreateBriefInput{Header: header, Content: "content of " + header})
	if err != nil {
		t.Fatalf("CreateBrief: %v", err)
	}
	return d
}

// mustShare shares briefID with email as owner or fails the test.
func (h *harness) mustShare(t *testing.T, owner principal, briefID uuid.UUID, email string) *RecipientRecord {
	t.Helper()
	r, err := h.svc.ShareBrief(owner.ctx(), ShareInput{BriefID: briefID, Email: email})
	if err != nil {
		t.Fatalf("ShareBrief: %v", err)
	}
	return r
}
