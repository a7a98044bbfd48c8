package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"petlove/internal/models"
)

// memStore is an in-memory CRUDRepository. Filters are ignored by Find and
// Count; updates go through a bson round trip so field names match the
// real collection.
type memStore[T any] struct {
	mu    sync.Mutex
	docs  map[models.ID]*T
	order []models.ID
	idOf  func(*T) models.ID
}

func newMemStore[T any](idOf func(*T) models.ID) *memStore[T] {
	return &memStore[T]{docs: map[models.ID]*T{}, idOf: idOf}
}

func (m *memStore[T]) Create(_ context.Context, doc *T) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.idOf(doc)
	cp := *doc
	m.docs[id] = &cp
	m.order = append(m.order, id)
	return doc, nil
}

func (m *memStore[T]) FindByID(_ context.Context, id models.ID) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *doc
	return &cp, nil
}

func (m *memStore[T]) Find(_ context.Context, _ bson.M, page models.Pagination) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, 0)
	for i, id := range m.order {
		if int64(i) < page.Skip {
			continue
		}
		if page.Limit > 0 && int64(len(out)) >= page.Limit {
			break
		}
		if doc, ok := m.docs[id]; ok {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func (m *memStore[T]) Count(_ context.Context, _ bson.M) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.docs)), nil
}

func (m *memStore[T]) Update(ctx context.Context, id models.ID, updateFields bson.M) (*mongo.UpdateResult, error) {
	return m.UpdateIf(ctx, id, nil, updateFields)
}

// UpdateIf compares expect by equality of the printed values, which is
// enough for the status fields the services guard on.
func (m *memStore[T]) UpdateIf(_ context.Context, id models.ID, expect, updateFields bson.M) (*mongo.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return &mongo.UpdateResult{}, nil
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	fields := bson.M{}
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	for k, v := range expect {
		if fmt.Sprint(fields[k]) != fmt.Sprint(v) {
			return &mongo.UpdateResult{}, nil
		}
	}
	for k, v := range updateFields {
		fields[k] = v
	}
	fields["updated_at"] = time.Now().UTC()

	if raw, err = bson.Marshal(fields); err != nil {
		return nil, err
	}
	var updated T
	if err := bson.Unmarshal(raw, &updated); err != nil {
		return nil, err
	}
	m.docs[id] = &updated
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *memStore[T]) Delete(_ context.Context, id models.ID) (*mongo.DeleteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return &mongo.DeleteResult{}, nil
	}
	delete(m.docs, id)
	return &mongo.DeleteResult{DeletedCount: 1}, nil
}

func (m *memStore[T]) all() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, 0, len(m.docs))
	for _, doc := range m.docs {
		out = append(out, *doc)
	}
	return out
}

type fakeUserRepo struct{ *memStore[models.User] }

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{newMemStore(func(u *models.User) models.ID { return u.ID })}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	for _, u := range r.all() {
		if u.Email == user.Email {
			return nil, mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}}}
		}
	}
	return r.memStore.Create(ctx, user)
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.all() {
		if u.Email == strings.ToLower(email) {
			return &u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

type fakePetRepo struct{ *memStore[models.Pet] }

func newFakePetRepo() *fakePetRepo {
	return &fakePetRepo{newMemStore(func(p *models.Pet) models.ID { return p.ID })}
}

type fakeOrderRepo struct{ *memStore[models.Order] }

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{newMemStore(func(o *models.Order) models.ID { return o.ID })}
}

type fakeAdoptionRepo struct{ *memStore[models.Adoption] }

func newFakeAdoptionRepo() *fakeAdoptionRepo {
	return &fakeAdoptionRepo{newMemStore(func(a *models.Adoption) models.ID { return a.ID })}
}

func (r *fakeAdoptionRepo) ExistsActive(_ context.Context, petID, userID models.ID) (bool, error) {
	for _, a := range r.all() {
		if a.PetID == petID && a.UserID == userID && a.Status.Active() {
			return true, nil
		}
	}
	return false, nil
}

type fakeAppointmentRepo struct{ *memStore[models.Appointment] }

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{newMemStore(func(a *models.Appointment) models.ID { return a.ID })}
}

type fakeVisitRepo struct{ *memStore[models.Visit] }

func newFakeVisitRepo() *fakeVisitRepo {
	return &fakeVisitRepo{newMemStore(func(v *models.Visit) models.ID { return v.ID })}
}

type sentEmail struct {
	to, subject, body string
}

type fakeEmailService struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (f *fakeEmailService) SendEmail(to, subject, msg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{to: to, subject: subject, body: msg})
	return nil
}

func (f *fakeEmailService) last() sentEmail {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return sentEmail{}
	}
	return f.sent[len(f.sent)-1]
}

func seedUser(repo *fakeUserRepo, email string) *models.User {
	user := &models.User{Base: models.NewBase(), Name: "Ana", Email: email, Role: models.RoleCustomer}
	_, _ = repo.memStore.Create(context.Background(), user)
	return user
}

func seedPet(repo *fakePetRepo, status models.PetStatus) *models.Pet {
	pet := &models.Pet{Base: models.NewBase(), Name: "Rex", Species: models.SpeciesDog, Status: status}
	_, _ = repo.Create(context.Background(), pet)
	return pet
}

type fakePasswordResetRepo struct{ *memStore[models.PasswordReset] }

func newFakePasswordResetRepo() *fakePasswordResetRepo {
	return &fakePasswordResetRepo{newMemStore(func(p *models.PasswordReset) models.ID { return p.ID })}
}

func (r *fakePasswordResetRepo) FindActive(_ context.Context, userID models.ID, code string, now time.Time) (*models.PasswordReset, error) {
	for _, p := range r.all() {
		if p.UserID == userID && p.Code == code && p.UsedAt == nil && !p.Expired(now) && !p.Locked() {
			return &p, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakePasswordResetRepo) MarkUsed(_ context.Context, id models.ID, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.docs[id]
	if !ok || p.UsedAt != nil {
		return false, nil
	}
	p.UsedAt = &now
	return true, nil
}

func (r *fakePasswordResetRepo) RecordFailedAttempt(_ context.Context, userID models.ID, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.docs {
		if p.UserID == userID && p.UsedAt == nil && !p.Expired(now) {
			p.Attempts++
		}
	}
	return nil
}

func (r *fakePasswordResetRepo) InvalidateForUser(_ context.Context, userID models.ID, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.docs {
		if p.UserID == userID && p.UsedAt == nil {
			p.UsedAt = &now
		}
	}
	return nil
}
