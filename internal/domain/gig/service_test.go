package gig

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mx70/mx70-api/internal/domain/credit"
	"github.com/mx70/mx70-api/internal/domain/user"
)

type fakeRepo struct {
	gigs map[uuid.UUID]*Gig
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{gigs: make(map[uuid.UUID]*Gig)}
}

func (f *fakeRepo) Create(ctx context.Context, g *Gig) error {
	cp := *g
	f.gigs[g.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Gig, error) {
	if g, ok := f.gigs[id]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepo) Update(ctx context.Context, g *Gig) error {
	cp := *g
	f.gigs[g.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	f.gigs[id].Status = status
	return nil
}

func (f *fakeRepo) Claim(ctx context.Context, id uuid.UUID, clipperID uuid.UUID) (bool, error) {
	g, ok := f.gigs[id]
	if !ok || g.Status != StatusPending {
		return false, nil
	}
	g.Status = StatusClaimed
	g.ClaimedBy = uuid.NullUUID{UUID: clipperID, Valid: true}
	return true, nil
}

func (f *fakeRepo) List(ctx context.Context, filter *Filter, p *Pagination) ([]*Gig, int, error) {
	var out []*Gig
	for _, g := range f.gigs {
		if filter != nil && filter.Status != nil && g.Status != *filter.Status {
			continue
		}
		out = append(out, g)
	}
	return out, len(out), nil
}

func (f *fakeRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID, p *Pagination) ([]*Gig, int, error) {
	var out []*Gig
	for _, g := range f.gigs {
		if g.BusinessID == businessID {
			out = append(out, g)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) ListByClipper(ctx context.Context, clipperID uuid.UUID, p *Pagination) ([]*Gig, int, error) {
	var out []*Gig
	for _, g := range f.gigs {
		if g.ClaimedBy.Valid && g.ClaimedBy.UUID == clipperID {
			out = append(out, g)
		}
	}
	return out, len(out), nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return nil
}

type fakeCreditService struct {
	awards []uuid.UUID
	err    error
}

func (f *fakeCreditService) AwardGigPostCredit(ctx context.Context, userID uuid.UUID) (*credit.Credit, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.awards = append(f.awards, userID)
	return &credit.Credit{
		ID:     uuid.New(),
		UserID: userID,
		Amount: 5.0,
		Source: credit.SourceGigPost,
		Expiry: time.Now().AddDate(0, 6, 0),
	}, nil
}

func newTestUsers() (*fakeUserRepo, *user.User, *user.User) {
	business := &user.User{ID: uuid.New(), Role: user.RoleBusiness, IsActive: true}
	clipper := &user.User{ID: uuid.New(), Role: user.RoleClipper, IsActive: true}
	return &fakeUserRepo{users: map[uuid.UUID]*user.User{
		business.ID: business,
		clipper.ID:  clipper,
	}}, business, clipper
}

func TestCreateGigAwardsPostingCredit(t *testing.T) {
	repo := newFakeRepo()
	users, business, _ := newTestUsers()
	credits := &fakeCreditService{}
	svc := NewService(repo, users, credits, 50.0)

	g, err := svc.Create(context.Background(), business.ID, &CreateGigRequest{
		Title:     "Taco truck story",
		Budget:    120.0,
		StoryType: string(StoryCustomerReview),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if g.Status != StatusPending {
		t.Errorf("new gig status = %q, want pending", g.Status)
	}
	if len(credits.awards) != 1 || credits.awards[0] != business.ID {
		t.Errorf("expected one posting credit for business, got %v", credits.awards)
	}
	if stored, _ := repo.GetByID(context.Background(), g.ID); stored == nil {
		t.Error("gig was not persisted")
	}
}

func TestCreateGigRejectsLowBudget(t *testing.T) {
	repo := newFakeRepo()
	users, business, _ := newTestUsers()
	credits := &fakeCreditService{}
	svc := NewService(repo, users, credits, 50.0)

	_, err := svc.Create(context.Background(), business.ID, &CreateGigRequest{
		Title:  "Cheap gig",
		Budget: 49.99,
	})
	if !IsBudgetError(err) {
		t.Fatalf("expected BudgetError, got %v", err)
	}

	var be *BudgetError
	errors.As(err, &be)
	if be.Minimum != 50.0 || be.Budget != 49.99 {
		t.Errorf("unexpected budget error fields: %+v", be)
	}
	if len(credits.awards) != 0 {
		t.Error("no credit should be awarded for a rejected gig")
	}
	if len(repo.gigs) != 0 {
		t.Error("rejected gig must not be persisted")
	}
}

func TestCreateGigRejectsClipper(t *testing.T) {
	repo := newFakeRepo()
	users, _, clipper := newTestUsers()
	svc := NewService(repo, users, &fakeCreditService{}, 50.0)

	_, err := svc.Create(context.Background(), clipper.ID, &CreateGigRequest{
		Title:  "Not allowed",
		Budget: 100.0,
	})
	if !errors.Is(err, ErrOnlyBusinessesCanPost) {
		t.Fatalf("expected ErrOnlyBusinessesCanPost, got %v", err)
	}
}

func TestCreateGigSurvivesCreditFailure(t *testing.T) {
	repo := newFakeRepo()
	users, business, _ := newTestUsers()
	credits := &fakeCreditService{err: errors.New("ledger down")}
	svc := NewService(repo, users, credits, 50.0)

	g, err := svc.Create(context.Background(), business.ID, &CreateGigRequest{
		Title:  "Still posts",
		Budget: 75.0,
	})
	if err != nil {
		t.Fatalf("create should not fail on credit error: %v", err)
	}
	if stored, _ := repo.GetByID(context.Background(), g.ID); stored == nil {
		t.Error("gig should persist despite credit failure")
	}
}

func TestCancelOnlyPendingGigs(t *testing.T) {
	repo := newFakeRepo()
	users, business, clipper := newTestUsers()
	svc := NewService(repo, users, &fakeCreditService{}, 50.0)

	g, err := svc.Create(context.Background(), business.ID, &CreateGigRequest{
		Title:  "Claimable",
		Budget: 80.0,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Cancel(context.Background(), g.ID, clipper.ID); !errors.Is(err, ErrNotGigOwner) {
		t.Fatalf("expected ErrNotGigOwner, got %v", err)
	}

	if _, err := repo.Claim(context.Background(), g.ID, clipper.ID); err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	if _, err := svc.Cancel(context.Background(), g.ID, business.ID); !errors.Is(err, ErrCannotCancelClaimedGig) {
		t.Fatalf("expected ErrCannotCancelClaimedGig, got %v", err)
	}
}

func TestUpdateLockedAfterClaim(t *testing.T) {
	repo := newFakeRepo()
	users, business, clipper := newTestUsers()
	svc := NewService(repo, users, &fakeCreditService{}, 50.0)

	g, err := svc.Create(context.Background(), business.ID, &CreateGigRequest{
		Title:  "Editable",
		Budget: 90.0,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newTitle := "Edited"
	if _, err := svc.Update(context.Background(), g.ID, business.ID, &UpdateGigRequest{Title: newTitle}); err != nil {
		t.Fatalf("update of pending gig failed: %v", err)
	}

	if _, err := repo.Claim(context.Background(), g.ID, clipper.ID); err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	_, err = svc.Update(context.Background(), g.ID, business.ID, &UpdateGigRequest{Title: "Too late"})
	if !errors.Is(err, ErrGigNotPending) {
		t.Fatalf("expected ErrGigNotPending, got %v", err)
	}
}
