package pets

import (
	"context"
	"errors"
	"testing"

	"petify/internal/platform/apperr"
	"petify/internal/platform/patch"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; ok {
		return apperr.ErrConflict
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, apperr.ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// noTx corre fn directo; el repo de test no tiene rollback.
type noTx struct{}

func (noTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	return NewService(repo, noTx{}), repo
}

// -------------------------
// Tests
// -------------------------

func TestAuthorize(t *testing.T) {
	pet := &Pet{ID: "p1", OwnerUserID: "owner"}

	cases := []struct {
		name      string
		requester string
		pet       *Pet
		lookup    Lookup
		want      Decision
	}{
		{"owner scoped allow", "owner", pet, LookupOwnerScoped, Allow},
		{"owner via child allow", "owner", pet, LookupViaChild, Allow},
		{"foreign owner scoped hides", "other", pet, LookupOwnerScoped, NotFound},
		{"foreign via child denies", "other", pet, LookupViaChild, Deny},
		{"missing owner scoped", "owner", nil, LookupOwnerScoped, NotFound},
		{"missing via child", "owner", nil, LookupViaChild, NotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Authorize(tc.requester, tc.pet, tc.lookup); got != tc.want {
				t.Fatalf("Authorize() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	breed := "Lab"
	p, err := svc.Create(ctx, "owner", CreateInput{Name: "  Rex ", Species: "dog", Breed: &breed})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" || p.Name != "Rex" || p.OwnerUserID != "owner" || p.CreatedAt.IsZero() {
		t.Fatalf("unexpected pet: %+v", p)
	}

	got, err := svc.Get(ctx, "owner", p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != p.ID {
		t.Fatalf("expected %s, got %s", p.ID, got.ID)
	}
}

func TestCreate_RequiresNameAndSpecies(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), "owner", CreateInput{Name: " ", Species: "dog"})
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	_, err = svc.Create(context.Background(), "", CreateInput{Name: "Rex", Species: "dog"})
	if !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestGet_ForeignLooksMissing(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	p, _ := svc.Create(ctx, "owner", CreateInput{Name: "Rex", Species: "dog"})

	_, err := svc.Get(ctx, "other", p.ID)
	if !errors.Is(err, apperr.ErrNotFound) || err.Error() != "Pet not found" {
		t.Fatalf("expected Pet not found, got %v", err)
	}

	_, err = svc.AuthorizeParent(ctx, p.ID, "other")
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden via child, got %v", err)
	}
}

func TestUpdate_PartialFields(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	notes := "old"
	p, _ := svc.Create(ctx, "owner", CreateInput{Name: "Rex", Species: "dog", Notes: &notes})

	out, err := svc.Update(ctx, "owner", p.ID, UpdateInput{
		Name:  patch.Set("Max"),
		Notes: patch.Null[string](),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out.Name != "Max" || out.Species != "dog" || out.Notes != nil {
		t.Fatalf("unexpected update result: %+v", out)
	}
	if repo.byID[p.ID].Name != "Max" {
		t.Fatalf("repo not updated")
	}

	_, err = svc.Update(ctx, "owner", p.ID, UpdateInput{Species: patch.Null[string]()})
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected invalid input for null species, got %v", err)
	}

	_, err = svc.Update(ctx, "other", p.ID, UpdateInput{Name: patch.Set("Hack")})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found for foreign update, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	p, _ := svc.Create(ctx, "owner", CreateInput{Name: "Rex", Species: "dog"})

	if err := svc.Delete(ctx, "other", p.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found for foreign delete, got %v", err)
	}
	if err := svc.Delete(ctx, "owner", p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := repo.byID[p.ID]; ok {
		t.Fatalf("pet still present")
	}
}
