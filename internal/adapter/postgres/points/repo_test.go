package points_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wafflemkr/points/internal/adapter/postgres/points"
	"github.com/wafflemkr/points/internal/adapter/postgres/testhelper"
	"github.com/wafflemkr/points/internal/domain"
)

func newRepo(t *testing.T) (*points.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return points.New(pool), pool
}

func ptr[T any](v T) *T { return &v }

func TestRepo_Insert_AndFindByID(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)

	created, err := repo.Insert(ctx, &domain.Points{
		Date:     &domain.Date{Year: 1970, Month: time.January, Day: 1},
		Exercise: ptr(1),
		Meals:    ptr(1),
		Alcohol:  ptr(1),
		Notes:    ptr("AAAAAAAAAA"),
		User:     &domain.User{ID: user.ID},
	})
	if err != nil {
		t.Fatalf("Insert: unexpected error: %v", err)
	}

	if created.ID == 0 {
		t.Fatal("expected a generated id")
	}
	if created.User == nil || created.User.Login != user.Login {
		t.Errorf("owner login not loaded: %+v", created.User)
	}
	if created.Date == nil || created.Date.String() != "1970-01-01" {
		t.Errorf("date = %v, want 1970-01-01", created.Date)
	}

	got, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID: unexpected error: %v", err)
	}
	if *got.Exercise != 1 || *got.Meals != 1 || *got.Alcohol != 1 || *got.Notes != "AAAAAAAAAA" {
		t.Errorf("unexpected fields: %+v", got)
	}
}

func TestRepo_Insert_NullableFields(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	created, err := repo.Insert(ctx, &domain.Points{})
	if err != nil {
		t.Fatalf("Insert: unexpected error: %v", err)
	}
	if created.Date != nil || created.Exercise != nil || created.Notes != nil || created.User != nil {
		t.Errorf("expected all nullable fields nil, got %+v", created)
	}
}

func TestRepo_Insert_UnknownUser(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.Insert(context.Background(), &domain.Points{User: &domain.User{ID: 987654321}})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Errors[0].Field != "userId" {
		t.Errorf("field = %q, want userId", ve.Errors[0].Field)
	}
}

func TestRepo_Replace(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	created, err := repo.Insert(ctx, &domain.Points{Exercise: ptr(1), Notes: ptr("before"), User: &testhelper.Admin})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	replaced, err := repo.Replace(ctx, &domain.Points{ID: created.ID, Meals: ptr(1), User: &testhelper.User})
	if err != nil {
		t.Fatalf("Replace: unexpected error: %v", err)
	}

	if replaced.Exercise != nil || replaced.Notes != nil {
		t.Errorf("replace must overwrite every column, got %+v", replaced)
	}
	if replaced.Meals == nil || *replaced.Meals != 1 {
		t.Errorf("meals = %v, want 1", replaced.Meals)
	}
	if replaced.User == nil || replaced.User.Login != "user" {
		t.Errorf("owner = %+v, want user", replaced.User)
	}
}

func TestRepo_Replace_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.Replace(context.Background(), &domain.Points{ID: 987654321})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_FindByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.FindByID(context.Background(), 987654321)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_Delete_Idempotent(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	created, err := repo.Insert(ctx, &domain.Points{Notes: ptr("to delete")})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestRepo_FindPage(t *testing.T) {
	repo, pool := newRepo(t)
	ctx := context.Background()

	if _, err := pool.Exec(ctx, `DELETE FROM points`); err != nil {
		t.Fatalf("clear points: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := repo.Insert(ctx, &domain.Points{Exercise: ptr(i)}); err != nil {
			t.Fatalf("Insert %d: %v", i, err)
		}
	}

	page, err := repo.FindPage(ctx, domain.PageRequest{
		Page: 0, Size: 2, Sort: []domain.Order{{Field: "exercise", Desc: true}},
	})
	if err != nil {
		t.Fatalf("FindPage: %v", err)
	}
	if page.Total != 5 {
		t.Errorf("total = %d, want 5", page.Total)
	}
	if len(page.Items) != 2 || *page.Items[0].Exercise != 4 || *page.Items[1].Exercise != 3 {
		t.Errorf("unexpected first page: %+v", page.Items)
	}

	page, err = repo.FindPage(ctx, domain.PageRequest{Page: 2, Size: 2})
	if err != nil {
		t.Fatalf("FindPage: %v", err)
	}
	if len(page.Items) != 1 {
		t.Errorf("last page len = %d, want 1", len(page.Items))
	}

	page, err = repo.FindPage(ctx, domain.Unpaged())
	if err != nil {
		t.Fatalf("FindPage unpaged: %v", err)
	}
	all := page.Items
	if len(all) != 5 || page.Total != 5 {
		t.Errorf("unpaged: len=%d total=%d, want 5/5", len(all), page.Total)
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].ID >= all[i].ID {
			t.Errorf("unpaged page not ordered by id: %d before %d", all[i-1].ID, all[i].ID)
		}
	}
}
