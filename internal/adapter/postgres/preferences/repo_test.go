package preferences_test

import (
	"context"
	"errors"
	"testing"

	"github.com/wafflemkr/points/internal/adapter/postgres/preferences"
	"github.com/wafflemkr/points/internal/adapter/postgres/testhelper"
	"github.com/wafflemkr/points/internal/domain"
)

func TestRepo_InsertAndReplace(t *testing.T) {
	t.Parallel()
	repo := preferences.New(testhelper.SetupTestDB(t))
	ctx := context.Background()

	created, err := repo.Insert(ctx, &domain.Preferences{WeeklyGoals: 10, WeightUnit: domain.WeightUnitKG, User: &testhelper.User})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if created.WeeklyGoals != 10 || created.WeightUnit != domain.WeightUnitKG {
		t.Errorf("unexpected row: %+v", created)
	}

	replaced, err := repo.Replace(ctx, &domain.Preferences{ID: created.ID, WeeklyGoals: 21, WeightUnit: domain.WeightUnitLBS, User: &testhelper.User})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if replaced.WeeklyGoals != 21 || replaced.WeightUnit != domain.WeightUnitLBS {
		t.Errorf("unexpected replaced row: %+v", replaced)
	}
}

func TestRepo_CheckConstraint(t *testing.T) {
	t.Parallel()
	repo := preferences.New(testhelper.SetupTestDB(t))

	_, err := repo.Insert(context.Background(), &domain.Preferences{WeeklyGoals: 30, WeightUnit: domain.WeightUnitKG})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Errors[0].Field != "weeklyGoals" {
		t.Errorf("field = %q, want weeklyGoals", ve.Errors[0].Field)
	}
}

func TestRepo_FindPageUnpaged(t *testing.T) {
	t.Parallel()
	repo := preferences.New(testhelper.SetupTestDB(t))
	ctx := context.Background()

	created, err := repo.Insert(ctx, &domain.Preferences{WeeklyGoals: 15, WeightUnit: domain.WeightUnitLBS})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	page, err := repo.FindPage(ctx, domain.Unpaged())
	if err != nil {
		t.Fatalf("FindPage: %v", err)
	}
	found := false
	for _, p := range page.Items {
		if p.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("unpaged page does not contain id %d", created.ID)
	}
}
