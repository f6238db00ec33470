package mapper

import (
	"github.com/wafflemkr/points/internal/domain"
	"github.com/wafflemkr/points/internal/dto"
)

// Preferences maps between domain.Preferences and dto.Preferences.
type Preferences struct{}

func (Preferences) ToDTO(e *domain.Preferences) *dto.Preferences {
	if e == nil {
		return nil
	}
	goals := e.WeeklyGoals
	return &dto.Preferences{
		ID:          idPtr(e.ID),
		WeeklyGoals: &goals,
		WeightUnit:  e.WeightUnit,
		UserID:      ownerID(e.User),
		UserLogin:   ownerLogin(e.User),
	}
}

func (Preferences) ToEntity(d *dto.Preferences) *domain.Preferences {
	if d == nil {
		return nil
	}
	e := &domain.Preferences{
		ID:         idValue(d.ID),
		WeightUnit: d.WeightUnit,
		User:       UserFromID(d.UserID),
	}
	if d.WeeklyGoals != nil {
		e.WeeklyGoals = *d.WeeklyGoals
	}
	return e
}

func (m Preferences) ToDTOs(es []domain.Preferences) []dto.Preferences {
	return mapSlice(es, m.ToDTO)
}

func (Preferences) FromID(id int64) *domain.Preferences {
	if id == 0 {
		return nil
	}
	return &domain.Preferences{ID: id}
}
