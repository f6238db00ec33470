package mapper

import (
	"github.com/wafflemkr/points/internal/domain"
	"github.com/wafflemkr/points/internal/dto"
)

// Points maps between domain.Points and dto.Points.
type Points struct{}

func (Points) ToDTO(e *domain.Points) *dto.Points {
	if e == nil {
		return nil
	}
	return &dto.Points{
		ID:        idPtr(e.ID),
		Date:      e.Date,
		Exercise:  e.Exercise,
		Meals:     e.Meals,
		Alcohol:   e.Alcohol,
		Notes:     e.Notes,
		UserID:    ownerID(e.User),
		UserLogin: ownerLogin(e.User),
	}
}

func (Points) ToEntity(d *dto.Points) *domain.Points {
	if d == nil {
		return nil
	}
	return &domain.Points{
		ID:       idValue(d.ID),
		Date:     d.Date,
		Exercise: d.Exercise,
		Meals:    d.Meals,
		Alcohol:  d.Alcohol,
		Notes:    d.Notes,
		User:     UserFromID(d.UserID),
	}
}

func (m Points) ToDTOs(es []domain.Points) []dto.Points {
	return mapSlice(es, m.ToDTO)
}

func (Points) FromID(id int64) *domain.Points {
	if id == 0 {
		return nil
	}
	return &domain.Points{ID: id}
}
