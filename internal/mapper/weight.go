package mapper

import (
	"github.com/wafflemkr/points/internal/domain"
	"github.com/wafflemkr/points/internal/dto"
)

// Weight maps between domain.Weight and dto.Weight.
type Weight struct{}

func (Weight) ToDTO(e *domain.Weight) *dto.Weight {
	if e == nil {
		return nil
	}
	return &dto.Weight{
		ID:        idPtr(e.ID),
		Timestamp: e.Timestamp,
		Weight:    e.Weight,
		UserID:    ownerID(e.User),
		UserLogin: ownerLogin(e.User),
	}
}

func (Weight) ToEntity(d *dto.Weight) *domain.Weight {
	if d == nil {
		return nil
	}
	return &domain.Weight{
		ID:        idValue(d.ID),
		Timestamp: d.Timestamp,
		Weight:    d.Weight,
		User:      UserFromID(d.UserID),
	}
}

func (m Weight) ToDTOs(es []domain.Weight) []dto.Weight {
	return mapSlice(es, m.ToDTO)
}

func (Weight) FromID(id int64) *domain.Weight {
	if id == 0 {
		return nil
	}
	return &domain.Weight{ID: id}
}
