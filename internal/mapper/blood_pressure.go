package mapper

import (
	"github.com/wafflemkr/points/internal/domain"
	"github.com/wafflemkr/points/internal/dto"
)

// BloodPressure maps between domain.BloodPressure and dto.BloodPressure.
type BloodPressure struct{}

func (BloodPressure) ToDTO(e *domain.BloodPressure) *dto.BloodPressure {
	if e == nil {
		return nil
	}
	return &dto.BloodPressure{
		ID:        idPtr(e.ID),
		Timestamp: e.Timestamp,
		Systolic:  e.Systolic,
		Diastolic: e.Diastolic,
		UserID:    ownerID(e.User),
		UserLogin: ownerLogin(e.User),
	}
}

func (BloodPressure) ToEntity(d *dto.BloodPressure) *domain.BloodPressure {
	if d == nil {
		return nil
	}
	return &domain.BloodPressure{
		ID:        idValue(d.ID),
		Timestamp: d.Timestamp,
		Systolic:  d.Systolic,
		Diastolic: d.Diastolic,
		User:      UserFromID(d.UserID),
	}
}

func (m BloodPressure) ToDTOs(es []domain.BloodPressure) []dto.BloodPressure {
	return mapSlice(es, m.ToDTO)
}

func (BloodPressure) FromID(id int64) *domain.BloodPressure {
	if id == 0 {
		return nil
	}
	return &domain.BloodPressure{ID: id}
}
