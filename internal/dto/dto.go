// Package dto holds the transfer forms exchanged over the REST API.
// The owner is carried as userId plus a read-only userLogin.
package dto

import (
	"time"

	"github.com/wafflemkr/points/internal/domain"
)

type Points struct {
	ID        *int64       `json:"id"`
	Date      *domain.Date `json:"date,omitempty"`
	Exercise  *int         `json:"exercise,omitempty"`
	Meals     *int         `json:"meals,omitempty"`
	Alcohol   *int         `json:"alcohol,omitempty"`
	Notes     *string      `json:"notes,omitempty"`
	UserID    *int64       `json:"userId,omitempty"`
	UserLogin string       `json:"userLogin,omitempty"`
}

func (p Points) Identity() *int64 { return p.ID }

type Weight struct {
	ID        *int64     `json:"id"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Weight    *float64   `json:"weight,omitempty"`
	UserID    *int64     `json:"userId,omitempty"`
	UserLogin string     `json:"userLogin,omitempty"`
}

func (w Weight) Identity() *int64 { return w.ID }

type BloodPressure struct {
	ID        *int64     `json:"id"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Systolic  *int       `json:"systolic,omitempty"`
	Diastolic *int       `json:"diastolic,omitempty"`
	UserID    *int64     `json:"userId,omitempty"`
	UserLogin string     `json:"userLogin,omitempty"`
}

func (b BloodPressure) Identity() *int64 { return b.ID }

type Preferences struct {
	ID          *int64            `json:"id"`
	WeeklyGoals *int              `json:"weeklyGoals" validate:"required,min=10,max=21"`
	WeightUnit  domain.WeightUnit `json:"weightUnit" validate:"required,oneof=LBS KG"`
	UserID      *int64            `json:"userId,omitempty"`
	UserLogin   string            `json:"userLogin,omitempty"`
}

func (p Preferences) Identity() *int64 { return p.ID }
