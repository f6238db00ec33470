package domain

// WeightUnit is the unit a user records weight in.
type WeightUnit string

const (
	WeightUnitLBS WeightUnit = "LBS"
	WeightUnitKG  WeightUnit = "KG"
)

func (u WeightUnit) String() string { return string(u) }

func (u WeightUnit) IsValid() bool {
	switch u {
	case WeightUnitLBS, WeightUnitKG:
		return true
	}
	return false
}
