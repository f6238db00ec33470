package domain

import "testing"

func TestWeightUnit_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		unit WeightUnit
		want bool
	}{
		{WeightUnitLBS, true},
		{WeightUnitKG, true},
		{WeightUnit("kg"), false},
		{WeightUnit("STONE"), false},
		{WeightUnit(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.unit), func(t *testing.T) {
			t.Parallel()
			if got := tt.unit.IsValid(); got != tt.want {
				t.Errorf("WeightUnit(%q).IsValid() = %v, want %v", tt.unit, got, tt.want)
			}
		})
	}
}
