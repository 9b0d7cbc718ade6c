package bitfields_test

import (
	"reflect"
	"testing"

	"github.com/mavenlink/bitfields"
)

func TestAssignmentOfTag(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		weights map[string]uint64
		ok      bool
	}{
		{"implicit", "seller;insane;sensible", map[string]uint64{"seller": 1, "insane": 2, "sensible": 4}, true},
		{"explicit", "1:seller;4:sensible", map[string]uint64{"seller": 1, "sensible": 4}, true},
		{"spaces tolerated", " seller ; insane ", map[string]uint64{"seller": 1, "insane": 2}, true},
		{"mixed forms", "seller;2:insane", nil, false},
		{"bad weight", "x:seller", nil, false},
		{"non power of two weight", "3:seller", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := bitfields.AssignmentOfTag(tt.tag)
			if !tt.ok {
				if !bitfields.IsConfigurationError(err) {
					t.Errorf("expected ConfigurationError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			got := map[string]uint64{}
			for _, name := range a.Names() {
				w, err := a.WeightOf(name)
				if err != nil {
					t.Fatal(err)
				}
				got[name] = w
			}
			if !reflect.DeepEqual(got, tt.weights) {
				t.Errorf("weights = %v, want %v", got, tt.weights)
			}
		})
	}
}
