package tui

import "testing"

var allFields = []Field{
	FieldMeasure,
	FieldSetVoltage,
	FieldSetCurrent,
	FieldOVPLimit,
	FieldOCPLimit,
	FieldOVPEnabled,
	FieldOCPEnabled,
}

func TestFieldCycleLength(t *testing.T) {
	for _, start := range allFields {
		f := start
		for i := 0; i < len(allFields); i++ {
			f = f.Next()
		}
		if f != start {
			t.Errorf("Next applied 7 times from %d ended at %d, want the start value", start, f)
		}
	}
}

func TestFieldPrevInvertsNext(t *testing.T) {
	for _, f := range allFields {
		if got := f.Next().Prev(); got != f {
			t.Errorf("Prev(Next(%d)) = %d, want %d", f, got, f)
		}
		if got := f.Prev().Next(); got != f {
			t.Errorf("Next(Prev(%d)) = %d, want %d", f, got, f)
		}
	}
}

func TestFieldCycleVisitsEveryField(t *testing.T) {
	seen := make(map[Field]bool)
	f := FieldMeasure
	for i := 0; i < len(allFields); i++ {
		seen[f] = true
		f = f.Next()
	}
	if len(seen) != len(allFields) {
		t.Errorf("cycle visited %d distinct fields, want %d", len(seen), len(allFields))
	}
}

func TestFieldListIndex(t *testing.T) {
	tests := []struct {
		field  Field
		index  int
		inList bool
	}{
		{FieldMeasure, 0, false},
		{FieldSetVoltage, 0, true},
		{FieldSetCurrent, 1, true},
		{FieldOVPLimit, 0, true},
		{FieldOCPLimit, 1, true},
		{FieldOVPEnabled, 2, true},
		{FieldOCPEnabled, 3, true},
	}

	for _, tt := range tests {
		index, inList := tt.field.ListIndex()
		if inList != tt.inList {
			t.Errorf("Field(%d).ListIndex() inList = %v, want %v", tt.field, inList, tt.inList)
		}
		if inList && index != tt.index {
			t.Errorf("Field(%d).ListIndex() = %d, want %d", tt.field, index, tt.index)
		}
	}
}

func TestFieldClassification(t *testing.T) {
	editable := map[Field]bool{
		FieldSetVoltage: true,
		FieldSetCurrent: true,
		FieldOVPLimit:   true,
		FieldOCPLimit:   true,
	}
	toggles := map[Field]bool{
		FieldOVPEnabled: true,
		FieldOCPEnabled: true,
	}

	for _, f := range allFields {
		if got := f.Editable(); got != editable[f] {
			t.Errorf("Field(%d).Editable() = %v, want %v", f, got, editable[f])
		}
		if got := f.IsToggle(); got != toggles[f] {
			t.Errorf("Field(%d).IsToggle() = %v, want %v", f, got, toggles[f])
		}
		if f.Editable() && f.EntryTitle() == "" {
			t.Errorf("Field(%d) is editable but has no entry title", f)
		}
	}
}
