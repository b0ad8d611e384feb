package tui

// Field is the vertical selection cursor within one channel panel. It
// cycles over exactly seven values: the measurement block, the two
// setpoints, and the four protection entries.
type Field int

const (
	FieldMeasure Field = iota
	FieldSetVoltage
	FieldSetCurrent
	FieldOVPLimit
	FieldOCPLimit
	FieldOVPEnabled
	FieldOCPEnabled
)

// Next returns the successor in the fixed cyclic order.
func (f Field) Next() Field {
	switch f {
	case FieldMeasure:
		return FieldSetVoltage
	case FieldSetVoltage:
		return FieldSetCurrent
	case FieldSetCurrent:
		return FieldOVPLimit
	case FieldOVPLimit:
		return FieldOCPLimit
	case FieldOCPLimit:
		return FieldOVPEnabled
	case FieldOVPEnabled:
		return FieldOCPEnabled
	case FieldOCPEnabled:
		return FieldMeasure
	default:
		return FieldMeasure
	}
}

// Prev returns the predecessor in the fixed cyclic order; it is the exact
// inverse of Next.
func (f Field) Prev() Field {
	switch f {
	case FieldMeasure:
		return FieldOCPEnabled
	case FieldSetVoltage:
		return FieldMeasure
	case FieldSetCurrent:
		return FieldSetVoltage
	case FieldOVPLimit:
		return FieldSetCurrent
	case FieldOCPLimit:
		return FieldOVPLimit
	case FieldOVPEnabled:
		return FieldOCPLimit
	case FieldOCPEnabled:
		return FieldOVPEnabled
	default:
		return FieldMeasure
	}
}

// ListIndex returns the row this field occupies within its panel list
// (the "Set" list for setpoints, the "Limit" list for protections), and
// false for the measurement block, which is not a list.
func (f Field) ListIndex() (int, bool) {
	switch f {
	case FieldSetVoltage:
		return 0, true
	case FieldSetCurrent:
		return 1, true
	case FieldOVPLimit:
		return 0, true
	case FieldOCPLimit:
		return 1, true
	case FieldOVPEnabled:
		return 2, true
	case FieldOCPEnabled:
		return 3, true
	default:
		return 0, false
	}
}

// Editable reports whether confirming this field opens numeric text entry.
func (f Field) Editable() bool {
	switch f {
	case FieldSetVoltage, FieldSetCurrent, FieldOVPLimit, FieldOCPLimit:
		return true
	default:
		return false
	}
}

// IsToggle reports whether confirming this field flips a protection flag.
func (f Field) IsToggle() bool {
	return f == FieldOVPEnabled || f == FieldOCPEnabled
}

// EntryTitle returns the title of the text-entry panel for an editable field.
func (f Field) EntryTitle() string {
	switch f {
	case FieldSetVoltage:
		return "Voltage Setpoint (V)"
	case FieldSetCurrent:
		return "Current Setpoint (A)"
	case FieldOVPLimit:
		return "Over Voltage Protection (V)"
	case FieldOCPLimit:
		return "Over Current Protection (A)"
	default:
		return ""
	}
}
