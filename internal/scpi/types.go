package scpi

import (
	"fmt"
	"strconv"
	"strings"
)

// Measurement is one combined reading of a channel's output terminals,
// as returned by the :MEAS:ALL? query.
type Measurement struct {
	// Voltage in volts
	Voltage float32
	// Current in amps
	Current float32
	// Power in watts
	Power float32
}

// ParseMeasurement parses a ":MEAS:ALL?" response line of the form
// "1.234,0.100,0.123" (volts, amps, watts). Exactly three numeric fields
// are required.
func ParseMeasurement(line string) (Measurement, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 3 {
		return Measurement{}, fmt.Errorf("expected 3 fields, got %d in %q", len(fields), line)
	}

	var values [3]float32
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return Measurement{}, fmt.Errorf("field %d of %q is not numeric", i+1, line)
		}
		values[i] = float32(v)
	}

	return Measurement{
		Voltage: values[0],
		Current: values[1],
		Power:   values[2],
	}, nil
}

// Identify holds the instrument identification strings returned by *IDN?.
type Identify struct {
	// Manufacturer name (e.g. "RIGOL TECHNOLOGIES")
	Manufacturer string
	// Instrument model (e.g. "DP832")
	Model string
	// Instrument serial number
	Serial string
	// Digital board firmware version
	Firmware string
}

// String returns a single-line summary of the instrument identity.
func (id Identify) String() string {
	return fmt.Sprintf("%s %s (serial %s, firmware %s)", id.Manufacturer, id.Model, id.Serial, id.Firmware)
}

// ParseIdentify parses a "*IDN?" response line of the form
// "MANUFACTURER,MODEL,SERIAL,VERSION". Exactly four fields are required.
func ParseIdentify(line string) (Identify, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 4 {
		return Identify{}, fmt.Errorf("expected 4 fields, got %d in %q", len(fields), line)
	}
	return Identify{
		Manufacturer: fields[0],
		Model:        fields[1],
		Serial:       fields[2],
		Firmware:     fields[3],
	}, nil
}

// parseToggle converts the instrument's "ON"/"OFF" tokens to a bool.
// Any other token is a parse failure; the conversion is total.
func parseToggle(line string) (bool, error) {
	switch line {
	case "ON":
		return true, nil
	case "OFF":
		return false, nil
	default:
		return false, fmt.Errorf("expected ON or OFF, got %q", line)
	}
}

// formatToggle is the inverse of parseToggle.
func formatToggle(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}
