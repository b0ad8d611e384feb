package scpi

import "testing"

func TestParseMeasurement(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Measurement
		wantErr bool
	}{
		{
			name: "typical reading",
			line: "1.234,5.678,9.012",
			want: Measurement{Voltage: 1.234, Current: 5.678, Power: 9.012},
		},
		{
			name: "zero output",
			line: "0.000,0.000,0.000",
			want: Measurement{},
		},
		{
			name:    "too few fields",
			line:    "1.234,5.678",
			wantErr: true,
		},
		{
			name:    "too many fields",
			line:    "1.0,2.0,3.0,4.0",
			wantErr: true,
		},
		{
			name:    "non-numeric field",
			line:    "1.234,abc,9.012",
			wantErr: true,
		},
		{
			name:    "empty line",
			line:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMeasurement(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMeasurement(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseMeasurement(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseIdentify(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Identify
		wantErr bool
	}{
		{
			name: "dp832 identity",
			line: "RIGOL TECHNOLOGIES,DP832,DP8C123456789,00.01.14",
			want: Identify{
				Manufacturer: "RIGOL TECHNOLOGIES",
				Model:        "DP832",
				Serial:       "DP8C123456789",
				Firmware:     "00.01.14",
			},
		},
		{
			name:    "too few fields",
			line:    "RIGOL TECHNOLOGIES,DP832,DP8C123456789",
			wantErr: true,
		},
		{
			name:    "empty line",
			line:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIdentify(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseIdentify(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseIdentify(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseToggle(t *testing.T) {
	tests := []struct {
		line    string
		want    bool
		wantErr bool
	}{
		{line: "ON", want: true},
		{line: "OFF", want: false},
		{line: "MAYBE", wantErr: true},
		{line: "on", wantErr: true},
		{line: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := parseToggle(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseToggle(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("parseToggle(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestFormatToggle(t *testing.T) {
	if got := formatToggle(true); got != "ON" {
		t.Errorf("formatToggle(true) = %q, want ON", got)
	}
	if got := formatToggle(false); got != "OFF" {
		t.Errorf("formatToggle(false) = %q, want OFF", got)
	}
}

func TestToggleRoundTrip(t *testing.T) {
	for _, on := range []bool{true, false} {
		got, err := parseToggle(formatToggle(on))
		if err != nil {
			t.Fatalf("parseToggle(formatToggle(%v)) error = %v", on, err)
		}
		if got != on {
			t.Errorf("toggle round trip changed %v to %v", on, got)
		}
	}
}
