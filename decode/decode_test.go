package decode

import (
	"errors"
	"math"
	"testing"

	"github.com/madpsy/aisdecode/bitstream"
)

func vectorFromArmor(t *testing.T, armor string, fillBits int) *bitstream.Vector {
	t.Helper()
	v, err := bitstream.New(armor, fillBits, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return v
}

func TestDetectType(t *testing.T) {
	typ, err := DetectType("133m@ogP00PD;88MD5MTDww@2D7k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if typ != 1 {
		t.Fatalf("DetectType = %d, want 1", typ)
	}
}

func TestDetectTypeInvalidArmor(t *testing.T) {
	_, err := DetectType("X")
	if !errors.Is(err, ErrInvalidMessageType) {
		t.Fatalf("expected ErrInvalidMessageType, got %v", err)
	}
}

func TestDispatchUnsupportedType(t *testing.T) {
	bits := vectorFromArmor(t, "133m@ogP00PD;88MD5MTDww@2D7k", 0)
	_, err := Dispatch(4, bits)
	var uerr *UnsupportedTypeError
	if !errors.As(err, &uerr) || uerr.Type != 4 {
		t.Fatalf("expected UnsupportedTypeError{Type:4}, got %v", err)
	}
}

func TestDispatchPositionReportType1(t *testing.T) {
	// !AIVDM,1,1,,A,133m@ogP00PD;88MD5MTDww@2D7k,0*46
	bits := vectorFromArmor(t, "133m@ogP00PD;88MD5MTDww@2D7k", 0)
	rec, err := Dispatch(1, bits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.MessageType != 1 {
		t.Errorf("MessageType = %d, want 1", rec.MessageType)
	}
	if rec.MMSI != "227006760" {
		t.Errorf("MMSI = %q, want 227006760", rec.MMSI)
	}
	if rec.PositionA == nil {
		t.Fatalf("PositionA is nil")
	}
	if math.Abs(rec.PositionA.LatDeg-49.4755) > 0.001 {
		t.Errorf("LatDeg = %f, want ~49.4755", rec.PositionA.LatDeg)
	}
	if math.Abs(rec.PositionA.LonDeg-0.1313) > 0.001 {
		t.Errorf("LonDeg = %f, want ~0.1313", rec.PositionA.LonDeg)
	}
	if rec.PositionA.SogKnots != 0.0 {
		t.Errorf("SogKnots = %f, want 0.0", rec.PositionA.SogKnots)
	}
}

func TestDispatchTruncatedPositionReport(t *testing.T) {
	// A payload far too short to reach the radio_status field.
	bits := vectorFromArmor(t, "13", 0)
	_, err := Dispatch(1, bits)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestFormatETA(t *testing.T) {
	tests := []struct {
		name                       string
		month, day, hour, minute  uint64
		want                       string
	}{
		{name: "all valid", month: 6, day: 15, hour: 14, minute: 30, want: "06-15 14:30 UTC"},
		{name: "month out of range", month: 0, day: 15, hour: 14, minute: 30, want: "N/A"},
		{name: "day out of range", month: 6, day: 32, hour: 14, minute: 30, want: "N/A"},
		{name: "hour reserved", month: 6, day: 15, hour: 24, minute: 30, want: "N/A"},
		{name: "minute reserved", month: 6, day: 15, hour: 14, minute: 60, want: "N/A"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := formatETA(tc.month, tc.day, tc.hour, tc.minute)
			if got.Str != tc.want {
				t.Fatalf("Str = %q, want %q", got.Str, tc.want)
			}
		})
	}
}
