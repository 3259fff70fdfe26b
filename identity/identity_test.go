package identity

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestMMSIToMAC(t *testing.T) {
	mac, err := MMSIToMAC("227006760")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "02:41:49:87:D9:28"
	if mac.String() != want {
		t.Fatalf("MAC = %s, want %s", mac.String(), want)
	}
}

func TestMMSIToMACDeterministic(t *testing.T) {
	a, err := MMSIToMAC("123456789")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := MMSIToMAC("123456789")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Fatalf("MMSIToMAC not deterministic: %v != %v", a, b)
	}
	if a[0] != 0x02 || a[1] != 0x41 || a[2] != 0x49 {
		t.Fatalf("MAC OUI = %02X:%02X:%02X, want 02:41:49", a[0], a[1], a[2])
	}
}

func TestMMSIToMACRejectsWrongLength(t *testing.T) {
	_, err := MMSIToMAC("12345")
	if !errors.Is(err, ErrBadIdentity) {
		t.Fatalf("expected ErrBadIdentity, got %v", err)
	}
}

func TestMMSIToMACRejectsNonNumeric(t *testing.T) {
	_, err := MMSIToMAC("22700abcd")
	if !errors.Is(err, ErrBadIdentity) {
		t.Fatalf("expected ErrBadIdentity, got %v", err)
	}
}

func TestMACJSONRoundTrip(t *testing.T) {
	mac, err := MMSIToMAC("227006760")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := json.Marshal(mac)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"02:41:49:87:D9:28"` {
		t.Fatalf("Marshal = %s, want quoted MAC string", data)
	}
	var round MAC
	if err := json.Unmarshal(data, &round); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if round != mac {
		t.Fatalf("round-trip MAC = %v, want %v", round, mac)
	}
}
