// Package identity maps a decoded MMSI onto a deterministic MAC-48
// address, giving the outer device tracker a stable link-layer key.
package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadIdentity is returned when the MMSI string is not exactly nine
// decimal digits.
var ErrBadIdentity = errors.New("identity: mmsi is not a 9-digit decimal string")

// MAC is a 48-bit link-layer address.
type MAC [6]byte

// String formats the MAC in the conventional colon-separated hex form.
func (m MAC) String() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", m[0], m[1], m[2], m[3], m[4], m[5])
}

// MarshalJSON renders the MAC as its conventional string form rather
// than a raw byte array.
func (m MAC) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON parses the conventional colon-separated hex form back
// into a MAC, the inverse of MarshalJSON.
func (m *MAC) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		return fmt.Errorf("identity: malformed MAC %q", s)
	}
	var out MAC
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 16, 8)
		if err != nil {
			return fmt.Errorf("identity: malformed MAC %q: %w", s, err)
		}
		out[i] = byte(v)
	}
	*m = out
	return nil
}

// MMSIToMAC maps a 9-digit MMSI decimal string to a MAC-48 address.
// The first byte marks the address as locally administered; the next
// two spell out "AI" to namespace the address to this AIS decoder; the
// low 24 bits of the MMSI fill the remainder. Because the MMSI only
// occupies 30 bits, the mapping is not globally injective, but it is
// stable per MMSI, which is all that's needed to key observations
// within the AIS namespace.
func MMSIToMAC(mmsi string) (MAC, error) {
	if len(mmsi) != 9 {
		return MAC{}, fmt.Errorf("%w: length %d", ErrBadIdentity, len(mmsi))
	}
	val, err := strconv.ParseUint(mmsi, 10, 32)
	if err != nil {
		return MAC{}, fmt.Errorf("%w: %v", ErrBadIdentity, err)
	}

	return MAC{
		0x02,
		0x41,
		0x49,
		byte(val >> 16),
		byte(val >> 8),
		byte(val),
	}, nil
}
