// Package aivdm interprets the split content fields of an AIVDM/AIVDO
// NMEA envelope, without touching the binary AIS payload itself.
package aivdm

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/madpsy/aisdecode/nmea"
)

// ErrNotAivdm is returned when the talker field is neither AIVDM nor AIVDO.
var ErrNotAivdm = errors.New("aivdm: talker is not AIVDM/AIVDO")

// ErrBadFrame is returned when a field is present but malformed.
var ErrBadFrame = errors.New("aivdm: malformed frame field")

// ErrFragmentedUnsupported is returned when the frame is a non-initial
// fragment of a multi-part message; reassembly is delegated to the
// data source.
var ErrFragmentedUnsupported = errors.New("aivdm: non-initial fragment requires upstream reassembly")

// Frame is the interpreted form of an envelope's fields.
type Frame struct {
	Talker          string
	FragmentCount   int
	FragmentNumber  int
	SequentialID    string
	Channel         byte // 'A', 'B', or 0 for unknown
	ArmoredPayload  string
	FillBits        int
}

// FromEnvelope interprets env.Fields per §4.4. requireReassembly
// controls whether a non-initial fragment is rejected (true, the
// default) or passed through for best-effort decoding (false).
func FromEnvelope(env *nmea.Envelope, requireReassembly bool) (*Frame, error) {
	f := env.Fields
	if f[0] != "AIVDM" && f[0] != "AIVDO" {
		return nil, fmt.Errorf("%w: %q", ErrNotAivdm, f[0])
	}

	fragCount, err := strconv.Atoi(f[1])
	if err != nil || fragCount < 1 {
		return nil, fmt.Errorf("%w: fragment_count %q", ErrBadFrame, f[1])
	}
	fragNumber, err := strconv.Atoi(f[2])
	if err != nil || fragNumber < 1 {
		return nil, fmt.Errorf("%w: fragment_number %q", ErrBadFrame, f[2])
	}

	var channel byte
	switch f[4] {
	case "A", "B":
		channel = f[4][0]
	case "":
		channel = 0
	default:
		return nil, fmt.Errorf("%w: channel %q", ErrBadFrame, f[4])
	}

	if f[5] == "" {
		return nil, fmt.Errorf("%w: empty armored payload", ErrBadFrame)
	}

	fillBits := 0
	if len(f) == 7 && f[6] != "" {
		if len(f[6]) == 1 && f[6][0] >= '0' && f[6][0] <= '5' {
			fillBits = int(f[6][0] - '0')
		}
		// any other value is treated as 0 fill bits; the substitution is
		// not reported to the caller
	}

	frame := &Frame{
		Talker:         f[0],
		FragmentCount:  fragCount,
		FragmentNumber: fragNumber,
		SequentialID:   f[3],
		Channel:        channel,
		ArmoredPayload: f[5],
		FillBits:       fillBits,
	}

	if requireReassembly && fragCount > 1 && fragNumber != 1 {
		return frame, ErrFragmentedUnsupported
	}

	return frame, nil
}
