// Package pipeline is the façade that orchestrates envelope validation,
// frame interpretation, bit extraction, message decoding, and identity
// mapping into a single Record per sentence. It is stateless: every call
// owns its own transient bit vector, so concurrent callers need no
// synchronization at this layer.
package pipeline

import (
	"fmt"

	"github.com/madpsy/aisdecode/aivdm"
	"github.com/madpsy/aisdecode/bitstream"
	"github.com/madpsy/aisdecode/decode"
	"github.com/madpsy/aisdecode/identity"
	"github.com/madpsy/aisdecode/nmea"
)

// Re-exported sentinel errors, aliased onto the sub-package values they
// originate from so a caller can errors.Is against this package alone.
var (
	ErrBadEnvelope           = nmea.ErrBadEnvelope
	ErrChecksumFailed        = nmea.ErrChecksumFailed
	ErrNotAivdm              = aivdm.ErrNotAivdm
	ErrBadFrame              = aivdm.ErrBadFrame
	ErrFragmentedUnsupported = aivdm.ErrFragmentedUnsupported
	ErrInvalidArmor          = bitstream.ErrInvalidArmor
	ErrTruncated             = decode.ErrTruncated
	ErrBadIdentity           = identity.ErrBadIdentity
)

// UnsupportedTypeError is returned when the message type has no
// decoder. It is non-fatal to the process, fatal only to the sentence.
type UnsupportedTypeError = decode.UnsupportedTypeError

// Config carries the two documented tunables of §6.
type Config struct {
	// StrictArmor, when true, fails the whole record on an invalid
	// armor character instead of treating it as zero contributed bits.
	StrictArmor bool

	// RequireFragmentReassemblyUpstream, when true (the default),
	// rejects any non-initial fragment of a multi-part message. When
	// false, the fragment is decoded like a complete sentence; if its
	// payload is shorter than the message type's layout, the result is
	// ErrTruncated and no partially filled record is returned.
	RequireFragmentReassemblyUpstream bool
}

// DefaultConfig matches the source's most permissive/most conservative
// combination: non-strict armor, reassembly required upstream.
func DefaultConfig() Config {
	return Config{
		StrictArmor:                       false,
		RequireFragmentReassemblyUpstream: true,
	}
}

// Record is a decoded observation plus the identity and frequency
// metadata the façade attaches after MessageDecoder produces it.
type Record struct {
	*decode.Record
	MAC     identity.MAC `json:"mac"`
	FreqKHz int          `json:"freq_khz"`
}

// Pipeline decodes AIVDM/AIVDO sentences (or their pre-parsed JSON
// equivalent) into Records. It holds no per-vessel state and is safe
// for concurrent use.
type Pipeline struct {
	cfg Config
}

// New constructs a Pipeline with the given configuration.
func New(cfg Config) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// DecodeSentence runs the full envelope -> frame -> bits -> record
// pipeline over one NMEA line.
func (p *Pipeline) DecodeSentence(line string) (*Record, error) {
	env, err := nmea.Parse(line)
	if err != nil {
		return nil, err
	}

	frame, err := aivdm.FromEnvelope(env, p.cfg.RequireFragmentReassemblyUpstream)
	if err != nil {
		return nil, err
	}

	bits, err := bitstream.New(frame.ArmoredPayload, frame.FillBits, p.cfg.StrictArmor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArmor, err)
	}

	messageType, err := decode.DetectType(frame.ArmoredPayload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArmor, err)
	}
	if messageType == 0 {
		return nil, &decode.UnsupportedTypeError{Type: 0}
	}

	rec, err := decode.Dispatch(messageType, bits)
	if err != nil {
		return nil, err
	}
	rec.Channel = decode.Channel(frame.Channel)

	return p.attachIdentity(rec)
}

func (p *Pipeline) attachIdentity(rec *decode.Record) (*Record, error) {
	mac, err := identity.MMSIToMAC(rec.MMSI)
	if err != nil {
		return nil, err
	}
	return &Record{
		Record:  rec,
		MAC:     mac,
		FreqKHz: frequencyForChannel(rec.Channel),
	}, nil
}

// frequencyForChannel returns the AIS VHF channel frequency, defaulting
// to channel A's 161.975 MHz when the channel is unknown.
func frequencyForChannel(channel decode.Channel) int {
	if channel == 'B' {
		return 162025
	}
	return 161975
}
