// Package decode turns a validated AIS bit vector into a typed Record,
// per the field maps for message types 1/2/3 (Class A position report)
// and 5 (static and voyage data).
package decode

import (
	"encoding/json"
	"fmt"
)

// Channel is the AIS VHF channel a sentence was heard on: 'A', 'B', or
// 0 for unknown. It marshals as a one-character JSON string rather
// than the numeric byte value.
type Channel byte

// String renders the channel as its single character, or "" when unknown.
func (c Channel) String() string {
	if c == 0 {
		return ""
	}
	return string(rune(c))
}

// MarshalJSON renders the channel as a one-character string, or an
// empty string when unknown.
func (c Channel) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON parses a one-character channel string back into a
// Channel, the inverse of MarshalJSON.
func (c *Channel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch len(s) {
	case 0:
		*c = 0
	case 1:
		*c = Channel(s[0])
	default:
		return fmt.Errorf("decode: malformed channel %q", s)
	}
	return nil
}

// Record is the common header shared by every supported message type,
// plus at most one populated body variant.
type Record struct {
	MessageType     int     `json:"message_type"`
	RepeatIndicator int     `json:"repeat_indicator"`
	MMSI            string  `json:"mmsi"` // always 9 digits, zero-padded
	Channel         Channel `json:"channel,omitempty"`

	PositionA    *PositionReportA `json:"position,omitempty"`
	StaticVoyage *StaticVoyage    `json:"static_voyage,omitempty"`
}

// PositionReportA is the body of message types 1, 2 and 3.
type PositionReportA struct {
	NavStatus    uint64  `json:"nav_status"`
	RateOfTurn   int64   `json:"rate_of_turn"`
	SogKnots     float64 `json:"sog_knots"`
	PosAccuracy  bool    `json:"pos_accuracy"`
	LonDeg       float64 `json:"lon_deg"`
	LatDeg       float64 `json:"lat_deg"`
	CogDeg       float64 `json:"cog_deg"`
	TrueHeading  uint64  `json:"true_heading_deg"`
	TimestampSec uint64  `json:"timestamp_sec"`
	Maneuver     uint64  `json:"maneuver"`
	RaimFlag     bool    `json:"raim_flag"`
	RadioStatus  uint64  `json:"radio_status"`
}

// ETA is the raw voyage estimated-time-of-arrival, plus a formatted
// string when every component is in range.
type ETA struct {
	Month  uint64 `json:"month"`
	Day    uint64 `json:"day"`
	Hour   uint64 `json:"hour"`
	Minute uint64 `json:"minute"`
	Str    string `json:"str"` // "MM-DD HH:MM UTC", or "N/A"
}

// StaticVoyage is the body of message type 5.
type StaticVoyage struct {
	AISVersion     uint64  `json:"ais_version"`
	IMONumber      uint64  `json:"imo_number"`
	Callsign       string  `json:"callsign"`
	VesselName     string  `json:"vessel_name"`
	ShipType       uint64  `json:"ship_type"`
	DimToBow       uint64  `json:"dim_to_bow"`
	DimToStern     uint64  `json:"dim_to_stern"`
	DimToPort      uint64  `json:"dim_to_port"`
	DimToStarboard uint64  `json:"dim_to_starboard"`
	EPFDFixType    uint64  `json:"epfd_fix_type"`
	ETA            ETA     `json:"eta"`
	DraughtM       float64 `json:"draught_m"`
	Destination    string  `json:"destination"`
	DTE            bool    `json:"dte"`
}

// UnsupportedTypeError reports a message type that has no decoder.
// It is not fatal to the process, only to the sentence that carried it.
type UnsupportedTypeError struct {
	Type int
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("decode: unsupported message type %d", e.Type)
}
