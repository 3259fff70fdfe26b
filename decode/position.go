package decode

import (
	"fmt"

	"github.com/madpsy/aisdecode/bitstream"
)

// decodePositionA reads a Class A position report (types 1, 2, 3) per
// the exact bit offsets of §4.5.
func decodePositionA(messageType int, bits *bitstream.Vector) (*Record, error) {
	rec, err := commonHeader(bits, messageType)
	if err != nil {
		return nil, err
	}

	navStatus, err := bits.Uint(38, 4)
	if err != nil {
		return nil, fmt.Errorf("%w: nav_status: %v", ErrTruncated, err)
	}
	rot, err := bits.Int(42, 8)
	if err != nil {
		return nil, fmt.Errorf("%w: rate_of_turn: %v", ErrTruncated, err)
	}
	sog, err := bits.Uint(50, 10)
	if err != nil {
		return nil, fmt.Errorf("%w: sog: %v", ErrTruncated, err)
	}
	accuracy, err := bits.Uint(60, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: pos_accuracy: %v", ErrTruncated, err)
	}
	lon, err := bits.Int(61, 28)
	if err != nil {
		return nil, fmt.Errorf("%w: lon: %v", ErrTruncated, err)
	}
	lat, err := bits.Int(89, 27)
	if err != nil {
		return nil, fmt.Errorf("%w: lat: %v", ErrTruncated, err)
	}
	cog, err := bits.Uint(116, 12)
	if err != nil {
		return nil, fmt.Errorf("%w: cog: %v", ErrTruncated, err)
	}
	heading, err := bits.Uint(128, 9)
	if err != nil {
		return nil, fmt.Errorf("%w: true_heading: %v", ErrTruncated, err)
	}
	timestamp, err := bits.Uint(137, 6)
	if err != nil {
		return nil, fmt.Errorf("%w: timestamp: %v", ErrTruncated, err)
	}
	maneuver, err := bits.Uint(143, 2)
	if err != nil {
		return nil, fmt.Errorf("%w: maneuver: %v", ErrTruncated, err)
	}
	raim, err := bits.Uint(148, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: raim_flag: %v", ErrTruncated, err)
	}
	radio, err := bits.Uint(149, 19)
	if err != nil {
		return nil, fmt.Errorf("%w: radio_status: %v", ErrTruncated, err)
	}

	rec.PositionA = &PositionReportA{
		NavStatus:    navStatus,
		RateOfTurn:   rot,
		SogKnots:     float64(sog) / 10.0,
		PosAccuracy:  accuracy == 1,
		LonDeg:       float64(lon) / 600000.0,
		LatDeg:       float64(lat) / 600000.0,
		CogDeg:       float64(cog) / 10.0,
		TrueHeading:  heading,
		TimestampSec: timestamp,
		Maneuver:     maneuver,
		RaimFlag:     raim == 1,
		RadioStatus:  radio,
	}
	return &rec, nil
}
