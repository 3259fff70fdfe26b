package decode

import (
	"fmt"

	"github.com/madpsy/aisdecode/bitstream"
)

// decodeStaticVoyage reads a type 5 static and voyage data message per
// the exact bit offsets of §4.5.
func decodeStaticVoyage(bits *bitstream.Vector) (*Record, error) {
	rec, err := commonHeader(bits, 5)
	if err != nil {
		return nil, err
	}

	aisVersion, err := bits.Uint(38, 2)
	if err != nil {
		return nil, fmt.Errorf("%w: ais_version: %v", ErrTruncated, err)
	}
	imo, err := bits.Uint(40, 30)
	if err != nil {
		return nil, fmt.Errorf("%w: imo_number: %v", ErrTruncated, err)
	}
	callsign, err := bits.ArmoredString(70, 7)
	if err != nil {
		return nil, fmt.Errorf("%w: callsign: %v", ErrTruncated, err)
	}
	vesselName, err := bits.ArmoredString(112, 20)
	if err != nil {
		return nil, fmt.Errorf("%w: vessel_name: %v", ErrTruncated, err)
	}
	shipType, err := bits.Uint(232, 8)
	if err != nil {
		return nil, fmt.Errorf("%w: ship_type: %v", ErrTruncated, err)
	}
	dimBow, err := bits.Uint(240, 9)
	if err != nil {
		return nil, fmt.Errorf("%w: dim_to_bow: %v", ErrTruncated, err)
	}
	dimStern, err := bits.Uint(249, 9)
	if err != nil {
		return nil, fmt.Errorf("%w: dim_to_stern: %v", ErrTruncated, err)
	}
	dimPort, err := bits.Uint(258, 6)
	if err != nil {
		return nil, fmt.Errorf("%w: dim_to_port: %v", ErrTruncated, err)
	}
	dimStarboard, err := bits.Uint(264, 6)
	if err != nil {
		return nil, fmt.Errorf("%w: dim_to_starboard: %v", ErrTruncated, err)
	}
	epfd, err := bits.Uint(270, 4)
	if err != nil {
		return nil, fmt.Errorf("%w: epfd_fix_type: %v", ErrTruncated, err)
	}
	etaMonth, err := bits.Uint(274, 4)
	if err != nil {
		return nil, fmt.Errorf("%w: eta_month: %v", ErrTruncated, err)
	}
	etaDay, err := bits.Uint(278, 5)
	if err != nil {
		return nil, fmt.Errorf("%w: eta_day: %v", ErrTruncated, err)
	}
	etaHour, err := bits.Uint(283, 5)
	if err != nil {
		return nil, fmt.Errorf("%w: eta_hour: %v", ErrTruncated, err)
	}
	etaMinute, err := bits.Uint(288, 6)
	if err != nil {
		return nil, fmt.Errorf("%w: eta_minute: %v", ErrTruncated, err)
	}
	draught, err := bits.Uint(294, 8)
	if err != nil {
		return nil, fmt.Errorf("%w: draught: %v", ErrTruncated, err)
	}
	destination, err := bits.ArmoredString(302, 20)
	if err != nil {
		return nil, fmt.Errorf("%w: destination: %v", ErrTruncated, err)
	}
	dte, err := bits.Uint(422, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: dte: %v", ErrTruncated, err)
	}

	rec.StaticVoyage = &StaticVoyage{
		AISVersion:     aisVersion,
		IMONumber:      imo,
		Callsign:       callsign,
		VesselName:     vesselName,
		ShipType:       shipType,
		DimToBow:       dimBow,
		DimToStern:     dimStern,
		DimToPort:      dimPort,
		DimToStarboard: dimStarboard,
		EPFDFixType:    epfd,
		ETA:            formatETA(etaMonth, etaDay, etaHour, etaMinute),
		DraughtM:       float64(draught) / 10.0,
		Destination:    destination,
		DTE:            dte == 1,
	}
	return &rec, nil
}

func formatETA(month, day, hour, minute uint64) ETA {
	eta := ETA{Month: month, Day: day, Hour: hour, Minute: minute}
	if month >= 1 && month <= 12 && day >= 1 && day <= 31 && hour <= 23 && minute <= 59 {
		eta.Str = fmt.Sprintf("%02d-%02d %02d:%02d UTC", month, day, hour, minute)
	} else {
		eta.Str = "N/A"
	}
	return eta
}
