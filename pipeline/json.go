package pipeline

import (
	"fmt"

	"github.com/madpsy/aisdecode/decode"
)

// rawSentenceKeys lists, in priority order, the wrapper keys under which
// a pre-parsed JSON object may still carry the original NMEA line. The
// first one present and non-empty wins.
var rawSentenceKeys = []string{"raw_sentence", "raw", "line", "sentence"}

// DecodeParsedJSON accepts a generic JSON object (as produced by
// encoding/json.Unmarshal into map[string]interface{}) and returns a
// Record. If the object still carries a raw NMEA line under one of the
// documented wrapper keys, that line is decoded through DecodeSentence.
// Otherwise the object is treated as an already-decoded record and its
// fields are read directly, resolving the documented aliases.
func (p *Pipeline) DecodeParsedJSON(obj map[string]interface{}) (*Record, error) {
	for _, key := range rawSentenceKeys {
		if line, ok := getString(obj, key); ok && line != "" {
			return p.DecodeSentence(line)
		}
	}

	mmsi, ok := mmsiField(obj, "mmsi")
	if !ok {
		return nil, fmt.Errorf("%w: missing mmsi", ErrBadIdentity)
	}

	messageType, ok := getInt(obj, "message_type")
	if !ok {
		return nil, fmt.Errorf("%w: missing message_type", ErrTruncated)
	}

	rec := &decode.Record{
		MessageType: int(messageType),
		MMSI:        mmsi,
	}
	if ri, ok := getInt(obj, "repeat_indicator"); ok {
		rec.RepeatIndicator = int(ri)
	}
	if ch, ok := getString(obj, "channel"); ok && len(ch) == 1 {
		rec.Channel = decode.Channel(ch[0])
	}

	switch rec.MessageType {
	case 1, 2, 3:
		rec.PositionA = positionFromJSON(obj)
	case 5:
		rec.StaticVoyage = staticVoyageFromJSON(obj)
	default:
		return nil, &decode.UnsupportedTypeError{Type: rec.MessageType}
	}

	return p.attachIdentity(rec)
}

func positionFromJSON(obj map[string]interface{}) *decode.PositionReportA {
	body := &decode.PositionReportA{}
	if v, ok := firstInt(obj, "nav_status", "navstatus"); ok {
		body.NavStatus = uint64(v)
	}
	if v, ok := getInt(obj, "rate_of_turn"); ok {
		body.RateOfTurn = v
	}
	if v, ok := firstFloat(obj, "sog_knots", "speed"); ok {
		body.SogKnots = v
	}
	if v, ok := getBool(obj, "pos_accuracy"); ok {
		body.PosAccuracy = v
	}
	if v, ok := getFloat(obj, "lon_deg"); ok {
		body.LonDeg = v
	}
	if v, ok := getFloat(obj, "lat_deg"); ok {
		body.LatDeg = v
	}
	if v, ok := firstFloat(obj, "cog_deg", "course"); ok {
		body.CogDeg = v
	}
	if v, ok := getInt(obj, "true_heading"); ok {
		body.TrueHeading = uint64(v)
	}
	if v, ok := getInt(obj, "timestamp_sec"); ok {
		body.TimestampSec = uint64(v)
	}
	if v, ok := getInt(obj, "maneuver"); ok {
		body.Maneuver = uint64(v)
	}
	if v, ok := getBool(obj, "raim_flag"); ok {
		body.RaimFlag = v
	}
	if v, ok := getInt(obj, "radio_status"); ok {
		body.RadioStatus = uint64(v)
	}
	return body
}

func staticVoyageFromJSON(obj map[string]interface{}) *decode.StaticVoyage {
	body := &decode.StaticVoyage{}
	if v, ok := getInt(obj, "ais_version"); ok {
		body.AISVersion = uint64(v)
	}
	if v, ok := firstInt(obj, "imo_number", "imo"); ok {
		body.IMONumber = uint64(v)
	}
	if v, ok := getString(obj, "callsign"); ok {
		body.Callsign = v
	}
	if v, ok := firstString(obj, "vessel_name", "shipname", "name"); ok {
		body.VesselName = v
	}
	if v, ok := firstInt(obj, "ship_type", "shiptype"); ok {
		body.ShipType = uint64(v)
	}
	if v, ok := getInt(obj, "dim_to_bow"); ok {
		body.DimToBow = uint64(v)
	}
	if v, ok := getInt(obj, "dim_to_stern"); ok {
		body.DimToStern = uint64(v)
	}
	if v, ok := getInt(obj, "dim_to_port"); ok {
		body.DimToPort = uint64(v)
	}
	if v, ok := getInt(obj, "dim_to_starboard"); ok {
		body.DimToStarboard = uint64(v)
	}
	if v, ok := getInt(obj, "epfd_fix_type"); ok {
		body.EPFDFixType = uint64(v)
	}
	if v, ok := firstString(obj, "eta", "eta_str"); ok {
		body.ETA = decode.ETA{Str: v}
	} else {
		body.ETA = decode.ETA{Str: "N/A"}
	}
	if v, ok := getFloat(obj, "draught_m"); ok {
		body.DraughtM = v
	}
	if v, ok := getString(obj, "destination"); ok {
		body.Destination = v
	}
	if v, ok := getBool(obj, "dte"); ok {
		body.DTE = v
	}
	return body
}

// mmsiField reads the mmsi key, accepting either a JSON string (used
// verbatim) or a JSON number (zero-padded to nine digits).
func mmsiField(obj map[string]interface{}, key string) (string, bool) {
	raw, present := obj[key]
	if !present {
		return "", false
	}
	switch v := raw.(type) {
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	case float64:
		return fmt.Sprintf("%09d", int64(v)), true
	default:
		return "", false
	}
}

func getString(obj map[string]interface{}, key string) (string, bool) {
	v, ok := obj[key].(string)
	return v, ok
}

func firstString(obj map[string]interface{}, keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := getString(obj, key); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func getFloat(obj map[string]interface{}, key string) (float64, bool) {
	v, ok := obj[key].(float64)
	return v, ok
}

func firstFloat(obj map[string]interface{}, keys ...string) (float64, bool) {
	for _, key := range keys {
		if v, ok := getFloat(obj, key); ok {
			return v, true
		}
	}
	return 0, false
}

func getInt(obj map[string]interface{}, key string) (int64, bool) {
	v, ok := obj[key].(float64)
	if !ok {
		return 0, false
	}
	return int64(v), true
}

func firstInt(obj map[string]interface{}, keys ...string) (int64, bool) {
	for _, key := range keys {
		if v, ok := getInt(obj, key); ok {
			return v, true
		}
	}
	return 0, false
}

func getBool(obj map[string]interface{}, key string) (bool, bool) {
	v, ok := obj[key].(bool)
	return v, ok
}
