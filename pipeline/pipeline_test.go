package pipeline

import (
	"errors"
	"testing"

	"github.com/madpsy/aisdecode/decode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSentencePositionReport(t *testing.T) {
	p := New(DefaultConfig())
	rec, err := p.DecodeSentence("!AIVDM,1,1,,A,133m@ogP00PD;88MD5MTDww@2D7k,0*46")
	require.NoError(t, err)
	require.NotNil(t, rec.PositionA)
	assert.Equal(t, "227006760", rec.MMSI)
	assert.Equal(t, decode.Channel('A'), rec.Channel)
	assert.Equal(t, 161975, rec.FreqKHz)
	assert.Equal(t, "02:41:49:87:D9:28", rec.MAC.String())
	assert.InDelta(t, 49.4755, rec.PositionA.LatDeg, 0.001)
}

func TestDecodeSentenceChannelBFrequency(t *testing.T) {
	p := New(DefaultConfig())
	rec, err := p.DecodeSentence("!AIVDM,1,1,,B,133m@ogP00PD;88MD5MTDww@2D7k,0*45")
	require.NoError(t, err)
	assert.Equal(t, 162025, rec.FreqKHz)
}

func TestDecodeSentenceBadChecksum(t *testing.T) {
	p := New(DefaultConfig())
	_, err := p.DecodeSentence("!AIVDM,1,1,,A,133m@ogP00PD;88MD5MTDww@2D7k,0*00")
	assert.ErrorIs(t, err, ErrChecksumFailed)
}

func TestDecodeSentenceUnsupportedType(t *testing.T) {
	// Type 4 (base station report) shares the type-1 payload's first
	// armor character range but has no registered decoder; force type 4
	// by using message type 4's own well-known armor lead-in.
	p := New(DefaultConfig())
	_, err := p.DecodeSentence("!AIVDM,1,1,,A,403OviQv2imFRj1R25EbL4w020S:,0*39")
	var uerr *decode.UnsupportedTypeError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, 4, uerr.Type)
}

func TestDecodeSentenceFragmentedRejectedByDefault(t *testing.T) {
	p := New(DefaultConfig())
	// Second fragment of a two-part type 5 message: fragment_count=2,
	// fragment_number=2.
	_, err := p.DecodeSentence("!AIVDM,2,2,1,A,50000,2*20")
	assert.ErrorIs(t, err, ErrFragmentedUnsupported)
}

func TestDecodeSentenceFragmentedAllowedWhenConfigured(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RequireFragmentReassemblyUpstream = false
	p := New(cfg)
	// Same second fragment: now attempted, but a lone fragment can't
	// reach the fields deep in a type 5 payload, so it truncates.
	_, err := p.DecodeSentence("!AIVDM,2,2,1,A,50000,2*20")
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeParsedJSONWrapsRawSentence(t *testing.T) {
	p := New(DefaultConfig())
	obj := map[string]interface{}{
		"raw_sentence": "!AIVDM,1,1,,A,133m@ogP00PD;88MD5MTDww@2D7k,0*46",
	}
	rec, err := p.DecodeParsedJSON(obj)
	require.NoError(t, err)
	assert.Equal(t, "227006760", rec.MMSI)
}

func TestDecodeParsedJSONDirectSchemaResolvesAliases(t *testing.T) {
	p := New(DefaultConfig())
	obj := map[string]interface{}{
		"message_type": float64(5),
		"mmsi":         "227006760",
		"shipname":     "EVER GIVEN",
		"imo":          float64(9811000),
		"shiptype":     float64(70),
		"eta":          "08-15 14:30 UTC",
	}
	rec, err := p.DecodeParsedJSON(obj)
	require.NoError(t, err)
	require.NotNil(t, rec.StaticVoyage)
	assert.Equal(t, "EVER GIVEN", rec.StaticVoyage.VesselName)
	assert.EqualValues(t, 9811000, rec.StaticVoyage.IMONumber)
	assert.EqualValues(t, 70, rec.StaticVoyage.ShipType)
	assert.Equal(t, "08-15 14:30 UTC", rec.StaticVoyage.ETA.Str)
}

func TestDecodeParsedJSONPositionAliases(t *testing.T) {
	p := New(DefaultConfig())
	obj := map[string]interface{}{
		"message_type": float64(1),
		"mmsi":         "227006760",
		"navstatus":    float64(0),
		"speed":        12.3,
		"course":       45.6,
	}
	rec, err := p.DecodeParsedJSON(obj)
	require.NoError(t, err)
	require.NotNil(t, rec.PositionA)
	assert.EqualValues(t, 0, rec.PositionA.NavStatus)
	assert.InDelta(t, 12.3, rec.PositionA.SogKnots, 0.0001)
	assert.InDelta(t, 45.6, rec.PositionA.CogDeg, 0.0001)
}

func TestDecodeParsedJSONMissingMMSI(t *testing.T) {
	p := New(DefaultConfig())
	_, err := p.DecodeParsedJSON(map[string]interface{}{"message_type": float64(1)})
	assert.ErrorIs(t, err, ErrBadIdentity)
}

func TestDecodeParsedJSONUnsupportedType(t *testing.T) {
	p := New(DefaultConfig())
	_, err := p.DecodeParsedJSON(map[string]interface{}{
		"message_type": float64(21),
		"mmsi":         "227006760",
	})
	var uerr *decode.UnsupportedTypeError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, 21, uerr.Type)
}
