package decode

import (
	"errors"
	"fmt"

	"github.com/madpsy/aisdecode/bitstream"
	"github.com/madpsy/aisdecode/sixbit"
)

// ErrInvalidMessageType is returned when the leading 6 bits of the
// armored payload cannot be decoded through the 6-bit alphabet.
var ErrInvalidMessageType = errors.New("decode: could not determine message type from payload")

// ErrTruncated is returned when a decoder needs bits beyond the end of
// the payload for the declared message type.
var ErrTruncated = errors.New("decode: payload truncated for declared message type")

// DetectType computes the AIS message type from the first character of
// an armored payload, per §4.5: the type is literally the value of the
// leading 6 bits.
func DetectType(armoredPayload string) (int, error) {
	if len(armoredPayload) == 0 {
		return 0, fmt.Errorf("%w: empty payload", ErrInvalidMessageType)
	}
	val := sixbit.Decode(armoredPayload[0])
	if val == sixbit.Invalid {
		return 0, fmt.Errorf("%w: invalid armor byte %q", ErrInvalidMessageType, armoredPayload[0])
	}
	return val, nil
}

// Dispatch decodes bits into a Record according to messageType. Types
// 1/2/3 route to decodePositionA, type 5 to decodeStaticVoyage; any
// other type yields *UnsupportedTypeError.
func Dispatch(messageType int, bits *bitstream.Vector) (*Record, error) {
	switch {
	case messageType == 1 || messageType == 2 || messageType == 3:
		return decodePositionA(messageType, bits)
	case messageType == 5:
		return decodeStaticVoyage(bits)
	default:
		return nil, &UnsupportedTypeError{Type: messageType}
	}
}

func commonHeader(bits *bitstream.Vector, messageType int) (Record, error) {
	repeat, err := bits.Uint(6, 2)
	if err != nil {
		return Record{}, fmt.Errorf("%w: repeat_indicator: %v", ErrTruncated, err)
	}
	mmsi, err := bits.Uint(8, 30)
	if err != nil {
		return Record{}, fmt.Errorf("%w: mmsi: %v", ErrTruncated, err)
	}
	return Record{
		MessageType:     messageType,
		RepeatIndicator: int(repeat),
		MMSI:            fmt.Sprintf("%09d", mmsi),
	}, nil
}
