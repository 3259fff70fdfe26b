// Package sixbit implements the AIS 6-bit ASCII armor alphabet used to pack
// binary AIVDM/AIVDO payloads into printable NMEA fields.
package sixbit

// Invalid is returned by Decode for any byte outside the armor alphabet.
const Invalid = -1

// Decode maps a single armored payload character to its 6-bit value
// (0..63), or Invalid if ch is not part of the AIS 6-bit alphabet.
//
// The alphabet is: subtract 48 from the code point; if the result is
// >= 40, subtract a further 8. Valid inputs are '0'..'W' (0..39) and
// '`'..'w' (40..63).
func Decode(ch byte) int {
	if ch < 48 || (ch > 87 && ch < 96) || ch > 119 {
		return Invalid
	}
	val := int(ch) - 48
	if val >= 40 {
		val -= 8
	}
	return val
}
