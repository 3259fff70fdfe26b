package nmea

import (
	"errors"
	"testing"
)

func TestParseValidSentence(t *testing.T) {
	line := "!AIVDM,1,1,,A,133m@ogP00PD;88MD5MTDww@2D7k,0*46"
	env, err := Parse(line)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"AIVDM", "1", "1", "", "A", "133m@ogP00PD;88MD5MTDww@2D7k", "0"}
	if len(env.Fields) != len(want) {
		t.Fatalf("Fields = %v, want %v", env.Fields, want)
	}
	for i := range want {
		if env.Fields[i] != want[i] {
			t.Fatalf("Fields[%d] = %q, want %q", i, env.Fields[i], want[i])
		}
	}
}

func TestParseBadChecksum(t *testing.T) {
	line := "!AIVDM,1,1,,A,133m@ogP00PD;88MD5MTDww@2D7k,0*00"
	_, err := Parse(line)
	if !errors.Is(err, ErrChecksumFailed) {
		t.Fatalf("expected ErrChecksumFailed, got %v", err)
	}
}

func TestParseMissingBang(t *testing.T) {
	_, err := Parse("AIVDM,1,1,,A,133m,0*00")
	if !errors.Is(err, ErrBadEnvelope) {
		t.Fatalf("expected ErrBadEnvelope, got %v", err)
	}
}

func TestParseMissingStar(t *testing.T) {
	_, err := Parse("!AIVDM,1,1,,A,133m,0")
	if !errors.Is(err, ErrBadEnvelope) {
		t.Fatalf("expected ErrBadEnvelope, got %v", err)
	}
}

func TestParseFieldCountAcceptsSixOrSeven(t *testing.T) {
	// Six content fields (no fill-bit field) still checksums correctly
	// against its own content.
	line := buildSentence(t, []string{"AIVDM", "1", "1", "", "A", "abc"})
	env, err := Parse(line)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.Fields) != 6 {
		t.Fatalf("Fields len = %d, want 6", len(env.Fields))
	}
}

func TestParseFieldCountRejectsTooFew(t *testing.T) {
	line := buildSentence(t, []string{"AIVDM", "1", "1", "A"})
	_, err := Parse(line)
	if !errors.Is(err, ErrBadEnvelope) {
		t.Fatalf("expected ErrBadEnvelope, got %v", err)
	}
}

func buildSentence(t *testing.T, fields []string) string {
	t.Helper()
	content := ""
	for i, f := range fields {
		if i > 0 {
			content += ","
		}
		content += f
	}
	var sum byte
	for i := 0; i < len(content); i++ {
		sum ^= content[i]
	}
	const hex = "0123456789ABCDEF"
	hi, lo := hex[sum>>4], hex[sum&0xF]
	return "!" + content + "*" + string(hi) + string(lo)
}
