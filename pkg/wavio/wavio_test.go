package wavio

import (
	"bytes"
	"math"
	"testing"
)

func sineSamples(n int, freq, fs float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/fs)
	}
	return s
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	const fs = 16000
	want := sineSamples(1000, 220, fs)

	var buf bytes.Buffer
	if err := Encode(&buf, want, fs); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, rate, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if rate != fs {
		t.Fatalf("sample rate = %d, want %d", rate, fs)
	}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1.0/32768 {
			t.Fatalf("sample %d: got %g, want %g", i, got[i], want[i])
		}
	}
}

func TestDecodeStereoMixesToMono(t *testing.T) {
	const fs = 8000
	left := sineSamples(200, 100, fs)
	right := make([]float64, len(left))
	for i := range right {
		right[i] = -left[i]
	}

	interleaved := make([]float64, 2*len(left))
	for i := range left {
		interleaved[2*i] = left[i]
		interleaved[2*i+1] = right[i]
	}

	var buf bytes.Buffer
	writeStereoFixture(t, &buf, interleaved, fs)

	got, rate, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if rate != fs {
		t.Fatalf("sample rate = %d, want %d", rate, fs)
	}
	if len(got) != len(left) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(left))
	}
	for i, v := range got {
		if math.Abs(v) > 1.0/32768 {
			t.Fatalf("frame %d: mixed sample = %g, want ~0 (left cancels right)", i, v)
		}
	}
}

func TestDecodeRejectsMissingRIFFHeader(t *testing.T) {
	if _, _, err := Decode(bytes.NewReader([]byte("not a wav file"))); err == nil {
		t.Fatal("expected error for non-WAV input")
	}
}

func TestDecodeRejectsNonPCMFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, []float64{0, 0.1}, 8000); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	b := buf.Bytes()
	// audioFormat field lives at file offset 20-21, the first field of the
	// fmt chunk's data.
	b[20], b[21] = 3, 0 // IEEE float, not PCM
	if _, _, err := Decode(bytes.NewReader(b)); err == nil {
		t.Fatal("expected error for non-PCM audio format")
	}
}

// writeStereoFixture writes a 2-channel, 16-bit PCM WAV for test input;
// Encode only emits mono, so stereo fixtures are built by hand here.
func writeStereoFixture(t *testing.T, buf *bytes.Buffer, interleaved []float64, fs int) {
	t.Helper()
	numChannels := 2
	dataSize := len(interleaved) * 2
	fileSize := 36 + dataSize

	writeStr := func(s string) { buf.WriteString(s) }
	writeU32 := func(v uint32) {
		var b [4]byte
		b[0], b[1], b[2], b[3] = byte(v), byte(v>>8), byte(v>>16), byte(v>>24)
		buf.Write(b[:])
	}
	writeU16 := func(v uint16) {
		var b [2]byte
		b[0], b[1] = byte(v), byte(v>>8)
		buf.Write(b[:])
	}

	writeStr("RIFF")
	writeU32(uint32(fileSize))
	writeStr("WAVE")
	writeStr("fmt ")
	writeU32(16)
	writeU16(1) // PCM
	writeU16(uint16(numChannels))
	writeU32(uint32(fs))
	writeU32(uint32(fs * numChannels * 2))
	writeU16(uint16(numChannels * 2))
	writeU16(16)
	writeStr("data")
	writeU32(uint32(dataSize))
	for _, s := range interleaved {
		i16 := int16(math.Round(s * 32767))
		writeU16(uint16(i16))
	}
}
