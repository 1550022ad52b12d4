// Package wavio decodes and encodes 16-bit PCM WAV audio, the one
// concrete audio format cmd/swipe's CLI shell needs to hand the core a
// mono float64 signal. The pitch core stays codec-agnostic — pkg/pitch
// never imports this package.
package wavio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Header holds the metadata a Decode call recovers from a WAV file's fmt
// chunk.
type Header struct {
	SampleRate    int
	NumChannels   int
	BitsPerSample int
}

// Decode parses a 16-bit PCM WAV stream, returning samples normalized to
// [-1, 1] and the file's sample rate. Stereo input is mixed down to mono
// by averaging the channels.
func Decode(r io.Reader) ([]float64, int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("wavio: read: %w", err)
	}
	return decodeBytes(data)
}

func decodeBytes(data []byte) ([]float64, int, error) {
	if len(data) < 12 {
		return nil, 0, errors.New("wavio: file too short")
	}
	if string(data[0:4]) != "RIFF" {
		return nil, 0, errors.New("wavio: missing RIFF header")
	}
	if string(data[8:12]) != "WAVE" {
		return nil, 0, errors.New("wavio: missing WAVE identifier")
	}

	var header *Header
	var pcmData []byte

	pos := 12
	for pos+8 <= len(data) {
		chunkID := string(data[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		chunkStart := pos + 8

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 || chunkStart+16 > len(data) {
				return nil, 0, errors.New("wavio: fmt chunk too small or truncated")
			}
			audioFormat := binary.LittleEndian.Uint16(data[chunkStart : chunkStart+2])
			if audioFormat != 1 {
				return nil, 0, fmt.Errorf("wavio: unsupported audio format %d (only PCM/1 supported)", audioFormat)
			}
			header = &Header{
				NumChannels:   int(binary.LittleEndian.Uint16(data[chunkStart+2 : chunkStart+4])),
				SampleRate:    int(binary.LittleEndian.Uint32(data[chunkStart+4 : chunkStart+8])),
				BitsPerSample: int(binary.LittleEndian.Uint16(data[chunkStart+14 : chunkStart+16])),
			}
			if header.BitsPerSample != 16 {
				return nil, 0, fmt.Errorf("wavio: unsupported bits per sample %d (only 16 supported)", header.BitsPerSample)
			}
		case "data":
			end := chunkStart + chunkSize
			if end > len(data) {
				end = len(data) // allow a truncated final data chunk
			}
			pcmData = data[chunkStart:end]
		}

		pos = chunkStart + chunkSize
		if chunkSize%2 != 0 {
			pos++ // chunks are word-aligned
		}
	}

	if header == nil {
		return nil, 0, errors.New("wavio: no fmt chunk found")
	}
	if pcmData == nil {
		return nil, 0, errors.New("wavio: no data chunk found")
	}
	if header.NumChannels < 1 {
		return nil, 0, errors.New("wavio: invalid channel count")
	}

	numSamples := len(pcmData) / 2
	raw := make([]float64, numSamples)
	for i := range raw {
		s := int16(binary.LittleEndian.Uint16(pcmData[i*2 : i*2+2]))
		raw[i] = float64(s) / 32768.0
	}

	if header.NumChannels == 1 {
		return raw, header.SampleRate, nil
	}

	frames := numSamples / header.NumChannels
	mono := make([]float64, frames)
	for i := range mono {
		var sum float64
		for c := 0; c < header.NumChannels; c++ {
			sum += raw[i*header.NumChannels+c]
		}
		mono[i] = sum / float64(header.NumChannels)
	}
	return mono, header.SampleRate, nil
}

// Encode writes mono samples (expected in [-1, 1]; out-of-range values are
// clamped) as a 16-bit PCM mono WAV stream at sampleRate.
func Encode(w io.Writer, samples []float64, sampleRate int) error {
	dataSize := len(samples) * 2
	fileSize := 36 + dataSize

	buf := bytes.NewBuffer(make([]byte, 0, 44+dataSize))
	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, uint32(fileSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(buf, binary.LittleEndian, uint16(1)) // mono
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate*2)) // byte rate
	_ = binary.Write(buf, binary.LittleEndian, uint16(2))            // block align
	_ = binary.Write(buf, binary.LittleEndian, uint16(16))           // bits per sample

	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, uint32(dataSize))

	for _, s := range samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		var i16 int16
		if s >= 0 {
			i16 = int16(math.Round(s * 32767))
		} else {
			i16 = int16(math.Round(s * 32768))
		}
		_ = binary.Write(buf, binary.LittleEndian, i16)
	}

	_, err := w.Write(buf.Bytes())
	return err
}
