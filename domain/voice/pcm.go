package voice

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

const (
	// InputSampleRate is what the speech endpoint expects from the microphone.
	InputSampleRate = 16000
	// OutputSampleRate is what the speech endpoint sends back.
	OutputSampleRate = 24000

	InputMIMEType = "audio/pcm;rate=16000"
)

// EncodePCM16 converts float samples to 16-bit little-endian PCM. It is the
// inverse of DecodePCM16: samples scale by 32768 and clamp to the int16 range,
// so decoded PCM16 re-encodes to the same bytes.
func EncodePCM16(samples []float32) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		v := float64(s) * 32768
		switch {
		case v > math.MaxInt16:
			v = math.MaxInt16
		case v < math.MinInt16:
			v = math.MinInt16
		}
		binary.LittleEndian.PutUint16(out[2*i:], uint16(int16(v)))
	}
	return out
}

// DecodePCM16 splits interleaved 16-bit little-endian PCM into one float
// slice per channel, each sample divided by 32768. A trailing partial frame
// is ignored.
func DecodePCM16(data []byte, channels int) [][]float32 {
	if channels < 1 {
		channels = 1
	}
	frames := len(data) / 2 / channels
	out := make([][]float32, channels)
	for ch := range out {
		out[ch] = make([]float32, frames)
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			off := 2 * (i*channels + ch)
			v := int16(binary.LittleEndian.Uint16(data[off:]))
			out[ch][i] = float32(v) / 32768.0
		}
	}
	return out
}

// EncodeBase64 is the text form audio takes inside JSON messages.
func EncodeBase64(pcm []byte) string {
	return base64.StdEncoding.EncodeToString(pcm)
}

func DecodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decoding audio: %w", err)
	}
	return b, nil
}

// Duration is how long samples last at rate.
func Duration(samples, rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Duration(samples) * time.Second / time.Duration(rate)
}
