package voice

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePCM16(t *testing.T) {
	out := EncodePCM16([]float32{0, 1, -1, 1.5, -1.5, 0.5})
	require.Len(t, out, 12)

	sample := func(i int) int16 { return int16(binary.LittleEndian.Uint16(out[2*i:])) }
	assert.Equal(t, int16(0), sample(0))
	assert.Equal(t, int16(0x7FFF), sample(1))
	assert.Equal(t, int16(-0x8000), sample(2))
	assert.Equal(t, int16(0x7FFF), sample(3), "clamped")
	assert.Equal(t, int16(-0x8000), sample(4), "clamped")
	assert.Equal(t, int16(16384), sample(5))
}

func TestEncodePCM16_LosslessForDecodedPCM(t *testing.T) {
	raw := make([]byte, 0, 2*65536)
	for v := math.MinInt16; v <= math.MaxInt16; v++ {
		raw = binary.LittleEndian.AppendUint16(raw, uint16(int16(v)))
	}

	assert.Equal(t, raw, EncodePCM16(DecodePCM16(raw, 1)[0]))
}

func TestDecodePCM16(t *testing.T) {
	data := []byte{0x00, 0x80, 0xff, 0x7f, 0x00, 0x40, 0x01}
	out := DecodePCM16(data, 1)

	require.Len(t, out, 1)
	require.Len(t, out[0], 3, "trailing odd byte ignored")
	assert.Equal(t, float32(-1), out[0][0])
	assert.InDelta(t, 0.99997, out[0][1], 1e-4)
	assert.Equal(t, float32(0.5), out[0][2])
}

func TestDecodePCM16_Stereo(t *testing.T) {
	data := EncodePCM16([]float32{0.5, -0.5, 0.25, -0.25})
	out := DecodePCM16(data, 2)

	require.Len(t, out, 2)
	assert.InDeltaSlice(t, []float32{0.5, 0.25}, out[0], 1e-3)
	assert.InDeltaSlice(t, []float32{-0.5, -0.25}, out[1], 1e-3)
}

func TestBase64RoundTrip(t *testing.T) {
	pcm := EncodePCM16([]float32{0.1, -0.2})
	back, err := DecodeBase64(EncodeBase64(pcm))
	require.NoError(t, err)
	assert.Equal(t, pcm, back)

	_, err = DecodeBase64("***")
	assert.Error(t, err)
}

func TestDuration(t *testing.T) {
	assert.Equal(t, time.Second, Duration(24000, OutputSampleRate))
	assert.Equal(t, 100*time.Millisecond, Duration(1600, InputSampleRate))
	assert.Equal(t, time.Duration(0), Duration(10, 0))
}

func TestScheduler(t *testing.T) {
	var s Scheduler

	assert.Equal(t, time.Duration(0), s.Schedule(0, 100*time.Millisecond))
	assert.Equal(t, 100*time.Millisecond, s.Schedule(20*time.Millisecond, 100*time.Millisecond))
	assert.Equal(t, 200*time.Millisecond, s.Cursor())

	// Playback fell behind; never schedule in the past.
	assert.Equal(t, time.Second, s.Schedule(time.Second, 50*time.Millisecond))

	s.Reset()
	assert.Equal(t, 300*time.Millisecond, s.Schedule(300*time.Millisecond, 10*time.Millisecond))
}
