package protocol

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/fingermark/internal/timeutil"
	"github.com/banshee-data/fingermark/internal/transport"
)

func newTestReader(port transport.Port) *transport.Reader {
	clock := timeutil.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return transport.NewReader(port, clock)
}

func TestChecksumReferenceValue(t *testing.T) {
	t.Parallel()

	// DownChar to buffer 1: identifier 0x01, length 4, payload {0x09, 0x01}.
	// 0x01 + 0x04 + 0x09 + 0x01 = 0x0F.
	sum := Checksum(KindCommand, []byte{CmdDownChar, 0x01})
	assert.Equal(t, uint16(0x0F), sum)
}

func TestChecksumTruncatesTo16Bits(t *testing.T) {
	t.Parallel()

	payload := make([]byte, 300)
	for i := range payload {
		payload[i] = 0xFF
	}
	sum := Checksum(KindData, payload)

	want := uint32(KindData) + uint32(len(payload)+LengthOverhead)
	for range payload {
		want += 0xFF
	}
	assert.Equal(t, uint16(want&0xFFFF), sum)
}

func TestMarshalFrameLayout(t *testing.T) {
	t.Parallel()

	frame, err := Marshal(DefaultAddress, Packet{Kind: KindCommand, Payload: []byte{CmdDownChar, 0x01}})
	require.NoError(t, err)

	want := []byte{
		0xEF, 0x01, // header
		0xFF, 0xFF, 0xFF, 0xFF, // address
		0x01,       // identifier
		0x00, 0x04, // length = payload + checksum
		0x09, 0x01, // payload
		0x00, 0x0F, // checksum
	}
	if diff := cmp.Diff(want, frame); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalRejectsOversizedPayload(t *testing.T) {
	t.Parallel()

	_, err := Marshal(DefaultAddress, Packet{Kind: KindData, Payload: make([]byte, MaxPayload+1)})
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestWriteDrainsPort(t *testing.T) {
	t.Parallel()

	port := transport.NewMockPort()
	err := Write(port, DefaultAddress, Packet{Kind: KindCommand, Payload: []byte{CmdMatch}})
	require.NoError(t, err)
	assert.Equal(t, 1, port.DrainCalls)
	assert.Len(t, port.WrittenData(), 12) // 9 byte header block + 1 payload + 2 checksum
}

func TestWriteWithoutPort(t *testing.T) {
	t.Parallel()

	err := Write(nil, DefaultAddress, Packet{Kind: KindCommand})
	assert.ErrorIs(t, err, transport.ErrNoPort)
}

func TestReadRoundTrip(t *testing.T) {
	t.Parallel()

	payloads := [][]byte{
		nil,
		{0x00},
		{0x09, 0x02},
		make([]byte, 128),
		make([]byte, 253),
	}
	for _, payload := range payloads {
		for _, kind := range []byte{KindCommand, KindData, KindAck, KindEndData} {
			frame, err := Marshal(DefaultAddress, Packet{Kind: kind, Payload: payload})
			require.NoError(t, err)

			port := transport.NewMockPort()
			port.AddReadData(frame)

			pkt, err := Read(newTestReader(port))
			require.NoError(t, err)
			assert.Equal(t, kind, pkt.Kind)
			assert.Equal(t, len(payload), len(pkt.Payload))
			assert.Equal(t, append([]byte(nil), payload...), append([]byte(nil), pkt.Payload...))
		}
	}
}

func TestReadInvalidHeader(t *testing.T) {
	t.Parallel()

	port := transport.NewMockPort()
	port.AddReadData([]byte{0xDE, 0xAD, 0xFF, 0xFF, 0xFF, 0xFF, 0x07, 0x00, 0x03, 0x00, 0x00, 0x0A})

	_, err := Read(newTestReader(port))
	assert.ErrorIs(t, err, ErrInvalidHeader)
}

func TestReadNoPacketOnSilentLine(t *testing.T) {
	t.Parallel()

	port := transport.NewMockPort()
	_, err := Read(newTestReader(port))
	assert.ErrorIs(t, err, ErrNoPacket)
}

func TestReadNoPacketOnLoneHeaderByte(t *testing.T) {
	t.Parallel()

	// A first header byte with nothing after it is still "no packet":
	// the original decoder treats a timeout on either header byte the same.
	port := transport.NewMockPort()
	port.AddReadData([]byte{0xEF})

	_, err := Read(newTestReader(port))
	assert.ErrorIs(t, err, ErrNoPacket)
}

func TestReadTimeoutMidFrame(t *testing.T) {
	t.Parallel()

	// Frame breaks off inside the payload: hard timeout, not ErrNoPacket.
	frame, err := Marshal(DefaultAddress, Packet{Kind: KindData, Payload: []byte{1, 2, 3, 4}})
	require.NoError(t, err)

	port := transport.NewMockPort()
	port.AddReadData(frame[:11])

	_, err = Read(newTestReader(port))
	require.Error(t, err)
	assert.ErrorIs(t, err, transport.ErrReadTimeout)
	assert.NotErrorIs(t, err, ErrNoPacket)
}

func TestReadRejectsShortLength(t *testing.T) {
	t.Parallel()

	port := transport.NewMockPort()
	port.AddReadData([]byte{0xEF, 0x01, 0xFF, 0xFF, 0xFF, 0xFF, 0x02, 0x00, 0x01})

	_, err := Read(newTestReader(port))
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestStatusName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ok", StatusName(StatusOK))
	assert.Equal(t, "no finger on sensor", StatusName(StatusNoFinger))
	assert.Equal(t, "unknown confirmation code", StatusName(0xC3))
}

func TestStatusError(t *testing.T) {
	t.Parallel()

	err := &StatusError{Op: "match", Code: StatusEnrollMismatch}
	assert.Contains(t, err.Error(), "match")
	assert.Contains(t, err.Error(), "0x0A")

	se, ok := AsStatusError(err)
	require.True(t, ok)
	assert.Equal(t, StatusEnrollMismatch, se.Code)
}
