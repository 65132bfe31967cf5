package fingerprint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/banshee-data/fingermark/internal/protocol"
	"github.com/banshee-data/fingermark/internal/timeutil"
	"github.com/banshee-data/fingermark/internal/transport"
)

// scriptedDriver implements Driver with canned responses consumed in
// order. Empty scripts fall back to benign defaults: no finger present,
// successful conversions, successful exchanges.
type scriptedDriver struct {
	captureCodes []byte
	convertCodes []byte
	modelCodes   []byte
	matchCodes   []byte
	matchScores  []uint16

	convertSlots     []byte
	modelCalls       int
	matchCalls       int
	exchangePayloads [][]byte

	exchangeCode byte
	exchangeData []byte
	exchangeErr  error
}

func pop(s *[]byte, fallback byte) byte {
	if len(*s) == 0 {
		return fallback
	}
	c := (*s)[0]
	*s = (*s)[1:]
	return c
}

func (s *scriptedDriver) CaptureImage() (byte, error) {
	return pop(&s.captureCodes, protocol.StatusNoFinger), nil
}

func (s *scriptedDriver) Convert(slot byte) (byte, error) {
	s.convertSlots = append(s.convertSlots, slot)
	return pop(&s.convertCodes, protocol.StatusOK), nil
}

func (s *scriptedDriver) CreateModel() (byte, error) {
	s.modelCalls++
	return pop(&s.modelCodes, protocol.StatusOK), nil
}

func (s *scriptedDriver) Match() (byte, uint16, error) {
	s.matchCalls++
	code := pop(&s.matchCodes, protocol.StatusOK)
	var score uint16
	if len(s.matchScores) > 0 {
		score = s.matchScores[0]
		s.matchScores = s.matchScores[1:]
	}
	return code, score, nil
}

func (s *scriptedDriver) Exchange(payload []byte) (byte, []byte, error) {
	s.exchangePayloads = append(s.exchangePayloads, append([]byte(nil), payload...))
	if s.exchangeErr != nil {
		return 0, nil, s.exchangeErr
	}
	return s.exchangeCode, s.exchangeData, nil
}

// newTestDevice builds a Device over a scripted driver, a mock port, and a
// mock clock so poll loops and timeouts run without wall time.
func newTestDevice(drv *scriptedDriver, opts ...Option) (*Device, *transport.MockPort, *timeutil.MockClock) {
	port := transport.NewMockPort()
	clock := timeutil.NewMockClock(time.Unix(0, 0))
	base := []Option{WithTransport(port), WithClock(clock)}
	d := New(drv, append(base, opts...)...)
	return d, port, clock
}

// frame marshals one wire frame for preloading a mock port's read side.
func frame(t *testing.T, kind byte, payload []byte) []byte {
	t.Helper()
	b, err := protocol.Marshal(protocol.DefaultAddress, protocol.Packet{Kind: kind, Payload: payload})
	require.NoError(t, err)
	return b
}

// patternTemplate fills a template with a non-repeating byte pattern so
// chunk reordering bugs surface as content mismatches.
func patternTemplate() Template {
	var tpl Template
	for i := range tpl {
		tpl[i] = byte(i % 251)
	}
	return tpl
}

// queueTemplateStream loads a full template download onto the port's read
// side as data frames of the given chunk size, the last one as EndData.
func queueTemplateStream(t *testing.T, port *transport.MockPort, tpl Template, chunk int) {
	t.Helper()
	for off := 0; off < TemplateSize; off += chunk {
		end := off + chunk
		kind := protocol.KindData
		if end >= TemplateSize {
			end = TemplateSize
			kind = protocol.KindEndData
		}
		port.AddReadData(frame(t, kind, tpl[off:end]))
	}
}

// parseFrames splits raw written bytes back into packets, verifying the
// framing and checksum of each along the way.
func parseFrames(t *testing.T, raw []byte) []protocol.Packet {
	t.Helper()
	var pkts []protocol.Packet
	for len(raw) > 0 {
		require.GreaterOrEqual(t, len(raw), 11, "truncated frame")
		require.Equal(t, byte(protocol.HeaderHigh), raw[0])
		require.Equal(t, byte(protocol.HeaderLow), raw[1])

		kind := raw[6]
		length := int(raw[7])<<8 | int(raw[8])
		require.GreaterOrEqual(t, length, protocol.LengthOverhead)
		require.GreaterOrEqual(t, len(raw), 9+length)

		payload := append([]byte(nil), raw[9:9+length-protocol.LengthOverhead]...)
		sum := uint16(raw[9+length-2])<<8 | uint16(raw[9+length-1])
		require.Equal(t, protocol.Checksum(kind, payload), sum)

		pkts = append(pkts, protocol.Packet{Kind: kind, Payload: payload})
		raw = raw[9+length:]
	}
	return pkts
}
