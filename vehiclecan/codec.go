package vehiclecan

import (
	"fmt"
	"math"
)

// checksumSignal names the trailing additive checksum byte on command frames
// that carry one. It is filled after all other signals are packed.
const checksumSignal = "checksum"

// Flag and counter signals omit the scale factor; raw value equals physical.
func factorOf(s SignalDef) float64 {
	if s.Factor == 0 {
		return 1
	}
	return s.Factor
}

func encodeDef(fd *FrameDef, values map[string]float64) Message {
	var payload uint64

	for _, s := range fd.Signals {
		if s.Name == checksumSignal {
			continue
		}
		v, ok := values[s.Name]
		if !ok {
			v = s.Default
		}
		if s.Min != 0 || s.Max != 0 {
			v = clamp(v, s.Min, s.Max)
		}

		raw := int64(math.Round((v - s.Offset) / factorOf(s)))
		raw = clampRaw(raw, s.BitLength, s.Signed)
		payload = setBits(payload, s.StartBit, s.BitLength, rawToUnsigned(raw, s.BitLength))
	}

	out := make([]byte, fd.DLC)
	for i := 0; i < fd.DLC; i++ {
		out[i] = byte((payload >> (8 * i)) & 0xFF)
	}
	msg := Message{ID: fd.ID, Bus: fd.Bus, Data: out}

	for _, s := range fd.Signals {
		if s.Name == checksumSignal {
			msg.Data[fd.DLC-1] = frameChecksum(fd.ID, msg.Data)
		}
	}
	return msg
}

// frameChecksum is the additive command checksum: identifier bytes plus
// length plus all payload bytes except the checksum slot itself, truncated
// to 8 bits.
func frameChecksum(id uint32, data []byte) byte {
	sum := int(id>>8&0xFF) + int(id&0xFF) + len(data) + 1
	for _, b := range data[:len(data)-1] {
		sum += int(b)
	}
	return byte(sum & 0xFF)
}

// EncodeFrame packs values into the named frame. Missing signals take their
// defaults; out-of-range values are clamped, never rejected.
func (m *CANMap) EncodeFrame(frameName string, values map[string]float64) (Message, error) {
	fd, err := m.FrameByName(frameName)
	if err != nil {
		return Message{}, err
	}
	return encodeDef(fd, values), nil
}

// DecodeFrame unpacks a payload into physical signal values.
func (m *CANMap) DecodeFrame(frameID uint32, data []byte) (map[string]float64, error) {
	fd, err := m.FrameByID(frameID)
	if err != nil {
		return nil, err
	}
	if len(data) < fd.DLC {
		return nil, fmt.Errorf("frame 0x%X expects DLC %d, got %d", frameID, fd.DLC, len(data))
	}

	var payload uint64
	for i := 0; i < fd.DLC && i < 8; i++ {
		payload |= uint64(data[i]) << (8 * i)
	}

	out := make(map[string]float64, len(fd.Signals))
	for _, s := range fd.Signals {
		u := getBits(payload, s.StartBit, s.BitLength)
		raw := unsignedToRaw(u, s.BitLength, s.Signed)
		out[s.Name] = float64(raw)*factorOf(s) + s.Offset
	}
	return out, nil
}

// FrameByName looks up a frame definition by name.
func (m *CANMap) FrameByName(name string) (*FrameDef, error) {
	fd, ok := m.ByName[name]
	if !ok {
		return nil, fmt.Errorf("unknown frame %q (available: %v)", name, m.FrameNames())
	}
	return fd, nil
}

// FrameByID looks up a frame definition by identifier.
func (m *CANMap) FrameByID(id uint32) (*FrameDef, error) {
	fd, ok := m.ByID[id]
	if !ok {
		return nil, fmt.Errorf("unknown frame id 0x%X", id)
	}
	return fd, nil
}
