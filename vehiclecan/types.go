// Package vehiclecan encodes semantic actuator commands into bus frames. It
// carries the frame map (signal layouts per message), the little-endian
// signal codec, the per-message command builders, and the SocketCAN
// transport used by the runner.
package vehiclecan

import (
	"sort"

	"go.einride.tech/can"
)

// SignalDef describes one signal inside a frame payload.
type SignalDef struct {
	Name       string
	StartBit   int
	BitLength  int
	Signed     bool
	Factor     float64
	Offset     float64
	Min        float64
	Max        float64
	Default    float64
	Unit       string
	Comment    string
	Endianness string // only "little" supported
}

// FrameDef describes one bus message: identity, size, target bus and signals.
type FrameDef struct {
	ID      uint32
	Name    string
	DLC     int
	Bus     uint8
	Signals []SignalDef
}

// CANMap indexes frame definitions by identifier and by name.
type CANMap struct {
	ByID   map[uint32]*FrameDef
	ByName map[string]*FrameDef
}

// Message is one outbound bus message: an opaque (identifier, bus, payload)
// triple ready for transmission.
type Message struct {
	ID   uint32
	Bus  uint8
	Data []byte
}

// Frame converts the message into an einride CAN frame for transmission.
func (m Message) Frame() can.Frame {
	var f can.Frame
	f.ID = m.ID
	f.Length = uint8(len(m.Data))
	copy(f.Data[:], m.Data)
	return f
}

// FrameNames lists the known frame names, sorted.
func (m *CANMap) FrameNames() []string {
	out := make([]string, 0, len(m.ByName))
	for k := range m.ByName {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (m *CANMap) add(fd *FrameDef) {
	sort.Slice(fd.Signals, func(i, j int) bool { return fd.Signals[i].StartBit < fd.Signals[j].StartBit })
	m.ByID[fd.ID] = fd
	m.ByName[fd.Name] = fd
}
