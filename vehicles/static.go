package vehicles

import "github.com/samber/lo"

// StaticMessage is one entry of the keep-alive table: a fixed payload sent on
// its own cadence to stand in for the bypassed radar support unit.
type StaticMessage struct {
	ID        uint32
	Platforms []Platform
	Bus       uint8
	Cadence   uint32 // frame divisor
	Payload   []byte
}

var staticMessages = []StaticMessage{
	{ID: 0x128, Platforms: []Platform{PlatformSUV, PlatformCompact, PlatformCrossover}, Bus: 1, Cadence: 3,
		Payload: []byte{0xf4, 0x01, 0x90, 0x83, 0x00, 0x37}},
	{ID: 0x141, Platforms: []Platform{PlatformSUV, PlatformCompact, PlatformCrossover, PlatformSedanSport}, Bus: 1, Cadence: 2,
		Payload: []byte{0x00, 0x00, 0x00, 0x46}},
	{ID: 0x160, Platforms: []Platform{PlatformSUV, PlatformCompact, PlatformCrossover}, Bus: 1, Cadence: 7,
		Payload: []byte{0x00, 0x00, 0x08, 0x12, 0x01, 0x31, 0x9c, 0x51}},
	{ID: 0x161, Platforms: []Platform{PlatformSUV, PlatformCompact, PlatformCrossover, PlatformSedanSport}, Bus: 1, Cadence: 7,
		Payload: []byte{0x00, 0x1e, 0x00, 0x00, 0x00, 0x80, 0x07}},
	{ID: 0x283, Platforms: []Platform{PlatformSUV, PlatformCompact, PlatformCrossover, PlatformMinivan}, Bus: 0, Cadence: 3,
		Payload: []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x8c}},
	{ID: 0x344, Platforms: []Platform{PlatformSUV, PlatformCrossover}, Bus: 0, Cadence: 5,
		Payload: []byte{0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x50}},
	{ID: 0x365, Platforms: []Platform{PlatformSUV, PlatformCompact}, Bus: 0, Cadence: 20,
		Payload: []byte{0x00, 0x00, 0x00, 0x80, 0x03, 0x00, 0x08}},
	{ID: 0x366, Platforms: []Platform{PlatformSUV, PlatformCompact}, Bus: 0, Cadence: 20,
		Payload: []byte{0x00, 0x00, 0x4d, 0x82, 0x40, 0x02, 0x00}},
	{ID: 0x4CB, Platforms: []Platform{PlatformSUV, PlatformCompact, PlatformCrossover, PlatformMinivan}, Bus: 0, Cadence: 100,
		Payload: []byte{0x0c, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
}

// StaticMessagesFor returns the keep-alive entries applicable to a platform.
func StaticMessagesFor(p Platform) []StaticMessage {
	return lo.Filter(staticMessages, func(m StaticMessage, _ int) bool {
		return lo.Contains(m.Platforms, p)
	})
}
