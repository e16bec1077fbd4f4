package openrgb

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (

	// Default TCP port of the SDK server.
	DefaultPort = 6742

	// Packet header magic.
	magic = "ORGB"

	// Size of the packet header in bytes.
	headerSize = 16

	// Upper bound accepted for a single payload.
	maxPayload = 16 << 20
)

// Packet identifiers used by this client.
const (
	pktRequestControllerCount uint32 = 0
	pktRequestControllerData  uint32 = 1
	pktSetClientName          uint32 = 50
	pktDeviceListUpdated      uint32 = 100
	pktUpdateLEDs             uint32 = 1050
	pktSetCustomMode          uint32 = 1100
)

// An 8-bit RGB color.
type Color struct {
	R uint8
	G uint8
	B uint8
}

func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// An RGB-controllable device exposed by the server.
type Controller struct {
	Index       uint32 // Position in the server's controller list.
	Type        int32  // Device type as reported by the server.
	Name        string // Device name.
	Description string // Driver description.
	Version     string // Firmware or driver version.
	Serial      string // Serial number. May be empty.
	Location    string // Bus location.
	ActiveMode  int32  // Index of the active lighting mode.
	Modes       int    // Number of lighting modes.
	Zones       int    // Number of zones.
	LEDs        int    // Number of addressable LEDs.
}

// Packet header.
type header struct {
	device uint32
	id     uint32
	size   uint32
}

func (h header) encode() []byte {
	buf := make([]byte, headerSize)
	copy(buf, magic)
	binary.LittleEndian.PutUint32(buf[4:], h.device)
	binary.LittleEndian.PutUint32(buf[8:], h.id)
	binary.LittleEndian.PutUint32(buf[12:], h.size)
	return buf
}

func decodeHeader(buf []byte) (header, error) {
	if !bytes.Equal(buf[:4], []byte(magic)) {
		return header{}, fmt.Errorf("%w: bad magic %q", ErrProtocol, buf[:4])
	}
	h := header{
		device: binary.LittleEndian.Uint32(buf[4:]),
		id:     binary.LittleEndian.Uint32(buf[8:]),
		size:   binary.LittleEndian.Uint32(buf[12:]),
	}
	if h.size > maxPayload {
		return header{}, fmt.Errorf("%w: payload of %d bytes", ErrProtocol, h.size)
	}
	return h, nil
}

// Encodes an UPDATELEDS payload: data size, color count, then one 4-byte
// color (r, g, b, padding) per LED.
func encodeColors(colors []Color) []byte {
	size := 4 + 2 + 4*len(colors)
	buf := make([]byte, size)
	binary.LittleEndian.PutUint32(buf[0:], uint32(size))
	binary.LittleEndian.PutUint16(buf[4:], uint16(len(colors)))
	for i, c := range colors {
		off := 6 + 4*i
		buf[off], buf[off+1], buf[off+2] = c.R, c.G, c.B
	}
	return buf
}

// Parses a protocol version 0 controller description.
//
// Only counts and identity strings are kept; mode, zone and LED details are
// skipped over.
func parseController(index uint32, data []byte) (Controller, error) {
	r := &reader{buf: data}
	c := Controller{Index: index}

	r.u32() // data size
	c.Type = r.i32()
	c.Name = r.str()
	c.Description = r.str()
	c.Version = r.str()
	c.Serial = r.str()
	c.Location = r.str()

	modes := r.u16()
	c.ActiveMode = r.i32()
	for range modes {
		r.str()
		r.skip(9 * 4) // value, flags, speed range, color range, speed, direction, color mode
		r.skip(4 * int(r.u16()))
	}

	zones := r.u16()
	for range zones {
		r.str()
		r.skip(4 * 4) // type, leds min, leds max, leds count
		r.skip(int(r.u16()))
	}

	leds := r.u16()
	for range leds {
		r.str()
		r.skip(4)
	}

	colors := r.u16()
	r.skip(4 * int(colors))

	if r.err != nil {
		return Controller{}, fmt.Errorf("%w: controller %d: %w", ErrProtocol, index, r.err)
	}

	c.Modes = int(modes)
	c.Zones = int(zones)
	c.LEDs = int(leds)
	return c, nil
}

// Sequential little-endian reader with a sticky error.
type reader struct {
	buf []byte
	off int
	err error
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.off+n > len(r.buf) {
		r.err = fmt.Errorf("truncated at offset %d reading %d bytes", r.off, n)
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) skip(n int) {
	r.take(n)
}

func (r *reader) u16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *reader) u32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *reader) i32() int32 {
	return int32(r.u32())
}

// Reads a length-prefixed, NUL-terminated string.
func (r *reader) str() string {
	b := r.take(int(r.u16()))
	return string(bytes.TrimRight(b, "\x00"))
}
