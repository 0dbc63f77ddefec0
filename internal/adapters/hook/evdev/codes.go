// Package evdev implements the Linux hook: scroll notifications are read
// from an evdev character device and synthetic scroll is injected through a
// uinput virtual device. Linux wheel events are always unit steps along one
// axis, so this hook pairs with the engine's discrete backend.
package evdev

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Event types and codes from the kernel input UAPI; golang.org/x/sys/unix
// does not export these tables.
const (
	evSyn uint16 = 0x00
	evRel uint16 = 0x02

	relHWheel uint16 = 0x06
	relWheel  uint16 = 0x08

	synReport uint16 = 0x00
)

// uinput ioctl requests: _IOW('U', 100, int), _IOW('U', 102, int),
// _IO('U', 1), _IO('U', 2), _IOC(_IOC_READ, 'U', 44, 64).
const (
	uiSetEvBit   = 0x40045564
	uiSetRelBit  = 0x40045566
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502
	uiGetSysname = 0x8040552c
)

// sysnameLen is the buffer size encoded into uiGetSysname.
const sysnameLen = 64

const busVirtual uint16 = 0x06

// inputEvent mirrors struct input_event on 64-bit Linux.
type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

const eventSize = 24

func decodeEvent(b []byte) inputEvent {
	var ev inputEvent
	_ = binary.Read(bytes.NewReader(b[:eventSize]), binary.LittleEndian, &ev)
	return ev
}

func encodeEvent(ev inputEvent) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, ev)
	return buf.Bytes()
}

// userDev mirrors struct uinput_user_dev: the legacy device setup record
// accepted by every kernel with uinput.
type userDev struct {
	Name         [80]byte
	BusType      uint16
	Vendor       uint16
	Product      uint16
	Version      uint16
	FFEffectsMax uint32
	AbsMax       [64]int32
	AbsMin       [64]int32
	AbsFuzz      [64]int32
	AbsFlat      [64]int32
}

func encodeUserDev(name string) ([]byte, error) {
	var dev userDev
	if len(name) >= len(dev.Name) {
		return nil, fmt.Errorf("device name too long: %q", name)
	}
	copy(dev.Name[:], name)
	dev.BusType = busVirtual
	dev.Vendor = 0x1d6b
	dev.Product = 0x0104
	dev.Version = 1

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, dev); err != nil {
		return nil, fmt.Errorf("encode uinput device: %w", err)
	}
	return buf.Bytes(), nil
}
