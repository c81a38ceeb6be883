package engine

import "fmt"

// VehicleID is a vehicle name packed into one byte.
//
// A single letter stores its 1-indexed alphabet position (A=1 .. Z=26) in the
// low 5 bits. Two letters store the second letter's position in the low 5 bits
// and the first letter's position in the high 3 bits, which limits the first
// letter to A..G. The zero value is never produced by EncodeVehicleID and marks
// an empty tile.
type VehicleID uint8

const (
	lowBits   = 5
	lowMask   = 1<<lowBits - 1
	maxPrefix = 1<<(8-lowBits) - 1 // 'G'
)

// EncodeVehicleID packs a 1 or 2 letter uppercase name
func EncodeVehicleID(name string) (VehicleID, error) {
	switch len(name) {
	case 1:
		pos, ok := letterPos(name[0])
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrInvalidID, name)
		}
		return VehicleID(pos), nil
	case 2:
		first, ok1 := letterPos(name[0])
		second, ok2 := letterPos(name[1])
		if !ok1 || !ok2 || first > maxPrefix {
			return 0, fmt.Errorf("%w: %q", ErrInvalidID, name)
		}
		return VehicleID(first<<lowBits | second), nil
	}
	return 0, fmt.Errorf("%w: %q must be 1 or 2 letters", ErrInvalidID, name)
}

// MustEncodeVehicleID is EncodeVehicleID for names known at compile time
func MustEncodeVehicleID(name string) VehicleID {
	id, err := EncodeVehicleID(name)
	if err != nil {
		panic(err)
	}
	return id
}

// DecodeVehicleID is the inverse of EncodeVehicleID
func DecodeVehicleID(id VehicleID) (string, error) {
	low := byte(id) & lowMask
	high := byte(id) >> lowBits
	if low < 1 || low > 26 {
		return "", fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	if high == 0 {
		return string([]byte{'A' + low - 1}), nil
	}
	return string([]byte{'A' + high - 1, 'A' + low - 1}), nil
}

// String returns the vehicle name, or "?" for a value no name encodes to
func (id VehicleID) String() string {
	name, err := DecodeVehicleID(id)
	if err != nil {
		return "?"
	}
	return name
}

// TargetID is the encoded id of the target vehicle
var TargetID = MustEncodeVehicleID(TargetName)

func letterPos(c byte) (byte, bool) {
	if c < 'A' || c > 'Z' {
		return 0, false
	}
	return c - 'A' + 1, true
}
