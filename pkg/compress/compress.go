package compress

import (
	"encoding/binary"
	"sync"
)

var BITMASK = []byte{
	0b00000001,
	0b00000011,
	0b00000111,
	0b00001111,
	0b00011111,
	0b00111111,
	0b01111111,
	0b11111111,
}

func getLSB(x byte, n uint8) byte {
	if n > 8 {
		panic("can extract at max 8 bits from the number")
	}
	return x & BITMASK[n-1]
}

var bitShifts = [10]uint8{7, 7, 7, 7, 7, 7, 7, 7, 7, 1}

var bufPool = sync.Pool{
	New: func() any {
		return new([11]byte)
	},
}

func appendUVarint(dst []byte, x uint64) []byte {
	var i int = 0
	buf := bufPool.Get().(*[11]byte)
	for i = 0; i < len(bitShifts); i++ {
		buf[i] = getLSB(byte(x), bitShifts[i]) | 0b10000000
		x = x >> bitShifts[i]
		if x == 0 {
			break
		}
	}

	buf[i] = buf[i] & 0b01111111
	dst = append(dst, buf[:i+1]...)
	bufPool.Put(buf)
	return dst
}

func decodeUVarint(buf []byte) (uint64, int) {
	v, n := binary.Uvarint(buf)
	return v, n
}

// EncodePostingsList. gap encode a sorted list of record positions, then write every gap as uvarint.
func EncodePostingsList(positions []int) []byte {
	buf := make([]byte, 0, len(positions))
	prev := 0
	for i, pos := range positions {
		gap := pos
		if i > 0 {
			gap = pos - prev
		}
		buf = appendUVarint(buf, uint64(gap))
		prev = pos
	}
	return buf
}

// DecodePostingsList. inverse of EncodePostingsList. stops at the first truncated varint.
func DecodePostingsList(buf []byte) []int {
	results := make([]int, 0, len(buf))
	prev := 0
	for len(buf) > 0 {
		v, n := decodeUVarint(buf)
		if n <= 0 {
			break
		}

		pos := int(v)
		if len(results) > 0 {
			pos += prev
		}
		results = append(results, pos)
		prev = pos
		buf = buf[n:]
	}
	return results
}
