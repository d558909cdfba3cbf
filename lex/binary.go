package lex

import (
	"encoding/binary"
	"fmt"
)

// Primitive binary encoding helpers for the LexerDefinition binary format.
// Ints are fixed 8-byte big-endian two's-complement, bools a single byte,
// and strings a byte count followed by UTF-8 bytes.

func encBinaryInt(i int) []byte {
	enc := make([]byte, 8)
	binary.BigEndian.PutUint64(enc, uint64(int64(i)))
	return enc
}

func decBinaryInt(data []byte) (int, int, error) {
	if len(data) < 8 {
		return 0, 0, fmt.Errorf("unexpected end of data reading int")
	}
	return int(int64(binary.BigEndian.Uint64(data[:8]))), 8, nil
}

func encBinaryBool(b bool) []byte {
	if b {
		return []byte{1}
	}
	return []byte{0}
}

func decBinaryBool(data []byte) (bool, int, error) {
	if len(data) < 1 {
		return false, 0, fmt.Errorf("unexpected end of data reading bool")
	}
	if data[0] != 0 && data[0] != 1 {
		return false, 0, fmt.Errorf("invalid bool byte 0x%x", data[0])
	}
	return data[0] == 1, 1, nil
}

func encBinaryString(s string) []byte {
	strBytes := []byte(s)
	enc := encBinaryInt(len(strBytes))
	enc = append(enc, strBytes...)
	return enc
}

func decBinaryString(data []byte) (string, int, error) {
	byteLen, n, err := decBinaryInt(data)
	if err != nil {
		return "", 0, err
	}
	if byteLen < 0 || len(data)-n < byteLen {
		return "", 0, fmt.Errorf("unexpected end of data reading string")
	}
	return string(data[n : n+byteLen]), n + byteLen, nil
}
