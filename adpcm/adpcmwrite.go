package adpcm

import (
	"bytes"
	"encoding/binary"
)

const VADPCM_CODES_NAME = "VADPCMCODES"
const VADPCM_LOOPS_NAME = "VADPCMLOOPS"

func writePString(buffer *bytes.Buffer, value string) {
	var len = uint8(len(value))
	binary.Write(buffer, binary.BigEndian, &len)
	buffer.WriteString(value)

	if len%2 == 0 {
		buffer.WriteByte(0)
	}
}

// BookApplicationData builds the data of a VADPCMCODES application chunk,
// including the chunk name.
func BookApplicationData(book *Book) []byte {
	var codesBuffer bytes.Buffer

	writePString(&codesBuffer, VADPCM_CODES_NAME)

	var version uint16 = 1
	binary.Write(&codesBuffer, binary.BigEndian, &version)

	var order = int16(book.Order)
	binary.Write(&codesBuffer, binary.BigEndian, &order)
	var npredictors = int16(book.NPredictors)
	binary.Write(&codesBuffer, binary.BigEndian, &npredictors)

	binary.Write(&codesBuffer, binary.BigEndian, book.Data)

	return codesBuffer.Bytes()
}

// LoopsApplicationData builds the data of a VADPCMLOOPS application chunk,
// including the chunk name.
func LoopsApplicationData(loops []Loop) []byte {
	var loopBuffer bytes.Buffer

	writePString(&loopBuffer, VADPCM_LOOPS_NAME)

	var version uint16 = 1
	binary.Write(&loopBuffer, binary.BigEndian, &version)

	var nloops = int16(len(loops))
	binary.Write(&loopBuffer, binary.BigEndian, &nloops)

	for _, loop := range loops {
		binary.Write(&loopBuffer, binary.BigEndian, &loop.Start)
		binary.Write(&loopBuffer, binary.BigEndian, &loop.End)
		binary.Write(&loopBuffer, binary.BigEndian, &loop.Count)
		binary.Write(&loopBuffer, binary.BigEndian, &loop.State)
	}

	return loopBuffer.Bytes()
}
