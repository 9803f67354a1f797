package aiff

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/ossrs/go-oryx-lib/errors"
)

func writePString(buffer *bytes.Buffer, value string) {
	var len = uint8(len(value))
	binary.Write(buffer, binary.BigEndian, &len)
	buffer.WriteString(value)

	if len%2 == 0 {
		buffer.WriteByte(0)
	}
}

func (commonChunk *CommonChunk) serialize(compressed bool) *bytes.Buffer {
	var result bytes.Buffer

	binary.Write(&result, binary.BigEndian, &commonChunk.NumChannels)
	binary.Write(&result, binary.BigEndian, &commonChunk.NumSampleFrames)
	binary.Write(&result, binary.BigEndian, &commonChunk.SampleSize)

	var exponent = commonChunk.SampleRate.Exponent
	if commonChunk.SampleRate.Sign {
		exponent = exponent | 0x8000
	}
	binary.Write(&result, binary.BigEndian, &exponent)
	binary.Write(&result, binary.BigEndian, &commonChunk.SampleRate.Mantissa)

	if compressed {
		binary.Write(&result, binary.BigEndian, &commonChunk.CompressionType)
		writePString(&result, commonChunk.CompressionName)
	}

	return &result
}

func (markers *MarkerChunk) serialize() *bytes.Buffer {
	var result bytes.Buffer

	var count = uint16(len(markers.Markers))
	binary.Write(&result, binary.BigEndian, &count)

	for _, marker := range markers.Markers {
		binary.Write(&result, binary.BigEndian, &marker.ID)
		binary.Write(&result, binary.BigEndian, &marker.Position)
		writePString(&result, marker.Name)
	}

	return &result
}

func (soundData *SoundDataChunk) serialize() *bytes.Buffer {
	var result bytes.Buffer

	binary.Write(&result, binary.BigEndian, &soundData.Offset)
	binary.Write(&result, binary.BigEndian, &soundData.BlockSize)
	result.Write(soundData.WaveformData)

	return &result
}

type chunkBuffer struct {
	id   uint32
	data *bytes.Buffer
}

// Serialize writes the file as an AIFF or AIFC form depending on Compressed.
func (aiff *Aiff) Serialize(writer io.Writer) error {
	if aiff.Common == nil {
		return errors.New("missing common chunk")
	}

	var chunks = []chunkBuffer{{COMM, aiff.Common.serialize(aiff.Compressed)}}

	if aiff.Markers != nil {
		chunks = append(chunks, chunkBuffer{MARK, aiff.Markers.serialize()})
	}

	if aiff.Instrument != nil {
		var inst bytes.Buffer
		binary.Write(&inst, binary.BigEndian, aiff.Instrument)
		chunks = append(chunks, chunkBuffer{INST, &inst})
	}

	for _, appl := range aiff.Application {
		var data bytes.Buffer
		binary.Write(&data, binary.BigEndian, &appl.Signature)
		data.Write(appl.Data)
		chunks = append(chunks, chunkBuffer{APPL, &data})
	}

	if aiff.SoundData != nil {
		chunks = append(chunks, chunkBuffer{SSND, aiff.SoundData.serialize()})
	}

	var totalLength uint32 = 4

	for _, chunk := range chunks {
		totalLength = totalLength + 8 + uint32(chunk.data.Len()+chunk.data.Len()%2)
	}

	var formType uint32 = AIFF
	if aiff.Compressed {
		formType = AIFC
	}

	var header = []uint32{FORM_HEADER, totalLength, formType}

	if err := binary.Write(writer, binary.BigEndian, header); err != nil {
		return errors.Wrapf(err, "write form header")
	}

	for _, chunk := range chunks {
		var size = uint32(chunk.data.Len())

		if err := binary.Write(writer, binary.BigEndian, []uint32{chunk.id, size}); err != nil {
			return errors.Wrapf(err, "write chunk header 0x%08X", chunk.id)
		}

		if size%2 == 1 {
			chunk.data.WriteByte(0)
		}

		if _, err := writer.Write(chunk.data.Bytes()); err != nil {
			return errors.Wrapf(err, "write chunk 0x%08X", chunk.id)
		}
	}

	return nil
}
