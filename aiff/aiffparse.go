package aiff

import (
	"encoding/binary"
	"io"

	"github.com/ossrs/go-oryx-lib/errors"
)

type SeekableReader interface {
	Read(p []byte) (n int, err error)
	Seek(offset int64, whence int) (ret int64, err error)
}

func readExtended(reader io.Reader) (ExtendedFloat, error) {
	var exponent uint16
	err := binary.Read(reader, binary.BigEndian, &exponent)

	if err != nil {
		return ExtendedFloat{}, err
	}

	var mantissa uint64
	err = binary.Read(reader, binary.BigEndian, &mantissa)

	if err != nil {
		return ExtendedFloat{}, err
	}

	return ExtendedFloat{
		(exponent & 0x8000) != 0,
		exponent & 0x7FFF,
		mantissa,
	}, nil
}

func readPString(reader io.Reader) (string, error) {
	var len uint8
	err := binary.Read(reader, binary.BigEndian, &len)

	if err != nil {
		return "", err
	}

	var buffer = make([]byte, len)
	_, err = io.ReadFull(reader, buffer)

	if err != nil {
		return "", err
	}

	if len%2 == 0 {
		// read padding byte
		var pad uint8
		binary.Read(reader, binary.BigEndian, &pad)
	}

	return string(buffer), nil
}

func parseCommonChunk(reader io.Reader, compressed bool) (*CommonChunk, error) {
	var result CommonChunk

	err := binary.Read(reader, binary.BigEndian, &result.NumChannels)

	if err != nil {
		return nil, errors.Wrapf(err, "read channels")
	}

	err = binary.Read(reader, binary.BigEndian, &result.NumSampleFrames)

	if err != nil {
		return nil, errors.Wrapf(err, "read frames")
	}

	err = binary.Read(reader, binary.BigEndian, &result.SampleSize)

	if err != nil {
		return nil, errors.Wrapf(err, "read sample size")
	}

	sampleRate, err := readExtended(reader)

	if err != nil {
		return nil, errors.Wrapf(err, "read sample rate")
	}

	result.SampleRate = sampleRate

	if compressed {
		err = binary.Read(reader, binary.BigEndian, &result.CompressionType)

		if err != nil {
			return nil, errors.Wrapf(err, "read compression type")
		}

		compressionName, err := readPString(reader)

		if err != nil {
			return nil, errors.Wrapf(err, "read compression name")
		}

		result.CompressionName = compressionName
	} else {
		result.CompressionType = COMPRESSION_NONE
	}

	return &result, nil
}

func parseSoundDataChunk(reader io.Reader, chunkSize uint32) (*SoundDataChunk, error) {
	var result SoundDataChunk

	if chunkSize < 8 {
		return nil, errors.Errorf("sound data chunk too small %v", chunkSize)
	}

	err := binary.Read(reader, binary.BigEndian, &result.Offset)

	if err != nil {
		return nil, errors.Wrapf(err, "read offset")
	}

	err = binary.Read(reader, binary.BigEndian, &result.BlockSize)

	if err != nil {
		return nil, errors.Wrapf(err, "read block size")
	}

	result.WaveformData = make([]byte, chunkSize-8)

	_, err = io.ReadFull(reader, result.WaveformData)

	if err != nil {
		return nil, errors.Wrapf(err, "read %v bytes of waveform", chunkSize-8)
	}

	return &result, nil
}

func parseMarkerChunk(reader io.Reader) (*MarkerChunk, error) {
	var result MarkerChunk
	var count uint16

	if err := binary.Read(reader, binary.BigEndian, &count); err != nil {
		return nil, errors.Wrapf(err, "read marker count")
	}

	for i := uint16(0); i < count; i = i + 1 {
		var marker Marker

		if err := binary.Read(reader, binary.BigEndian, &marker.ID); err != nil {
			return nil, errors.Wrapf(err, "read marker %v", i)
		}

		if err := binary.Read(reader, binary.BigEndian, &marker.Position); err != nil {
			return nil, errors.Wrapf(err, "read marker %v", i)
		}

		name, err := readPString(reader)

		if err != nil {
			return nil, errors.Wrapf(err, "read marker %v name", i)
		}

		marker.Name = name
		result.Markers = append(result.Markers, marker)
	}

	return &result, nil
}

func parseInstrumentChunk(reader io.Reader) (*InstrumentChunk, error) {
	var result InstrumentChunk

	// The chunk is a fixed size record, so a single read covers every field.
	err := binary.Read(reader, binary.BigEndian, &result)

	if err != nil {
		return nil, errors.Wrapf(err, "read instrument chunk")
	}

	return &result, nil
}

func parseApplicationChunk(reader io.Reader, chunkSize uint32) (*ApplicationChunk, error) {
	var result ApplicationChunk

	if chunkSize < 4 {
		return nil, errors.Errorf("application chunk too small %v", chunkSize)
	}

	err := binary.Read(reader, binary.BigEndian, &result.Signature)

	if err != nil {
		return nil, errors.Wrapf(err, "read signature")
	}

	result.Data = make([]byte, chunkSize-4)

	_, err = io.ReadFull(reader, result.Data)

	if err != nil {
		return nil, errors.Wrapf(err, "read application data")
	}

	return &result, nil
}

func Parse(reader SeekableReader) (*Aiff, error) {
	var result Aiff

	var id uint32

	err := binary.Read(reader, binary.BigEndian, &id)

	if err != nil {
		return nil, errors.Wrapf(err, "read form header")
	}

	if id != FORM_HEADER {
		return nil, errors.New("file didn't have FORM header")
	}

	var chunkSize uint32

	if err = binary.Read(reader, binary.BigEndian, &chunkSize); err != nil {
		return nil, errors.Wrapf(err, "read form size")
	}

	if err = binary.Read(reader, binary.BigEndian, &id); err != nil {
		return nil, errors.Wrapf(err, "read form type")
	}

	if id == AIFC {
		result.Compressed = true
	} else if id != AIFF {
		return nil, errors.New("file didn't have AIFF or AIFC type")
	}

	for {
		err = binary.Read(reader, binary.BigEndian, &id)

		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Wrapf(err, "read chunk id")
		}

		if err = binary.Read(reader, binary.BigEndian, &chunkSize); err != nil {
			return nil, errors.Wrapf(err, "read chunk size of 0x%08X", id)
		}

		currPos, err := reader.Seek(0, io.SeekCurrent)

		if err != nil {
			return nil, errors.Wrapf(err, "seek")
		}

		switch id {
		case COMM:
			result.Common, err = parseCommonChunk(reader, result.Compressed)
		case SSND:
			result.SoundData, err = parseSoundDataChunk(reader, chunkSize)
		case MARK:
			result.Markers, err = parseMarkerChunk(reader)
		case INST:
			result.Instrument, err = parseInstrumentChunk(reader)
		case APPL:
			var appl *ApplicationChunk
			appl, err = parseApplicationChunk(reader, chunkSize)

			if err == nil {
				result.Application = append(result.Application, appl)
			}
		}

		if err != nil {
			return nil, errors.Wrapf(err, "parse chunk 0x%08X", id)
		}

		// chunks are padded to an even size
		var next = int64(chunkSize) + currPos
		if chunkSize%2 == 1 {
			next = next + 1
		}

		if _, err = reader.Seek(next, io.SeekStart); err != nil {
			return nil, errors.Wrapf(err, "seek to %v", next)
		}
	}

	if result.Common == nil {
		return nil, errors.New("missing COMM chunk")
	}

	return &result, nil
}
