package adpcm

import (
	"encoding/binary"
	"io"

	"github.com/ossrs/go-oryx-lib/errors"
)

// ReadBookFromAIFC reads the payload of a VADPCMCODES application chunk that
// follows the chunk name.
func ReadBookFromAIFC(reader io.Reader) (*Book, error) {
	var version uint16
	var order int16
	var npredictors int16

	if err := binary.Read(reader, binary.BigEndian, &version); err != nil {
		return nil, errors.Wrapf(err, "read book version")
	}

	if version != 1 {
		return nil, errors.Errorf("unsupported book version %v", version)
	}

	if err := binary.Read(reader, binary.BigEndian, &order); err != nil {
		return nil, errors.Wrapf(err, "read book order")
	}

	if err := binary.Read(reader, binary.BigEndian, &npredictors); err != nil {
		return nil, errors.Wrapf(err, "read book predictors")
	}

	if err := checkBookShape(int(order), int(npredictors)); err != nil {
		return nil, err
	}

	var result = Book{
		Order:       int32(order),
		NPredictors: int32(npredictors),
	}

	result.Data = make([]int16, result.Entries())

	if err := binary.Read(reader, binary.BigEndian, result.Data); err != nil {
		return nil, errors.Wrapf(err, "read book data %vx%v", order, npredictors)
	}

	return &result, nil
}

// ReadLoopsFromAIFC reads the payload of a VADPCMLOOPS application chunk that
// follows the chunk name.
func ReadLoopsFromAIFC(reader io.Reader) ([]Loop, error) {
	var version uint16
	var nloops int16

	if err := binary.Read(reader, binary.BigEndian, &version); err != nil {
		return nil, errors.Wrapf(err, "read loop version")
	}

	if version != 1 {
		return nil, errors.Errorf("unsupported loop version %v", version)
	}

	if err := binary.Read(reader, binary.BigEndian, &nloops); err != nil {
		return nil, errors.Wrapf(err, "read loop count")
	}

	var result []Loop

	for i := int16(0); i < nloops; i = i + 1 {
		var loop Loop

		if err := binary.Read(reader, binary.BigEndian, &loop.Start); err != nil {
			return nil, errors.Wrapf(err, "read loop %v", i)
		}
		if err := binary.Read(reader, binary.BigEndian, &loop.End); err != nil {
			return nil, errors.Wrapf(err, "read loop %v", i)
		}
		if err := binary.Read(reader, binary.BigEndian, &loop.Count); err != nil {
			return nil, errors.Wrapf(err, "read loop %v", i)
		}
		if err := binary.Read(reader, binary.BigEndian, &loop.State); err != nil {
			return nil, errors.Wrapf(err, "read loop %v state", i)
		}

		result = append(result, loop)
	}

	return result, nil
}
