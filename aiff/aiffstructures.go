package aiff

import "math"

const FORM_HEADER = 0x464F524D

const AIFC = 0x41494643
const AIFF = 0x41494646

const COMM = 0x434F4D4D
const INST = 0x494E5354
const SSND = 0x53534E44
const APPL = 0x4150504C
const MARK = 0x4D41524B

// APPL_SIGNATURE is the application signature used by the VADPCM chunks.
const APPL_SIGNATURE = 0x73746F63

const COMPRESSION_NONE = 0x4E4F4E45

// Sign * 1.Mantissa * pow(2, Exponent - 0x3FFF)
type ExtendedFloat struct {
	Sign     bool
	Exponent uint16
	Mantissa uint64
}

type CommonChunk struct {
	NumChannels     int16
	NumSampleFrames int32
	SampleSize      int16
	SampleRate      ExtendedFloat
	CompressionType uint32
	CompressionName string
}

type Marker struct {
	ID       uint16
	Position uint32
	Name     string
}

type MarkerChunk struct {
	Markers []Marker
}

type Loop struct {
	PlayMode  int16
	BeginLoop uint16
	EndLoop   uint16
}

type InstrumentChunk struct {
	BaseNote     uint8
	Detune       uint8
	LowNote      uint8
	HighNote     uint8
	LowVelocity  uint8
	HighVelocity uint8
	Gain         int16
	SustainLoop  Loop
	ReleaseLoop  Loop
}

type ApplicationChunk struct {
	Signature uint32
	Data      []byte
}

type SoundDataChunk struct {
	Offset       uint32
	BlockSize    uint32
	WaveformData []byte
}

type Aiff struct {
	Compressed  bool
	Common      *CommonChunk
	SoundData   *SoundDataChunk
	Markers     *MarkerChunk
	Instrument  *InstrumentChunk
	Application []*ApplicationChunk
}

func (markers *MarkerChunk) FindMarker(id uint16) *Marker {
	for i := range markers.Markers {
		if markers.Markers[i].ID == id {
			return &markers.Markers[i]
		}
	}

	return nil
}

// ApplicationData finds the application chunk with the given signature whose
// data starts with the pascal string name, and returns the data after the name.
func (aiff *Aiff) ApplicationData(signature uint32, name string) ([]byte, bool) {
	for _, appl := range aiff.Application {
		if appl.Signature != signature || len(appl.Data) == 0 {
			continue
		}

		var nameLen = int(appl.Data[0])
		var headerLen = 1 + nameLen

		if headerLen%2 == 1 {
			headerLen = headerLen + 1
		}

		if len(appl.Data) < headerLen || string(appl.Data[1:1+nameLen]) != name {
			continue
		}

		return appl.Data[headerLen:], true
	}

	return nil, false
}

// SoundDataSize is the byte count of the waveform in the SSND chunk.
func (aiff *Aiff) SoundDataSize() uint32 {
	if aiff.SoundData == nil {
		return 0
	}

	return uint32(len(aiff.SoundData.WaveformData))
}

func ExtendedFromF64(val float64) ExtendedFloat {
	var asInt = math.Float64bits(val)

	var sign = asInt & 0x8000000000000000
	var exponent = (asInt ^ sign) >> 52
	var mantissa = asInt & 0xFFFFFFFFFFFFF

	exponent = exponent + 0x3FFF - 1023

	mantissa = 0x8000000000000000 | (mantissa << (63 - 52))

	return ExtendedFloat{
		sign != 0,
		uint16(exponent),
		mantissa,
	}
}

func F64FromExtended(val ExtendedFloat) float64 {
	if val.Exponent == 0 && val.Mantissa == 0 {
		return 0
	}

	var sign float64 = 1

	if val.Sign {
		sign = -1
	}

	var mant = float64(val.Mantissa) / math.Pow(2, 63)

	return sign * mant * math.Pow(2, float64(val.Exponent)-0x3FFF)
}
