package adpcm

import "github.com/ossrs/go-oryx-lib/errors"

const PREDICTOR_SIZE = 8

// Largest codebook shape accepted from a file.
const (
	MAX_BOOK_ORDER      = 16
	MAX_BOOK_PREDICTORS = 16
)

// LOOP_STATE_SIZE is the number of decoder state samples stored with a loop.
const LOOP_STATE_SIZE = 16

// AIFC compression types understood by the audio driver.
const (
	COMPRESSION_ADPCM       = 0x41445039 // ADP9
	COMPRESSION_SMALL_ADPCM = 0x41445035 // ADP5
	COMPRESSION_S8          = 0x4850434D // HPCM
	COMPRESSION_REVERB      = 0x52565242 // RVRB
	COMPRESSION_S16         = 0x4E4F4E45 // NONE
)

type Codec int

const (
	CodecADPCM Codec = iota
	CodecS8
	CodecReverb
	CodecS16
	CodecSmallADPCM
)

// CodecFromCompression maps an AIFC compression type to the driver codec.
func CodecFromCompression(compressionType uint32) (Codec, error) {
	switch compressionType {
	case COMPRESSION_ADPCM:
		return CodecADPCM, nil
	case COMPRESSION_S8:
		return CodecS8, nil
	case COMPRESSION_SMALL_ADPCM:
		return CodecSmallADPCM, nil
	case COMPRESSION_REVERB:
		return CodecReverb, nil
	case COMPRESSION_S16:
		return CodecS16, nil
	}

	return CodecS16, errors.Errorf("unknown compression type 0x%08X", compressionType)
}

// EnumName is the SampleCodec enumerator emitted into C source.
func (codec Codec) EnumName() string {
	switch codec {
	case CodecADPCM:
		return "CODEC_ADPCM"
	case CodecS8:
		return "CODEC_S8"
	case CodecReverb:
		return "CODEC_REVERB"
	case CodecS16:
		return "CODEC_S16"
	case CodecSmallADPCM:
		return "CODEC_SMALL_ADPCM"
	}

	return "CODEC_S16"
}

// FrameSize is the number of bytes a 16 sample frame occupies.
func (codec Codec) FrameSize() uint32 {
	switch codec {
	case CodecADPCM:
		return 9
	case CodecSmallADPCM:
		return 5
	default:
		return 16
	}
}

// Book is a VADPCM codebook in its stored layout: for each predictor, Order
// rows of PREDICTOR_SIZE coefficients.
type Book struct {
	Order       int32
	NPredictors int32
	Data        []int16
}

func checkBookShape(order int, npredictors int) error {
	if order <= 0 || npredictors <= 0 || order > MAX_BOOK_ORDER || npredictors > MAX_BOOK_PREDICTORS {
		return errors.Errorf("bad book shape order=%v npredictors=%v", order, npredictors)
	}

	return nil
}

func (book *Book) Entries() int {
	return int(book.Order) * int(book.NPredictors) * PREDICTOR_SIZE
}

// SizeInBytes is the size of the book structure: two s32 fields plus the
// coefficient data.
func (book *Book) SizeInBytes() int {
	return 8 + 2*book.Entries()
}

// Equal reports whether two books have the same shape and identical coefficients.
func (book *Book) Equal(other *Book) bool {
	if book.Order != other.Order || book.NPredictors != other.NPredictors {
		return false
	}

	if len(book.Data) != len(other.Data) {
		return false
	}

	for i := range book.Data {
		if book.Data[i] != other.Data[i] {
			return false
		}
	}

	return true
}

type Loop struct {
	Start uint32
	End   uint32
	Count uint32
	State [LOOP_STATE_SIZE]int16
}
