package waveform

import (
	"bytes"
	"os"

	"github.com/Thar0/mm/adpcm"
	"github.com/Thar0/mm/aiff"
	"github.com/ossrs/go-oryx-lib/errors"
)

func ReadAIFC(path string) (*Waveform, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %v", path)
	}
	defer file.Close()

	aiffFile, err := aiff.Parse(file)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %v", path)
	}

	wave, err := FromAiff(aiffFile)
	if err != nil {
		return nil, errors.Wrapf(err, "read %v", path)
	}

	wave.Path = path
	return wave, nil
}

// FromAiff extracts the waveform metadata from a parsed AIFF or AIFC file.
// The codebook and loop come from the VADPCM application chunks.
func FromAiff(aiffFile *aiff.Aiff) (*Waveform, error) {
	if aiffFile.Common.NumChannels != 1 {
		return nil, errors.Wrapf(ErrNotMono, "%v channels", aiffFile.Common.NumChannels)
	}

	if aiffFile.SoundData == nil {
		return nil, ErrNoSoundData
	}

	codec, err := adpcm.CodecFromCompression(aiffFile.Common.CompressionType)
	if err != nil {
		return nil, err
	}

	var result = Waveform{
		SampleRate: aiff.F64FromExtended(aiffFile.Common.SampleRate),
		Codec:      codec,
		DataSize:   aiffFile.SoundDataSize(),
		NumFrames:  uint32(aiffFile.Common.NumSampleFrames),
	}

	if aiffFile.Instrument != nil {
		result.HasInst = true
		result.BaseNote = int(aiffFile.Instrument.BaseNote)
	}

	if data, ok := aiffFile.ApplicationData(aiff.APPL_SIGNATURE, adpcm.VADPCM_CODES_NAME); ok {
		result.Book, err = adpcm.ReadBookFromAIFC(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrapf(err, "codebook")
		}
	}

	if data, ok := aiffFile.ApplicationData(aiff.APPL_SIGNATURE, adpcm.VADPCM_LOOPS_NAME); ok {
		loops, err := adpcm.ReadLoopsFromAIFC(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrapf(err, "loops")
		}

		if len(loops) != 0 {
			result.Loop = &loops[0]
		}
	}

	return &result, nil
}
