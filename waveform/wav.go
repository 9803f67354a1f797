package waveform

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Thar0/mm/adpcm"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ossrs/go-oryx-lib/errors"
)

// ReadWAV reads a 16 bit PCM wav file. The base note and loop come from the
// smpl chunk; the codebook comes from a text table next to the file with the
// same base name and a .table extension.
func ReadWAV(path string) (*Waveform, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %v", path)
	}
	defer file.Close()

	var decoder = wav.NewDecoder(file)

	decoder.ReadMetadata()
	if err := decoder.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %v", path)
	}

	if err := checkFormat(decoder.Format()); err != nil {
		return nil, errors.Wrapf(err, "read %v", path)
	}

	if decoder.BitDepth != 16 {
		return nil, errors.Errorf("%v has %v bits per sample, want 16", path, decoder.BitDepth)
	}

	var result = Waveform{
		Path:       path,
		SampleRate: float64(decoder.SampleRate),
		Codec:      adpcm.CodecS16,
	}

	if decoder.Metadata != nil && decoder.Metadata.SamplerInfo != nil {
		var info = decoder.Metadata.SamplerInfo

		result.HasInst = true
		result.BaseNote = int(info.MIDIUnityNote)

		if len(info.Loops) != 0 {
			var loop = adpcm.Loop{
				Start: info.Loops[0].Start,
				// smpl loop ends are inclusive
				End:   info.Loops[0].End + 1,
				Count: info.Loops[0].PlayCount,
			}

			// a play count of zero loops forever
			if loop.Count == 0 {
				loop.Count = 0xFFFFFFFF
			}

			result.Loop = &loop
		}
	}

	if err := decoder.Rewind(); err != nil {
		return nil, errors.Wrapf(err, "find sound data in %v", path)
	}

	if decoder.PCMLen() <= 0 {
		return nil, errors.Wrapf(ErrNoSoundData, "read %v", path)
	}

	result.DataSize = uint32(decoder.PCMLen())
	result.NumFrames = result.DataSize / 2

	result.Book, err = readTable(strings.TrimSuffix(path, filepath.Ext(path)) + ".table")
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func checkFormat(format *audio.Format) error {
	if format == nil || format.NumChannels != 1 {
		return ErrNotMono
	}

	if format.SampleRate <= 0 {
		return errors.Errorf("bad sample rate %v", format.SampleRate)
	}

	return nil
}

// readTable returns nil without error when the table does not exist.
func readTable(path string) (*adpcm.Book, error) {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "open %v", path)
	}
	defer file.Close()

	book, err := adpcm.ParseCodebook(file)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %v", path)
	}

	return book, nil
}
