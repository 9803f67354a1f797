// Package waveform reads the metadata the compiler needs from sample files:
// rate, base note, codec, compressed size, codebook and loop.
package waveform

import (
	"path/filepath"
	"strings"

	"github.com/Thar0/mm/adpcm"
	"github.com/Thar0/mm/samplebank"
	"github.com/ossrs/go-oryx-lib/errors"
)

// Waveform is the decoded metadata of one sample file.
type Waveform struct {
	Path       string
	SampleRate float64
	// HasInst reports whether the file carries a base note (AIFF INST or WAV smpl).
	HasInst bool
	// BaseNote is a MIDI note number, valid when HasInst is set.
	BaseNote int
	Codec    adpcm.Codec
	// DataSize is the byte count of the compressed sample data.
	DataSize  uint32
	NumFrames uint32
	Book      *adpcm.Book
	// Loop is nil when the file has no loop.
	Loop *adpcm.Loop
}

// Provider returns waveform metadata by sample name.
type Provider interface {
	Waveform(name string) (*Waveform, error)
}

// Read picks a reader by file extension.
func Read(path string) (*Waveform, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".aifc", ".aiff", ".aif":
		return ReadAIFC(path)
	case ".wav":
		return ReadWAV(path)
	}

	return nil, errors.Errorf("unsupported waveform file %v", path)
}

// Library serves waveforms listed in sample banks. Names are looked up in
// each bank in order.
type Library struct {
	banks []*samplebank.Bank
	cache map[string]*Waveform
}

func NewLibrary(banks ...*samplebank.Bank) *Library {
	var library = &Library{cache: make(map[string]*Waveform)}

	for _, bank := range banks {
		if bank != nil {
			library.banks = append(library.banks, bank)
		}
	}

	return library
}

func (library *Library) Waveform(name string) (*Waveform, error) {
	if wave, ok := library.cache[name]; ok {
		return wave, nil
	}

	for _, bank := range library.banks {
		path, ok := bank.PathForName(name)
		if !ok {
			continue
		}

		wave, err := Read(path)
		if err != nil {
			return nil, errors.Wrapf(err, "sample %v", name)
		}

		library.cache[name] = wave
		return wave, nil
	}

	return nil, errors.Wrapf(ErrUnknownSample, "sample %v", name)
}
