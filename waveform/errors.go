package waveform

import "github.com/ossrs/go-oryx-lib/errors"

var (
	ErrUnknownSample = errors.New("sample not found in any sample bank")
	ErrNotMono       = errors.New("waveform must have exactly one channel")
	ErrNoSoundData   = errors.New("waveform has no sound data")
)
