package soundfont

import (
	"math"

	"github.com/Thar0/mm/adpcm"
)

// Quirks disables the compatibility behaviors that reproduce the layout of
// the historical banks. The zero value keeps all of them.
type Quirks struct {
	// ComputedMidTuning emits the computed mid sample tuning instead of
	// substituting the bit pattern the historical data holds.
	ComputedMidTuning bool
	// OmitEmptyEnvelopes drops placeholder envelopes instead of emitting 16
	// zero bytes for each.
	OmitEmptyEnvelopes bool
}

// MatchingQuirks reproduces the historical layout byte for byte.
func MatchingQuirks() Quirks {
	return Quirks{}
}

func NonMatchingQuirks() Quirks {
	return Quirks{ComputedMidTuning: true, OmitEmptyEnvelopes: true}
}

const (
	midTuningComputed = 0x3E7319DF
	midTuningStored   = 0x3E7319E3
)

func (quirks Quirks) midTuning(tuning float32) float32 {
	if !quirks.ComputedMidTuning && math.Float32bits(tuning) == midTuningComputed {
		return math.Float32frombits(midTuningStored)
	}

	return tuning
}

// loopFrameCount derives the frame count from the compressed size rather than
// trusting the count stored in the file, which is off by one for some samples.
func loopFrameCount(dataSize uint32, codec adpcm.Codec) uint32 {
	return dataSize * 16 / codec.FrameSize()
}
