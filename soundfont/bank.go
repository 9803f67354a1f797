package soundfont

import (
	"github.com/Thar0/mm/waveform"
)

// Envelope point delays with a special meaning.
const (
	EnvelopeDisable = 0
	EnvelopeHang    = -1
	EnvelopeGoto    = -2
	EnvelopeRestart = -3
)

// Instrument range bounds that mean the low or high slot is not used.
const (
	RangeLoNone = 0
	RangeHiNone = 127
)

// MaxDrumSemitones is the capacity of the drum pointer table.
const MaxDrumSemitones = 64

// NoSample is the effect sample name that leaves the effect without a sample.
const NoSample = "NONE"

// Info is read from the attributes of the root Soundfont element.
type Info struct {
	Name         string
	Symbol       string
	Index        int
	Medium       string
	CachePolicy  string
	SampleBank   string
	SampleBankDD string
	PointerIndex Optional[int]
	// PadToSize is the total size the bank is padded out to, zero for none.
	PadToSize       uint32
	LoopsHaveFrames bool
}

type EnvelopePoint struct {
	Delay int16
	Arg   int16
}

// Envelope has no name when it is an empty placeholder.
type Envelope struct {
	Name    string
	Empty   bool
	Release uint8
	Points  []EnvelopePoint
}

type Sample struct {
	Name       string
	SampleRate float64
	BaseNote   int
	IsDD       bool
	Cached     bool
	Wave       *waveform.Waveform
	Line       int
}

// InstrumentSample is one of the low, mid or high sample slots of an
// instrument with its resolved base note and rate.
type InstrumentSample struct {
	Sample     *Sample
	BaseNote   int
	SampleRate float64
	Tuning     float32
}

type Instrument struct {
	Name string
	// Placeholder instruments reserve a pointer table slot and emit nothing else.
	Placeholder bool
	// Unused instruments are emitted but have no pointer table slot.
	Unused      bool
	StructIndex int
	Envelope    *Envelope
	Release     uint8
	RangeLo     int
	RangeHi     int
	Low         *InstrumentSample
	Mid         *InstrumentSample
	High        *InstrumentSample
	Line        int
}

type Drum struct {
	Name          string
	Placeholder   bool
	Pan           int
	Envelope      *Envelope
	Sample        *Sample
	SemitoneStart int
	SemitoneEnd   int
	BaseNote      int
	SampleRate    float64
	Line          int
}

func (drum *Drum) Length() int {
	return drum.SemitoneEnd - drum.SemitoneStart + 1
}

// Note is the driver note played by the entry at offset, wrapping past 127.
func (drum *Drum) Note(offset int) int {
	var note = drum.BaseNote + offset
	if note > 127 {
		note -= 128
	}
	return note
}

// Effect has a nil Sample when it is a placeholder or names NoSample. Only
// the latter has a Name.
type Effect struct {
	Name       string
	Sample     *Sample
	BaseNote   int
	SampleRate float64
	Tuning     float32
	Line       int
}

type Bank struct {
	Info   Info
	Quirks Quirks
	// SampleBankName prefixes the sample data symbols.
	SampleBankName string

	Envelopes []*Envelope
	Samples   []*Sample
	// Instruments are in logical order, the order of the header pointer table.
	Instruments []*Instrument
	// structOrder indexes Instruments by descending struct index.
	structOrder  []int
	Drums        []*Drum
	Effects      []*Effect
	MatchPadding []byte

	NumInstruments int
	NumDrums       int
	NumEffects     int

	envelopes   *Registry[string, *Envelope]
	samples     *Registry[string, *Sample]
	instruments *Registry[string, *Instrument]
	drums       *Registry[string, *Drum]
	effects     *Registry[string, *Effect]
}

func newBank(info Info, options Options) *Bank {
	return &Bank{
		Info:           info,
		Quirks:         options.Quirks,
		SampleBankName: options.SampleBankName,
		envelopes:      NewRegistry[string, *Envelope](),
		samples:        NewRegistry[string, *Sample](),
		instruments:    NewRegistry[string, *Instrument](),
		drums:          NewRegistry[string, *Drum](),
		effects:        NewRegistry[string, *Effect](),
	}
}

func (bank *Bank) Envelope(name string) (*Envelope, bool) {
	return bank.envelopes.Lookup(name)
}

func (bank *Bank) Sample(name string) (*Sample, bool) {
	return bank.samples.Lookup(name)
}

// addStructOrder links the instrument at slot into struct order. An entry
// whose index is not below the head becomes the head, otherwise it goes in
// front of the first later entry with an index not above its own.
func (bank *Bank) addStructOrder(slot int) {
	var index = bank.Instruments[slot].StructIndex
	var order = bank.structOrder

	if len(order) == 0 || index >= bank.Instruments[order[0]].StructIndex {
		bank.structOrder = append([]int{slot}, order...)
		return
	}

	var at = len(order)
	for i := 1; i < len(order); i++ {
		if index >= bank.Instruments[order[i]].StructIndex {
			at = i
			break
		}
	}

	bank.structOrder = append(order[:at], append([]int{slot}, order[at:]...)...)
}

// StructOrder lists the instruments that have a struct, lowest struct index first.
func (bank *Bank) StructOrder() []*Instrument {
	var result = make([]*Instrument, 0, len(bank.structOrder))

	for i := len(bank.structOrder) - 1; i >= 0; i-- {
		result = append(result, bank.Instruments[bank.structOrder[i]])
	}

	return result
}
