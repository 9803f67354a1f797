package soundfont

import (
	"github.com/Thar0/mm/xmltree"
)

type instrumentAttrs struct {
	envelope string
	release  Optional[uint8]

	mid, lo, hi             Optional[string]
	midNote, loNote, hiNote Optional[int]
	midRate, loRate, hiRate Optional[float64]
	rangeLo, rangeHi        Optional[int]
	structIndex             Optional[int]
}

func (bank *Bank) readInstruments(list *xmltree.Node) error {
	var nextStructIndex int

	for _, node := range list.Children {
		var unused bool

		switch node.Name {
		case "Instrument":
		case "InstrumentUnused":
			unused = true
		default:
			return malformed(node, "unexpected element %v in instrument list", node.Name)
		}

		if !unused {
			bank.NumInstruments++
		}

		if !unused && !node.HasAttrs() {
			bank.Instruments = append(bank.Instruments, &Instrument{Placeholder: true, StructIndex: -1, Line: node.Line})
			continue
		}

		instrument, err := bank.readInstrument(node, unused, nextStructIndex)
		if err != nil {
			return err
		}

		nextStructIndex = instrument.StructIndex + 1

		if instrument.Name != "" {
			if _, ok := bank.instruments.Declare(instrument.Name, instrument); !ok {
				return badReference(node, "duplicate instrument name %v", instrument.Name)
			}
		}

		bank.Instruments = append(bank.Instruments, instrument)
		bank.addStructOrder(len(bank.Instruments) - 1)
	}

	return nil
}

func (bank *Bank) readInstrument(node *xmltree.Node, unused bool, structIndex int) (*Instrument, error) {
	var instrument = &Instrument{Unused: unused, Line: node.Line}
	var attrs instrumentAttrs

	var specs = []attrSpec{
		optional("Name", into(&instrument.Name, parseCIdentifier)),
		optional("MatchOrder", intoOptional(&attrs.structIndex, parseInt)),
		required("Envelope", into(&attrs.envelope, parseCIdentifier)),
		optional("Release", intoOptional(&attrs.release, parseU8)),

		optional("Sample", intoOptional(&attrs.mid, parseCIdentifier)),
		optional("BaseNote", intoOptional(&attrs.midNote, ParseNote)),
		optional("SampleRate", intoOptional(&attrs.midRate, parseDouble)),

		optional("RangeLo", intoOptional(&attrs.rangeLo, ParseNote)),
		optional("SampleLo", intoOptional(&attrs.lo, parseCIdentifier)),
		optional("BaseNoteLo", intoOptional(&attrs.loNote, ParseNote)),
		optional("SampleRateLo", intoOptional(&attrs.loRate, parseDouble)),

		optional("RangeHi", intoOptional(&attrs.rangeHi, ParseNote)),
		optional("SampleHi", intoOptional(&attrs.hi, parseCIdentifier)),
		optional("BaseNoteHi", intoOptional(&attrs.hiNote, ParseNote)),
		optional("SampleRateHi", intoOptional(&attrs.hiRate, parseDouble)),
	}

	if err := parseAttrs(node, specs); err != nil {
		return nil, err
	}

	if !unused && instrument.Name == "" {
		return nil, malformed(node, "instrument must be named")
	}

	instrument.StructIndex = attrs.structIndex.Or(structIndex)
	instrument.RangeLo = attrs.rangeLo.Or(RangeLoNone)
	instrument.RangeHi = attrs.rangeHi.Or(RangeHiNone)

	envelope, ok := bank.envelopes.Lookup(attrs.envelope)
	if !ok {
		return nil, badReference(node, "unknown envelope %v", attrs.envelope)
	}

	instrument.Envelope = envelope
	instrument.Release = attrs.release.Or(0)
	if instrument.Release == 0 {
		instrument.Release = envelope.Release
	}

	// With a Sample attribute the ranges are taken as given, a range without
	// its SampleLo or SampleHi leaves that slot empty.
	if !attrs.mid.Set {
		if err := readInstrumentSamples(node, instrument, &attrs); err != nil {
			return nil, err
		}
	}

	var err error

	if attrs.lo.Set {
		if instrument.Low, err = bank.slot(node, attrs.lo.Value, attrs.loNote, attrs.loRate); err != nil {
			return nil, err
		}
	}

	if instrument.Mid, err = bank.slot(node, attrs.mid.Value, attrs.midNote, attrs.midRate); err != nil {
		return nil, err
	}
	instrument.Mid.Tuning = bank.Quirks.midTuning(instrument.Mid.Tuning)

	if attrs.hi.Set {
		if instrument.High, err = bank.slot(node, attrs.hi.Value, attrs.hiNote, attrs.hiRate); err != nil {
			return nil, err
		}
	}

	return instrument, nil
}

// readInstrumentSamples reads the <Sample Low=|Mid=|High=> children that name
// the slot samples when the instrument has no Sample attribute.
func readInstrumentSamples(node *xmltree.Node, instrument *Instrument, attrs *instrumentAttrs) error {
	if instrument.RangeLo == RangeLoNone && instrument.RangeHi == RangeHiNone {
		return badReference(node, "instrument has no Sample attribute and no sample ranges")
	}

	if !node.HasChildren() {
		return malformed(node, "sample list is empty")
	}

	for _, child := range node.Children {
		if child.Name != "Sample" {
			return malformed(child, "unexpected element %v in instrument sample list", child.Name)
		}

		if len(child.Attrs) != 1 {
			return malformed(child, "instrument sample should have exactly one of Low, Mid or High")
		}

		var attr = child.Attrs[0]
		var target *Optional[string]

		switch attr.Name {
		case "Low":
			if instrument.RangeLo == RangeLoNone {
				return badReference(child, "useless Low sample specified, RangeLo is %v", RangeLoNone)
			}
			target = &attrs.lo
		case "Mid":
			target = &attrs.mid
		case "High":
			if instrument.RangeHi == RangeHiNone {
				return badReference(child, "useless High sample specified, RangeHi is %v", RangeHiNone)
			}
			target = &attrs.hi
		default:
			return malformed(child, "unexpected attribute %v for instrument sample", attr.Name)
		}

		if target.Set {
			return badReference(child, "duplicate %v sample specifier", attr.Name)
		}

		name, err := parseCIdentifier(attr.Value)
		if err != nil {
			return malformed(child, "bad value %q for attribute %v: %v", attr.Value, attr.Name, err)
		}

		*target = Optional[string]{Value: name, Set: true}
	}

	if !attrs.mid.Set && instrument.RangeLo != instrument.RangeHi {
		return badReference(node, "unset-but-used Mid sample")
	}
	if !attrs.lo.Set && instrument.RangeLo != RangeLoNone {
		return badReference(node, "unset-but-used Low sample")
	}
	if !attrs.hi.Set && instrument.RangeHi != RangeHiNone {
		return badReference(node, "unset-but-used High sample")
	}

	return nil
}
