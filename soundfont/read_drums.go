package soundfont

import (
	"github.com/Thar0/mm/xmltree"
)

func (bank *Bank) readDrums(list *xmltree.Node) error {
	for _, node := range list.Children {
		if node.Name != "Drum" {
			return malformed(node, "unexpected element %v in drum list", node.Name)
		}

		if !node.HasAttrs() {
			bank.Drums = append(bank.Drums, &Drum{Placeholder: true, Line: node.Line})
			continue
		}

		drum, err := bank.readDrum(node)
		if err != nil {
			return err
		}

		if _, ok := bank.drums.Declare(drum.Name, drum); !ok {
			return badReference(node, "duplicate drum name %v", drum.Name)
		}

		bank.Drums = append(bank.Drums, drum)
	}

	return nil
}

func (bank *Bank) readDrum(node *xmltree.Node) (*Drum, error) {
	var drum = &Drum{Line: node.Line}

	var envelopeName, sampleName string
	var semitone, start, end, baseNote Optional[int]
	var sampleRate Optional[float64]

	var specs = []attrSpec{
		required("Name", into(&drum.Name, parseCIdentifier)),
		optional("Semitone", intoOptional(&semitone, ParseNote)),
		optional("SemitoneStart", intoOptional(&start, ParseNote)),
		optional("SemitoneEnd", intoOptional(&end, ParseNote)),
		required("Pan", into(&drum.Pan, parseInt)),
		required("Envelope", into(&envelopeName, parseCIdentifier)),
		required("Sample", into(&sampleName, parseCIdentifier)),
		optional("SampleRate", intoOptional(&sampleRate, parseDouble)),
		optional("BaseNote", intoOptional(&baseNote, ParseNote)),
	}

	if err := parseAttrs(node, specs); err != nil {
		return nil, err
	}

	envelope, ok := bank.envelopes.Lookup(envelopeName)
	if !ok {
		return nil, badReference(node, "unknown envelope %v", envelopeName)
	}
	drum.Envelope = envelope

	if semitone.Set {
		if start.Set || end.Set {
			return nil, badReference(node, "overspecified semitone range, Semitone is given with SemitoneStart or SemitoneEnd")
		}
		start, end = semitone, semitone
	} else if !start.Set || !end.Set {
		return nil, badReference(node, "incomplete semitone range, SemitoneStart and SemitoneEnd are both required")
	}

	drum.SemitoneStart = start.Value
	drum.SemitoneEnd = end.Value

	if drum.SemitoneEnd < drum.SemitoneStart {
		return nil, badReference(node, "invalid drum semitone range %v - %v", drum.SemitoneStart, drum.SemitoneEnd)
	}

	if drum.SemitoneEnd >= MaxDrumSemitones {
		return nil, badReference(node, "drum semitone %v is past the end of the %v entry drum table", drum.SemitoneEnd, MaxDrumSemitones)
	}

	sample, ok := bank.samples.Lookup(sampleName)
	if !ok {
		return nil, badReference(node, "unknown sample %v", sampleName)
	}
	drum.Sample = sample
	drum.SampleRate = sampleRate.Or(sample.SampleRate)

	if baseNote.Set {
		drum.BaseNote = baseNote.Value
	} else if sample.Wave.HasInst {
		drum.BaseNote = sample.BaseNote
	} else {
		return nil, providerError(node, "no base note for drum %v, %v has no instrument data", drum.Name, sample.Wave.Path)
	}

	return drum, nil
}
