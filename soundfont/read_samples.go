package soundfont

import (
	"github.com/Thar0/mm/waveform"
	"github.com/Thar0/mm/xmltree"
)

func (bank *Bank) readSamples(list *xmltree.Node, provider waveform.Provider) error {
	var isDD, cached bool

	var defaults = []attrSpec{
		optional("IsDD", into(&isDD, parseBool)),
		optional("Cached", into(&cached, parseBool)),
	}

	if err := parseAttrs(list, defaults); err != nil {
		return err
	}

	for _, node := range list.Children {
		if node.Name != "Sample" {
			return malformed(node, "unexpected element %v in sample list", node.Name)
		}

		var sample = Sample{IsDD: isDD, Cached: cached, Line: node.Line}
		var sampleRate Optional[float64]
		var baseNote Optional[int]

		var specs = []attrSpec{
			required("Name", into(&sample.Name, parseCIdentifier)),
			optional("SampleRate", intoOptional(&sampleRate, parseDouble)),
			optional("BaseNote", intoOptional(&baseNote, ParseNote)),
			optional("IsDD", into(&sample.IsDD, parseBool)),
			optional("Cached", into(&sample.Cached, parseBool)),
		}

		if err := parseAttrs(node, specs); err != nil {
			return err
		}

		wave, err := provider.Waveform(sample.Name)
		if err != nil {
			return providerError(node, "%v", err)
		}

		sample.Wave = wave
		sample.SampleRate = sampleRate.Or(wave.SampleRate)

		if baseNote.Set {
			sample.BaseNote = baseNote.Value
		} else if wave.HasInst {
			sample.BaseNote = MidiToZ64Note(wave.BaseNote)
		} else {
			return providerError(node, "sample %v has no base note and %v has no instrument data", sample.Name, wave.Path)
		}

		if wave.Book == nil {
			return providerError(node, "sample %v has no codebook in %v", sample.Name, wave.Path)
		}

		if _, ok := bank.samples.Declare(sample.Name, &sample); !ok {
			return badReference(node, "duplicate sample name %v", sample.Name)
		}

		bank.Samples = append(bank.Samples, &sample)
	}

	return nil
}

// slot resolves one instrument, drum or effect sample reference.
func (bank *Bank) slot(node *xmltree.Node, name string, baseNote Optional[int], sampleRate Optional[float64]) (*InstrumentSample, error) {
	sample, ok := bank.samples.Lookup(name)
	if !ok {
		return nil, badReference(node, "unknown sample %v", name)
	}

	var result = &InstrumentSample{
		Sample:     sample,
		BaseNote:   baseNote.Or(sample.BaseNote),
		SampleRate: sampleRate.Or(sample.SampleRate),
	}
	result.Tuning = Tuning(result.SampleRate, result.BaseNote)

	return result, nil
}
