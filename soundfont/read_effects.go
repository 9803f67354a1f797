package soundfont

import (
	"github.com/Thar0/mm/xmltree"
)

func (bank *Bank) readEffects(list *xmltree.Node) error {
	for _, node := range list.Children {
		if node.Name != "Effect" {
			return malformed(node, "unexpected element %v in effect list", node.Name)
		}

		bank.NumEffects++

		if !node.HasAttrs() {
			bank.Effects = append(bank.Effects, &Effect{Line: node.Line})
			continue
		}

		var effect = &Effect{Line: node.Line}
		var sampleName string
		var baseNote Optional[int]
		var sampleRate Optional[float64]

		var specs = []attrSpec{
			required("Name", into(&effect.Name, parseCIdentifier)),
			required("Sample", into(&sampleName, parseCIdentifier)),
			optional("SampleRate", intoOptional(&sampleRate, parseDouble)),
			optional("BaseNote", intoOptional(&baseNote, ParseNote)),
		}

		if err := parseAttrs(node, specs); err != nil {
			return err
		}

		// NONE names an effect without a sample, emitted with zero tuning.
		if sampleName != NoSample {
			slot, err := bank.slot(node, sampleName, baseNote, sampleRate)
			if err != nil {
				return err
			}

			effect.Sample = slot.Sample
			effect.BaseNote = slot.BaseNote
			effect.SampleRate = slot.SampleRate
			effect.Tuning = slot.Tuning
		}

		if _, ok := bank.effects.Declare(effect.Name, effect); !ok {
			return badReference(node, "duplicate effect name %v", effect.Name)
		}

		bank.Effects = append(bank.Effects, effect)
	}

	return nil
}
