// Package soundfont compiles a soundfont description into C source that
// reproduces the audio driver's binary bank layout.
package soundfont

import (
	"context"

	"github.com/Thar0/mm/waveform"
	"github.com/Thar0/mm/xmltree"
	"github.com/ossrs/go-oryx-lib/errors"
	"github.com/ossrs/go-oryx-lib/logger"
)

type Options struct {
	Quirks Quirks
	// SampleBankName is the name of the sample bank holding the sample data.
	SampleBankName string
}

// Build reads the description rooted at root into a bank. Envelopes are read
// first, then samples, then instruments, drums and effects in document order,
// then match padding.
func Build(ctx context.Context, root *xmltree.Node, provider waveform.Provider, options Options) (*Bank, error) {
	info, err := ReadInfo(root)
	if err != nil {
		return nil, err
	}

	if options.SampleBankName == "" {
		return nil, errors.Errorf("no sample bank name for %v", info.Name)
	}

	var bank = newBank(info, options)

	for _, node := range root.Children {
		switch node.Name {
		case "Envelopes":
			if err := bank.readEnvelopes(node); err != nil {
				return nil, err
			}
		case "Samples", "Instruments", "Drums", "Effects", "MatchPadding":
		default:
			logger.Wf(ctx, "ignore unknown element %v at line %v", node.Name, node.Line)
		}
	}

	for _, node := range root.Children {
		if node.Name == "Samples" {
			if err := bank.readSamples(node, provider); err != nil {
				return nil, err
			}
		}
	}

	for _, node := range root.Children {
		switch node.Name {
		case "Instruments":
			err = bank.readInstruments(node)
		case "Drums":
			err = bank.readDrums(node)
		case "Effects":
			err = bank.readEffects(node)
		}

		if err != nil {
			return nil, err
		}
	}

	for _, node := range root.Children {
		if node.Name == "MatchPadding" {
			if err := bank.readMatchPadding(node); err != nil {
				return nil, err
			}
		}
	}

	logger.Tf(ctx, "read soundfont %v: %v envelopes, %v samples, %v instruments, %v drums, %v effects",
		info.Name, len(bank.Envelopes), len(bank.Samples), len(bank.Instruments), len(bank.Drums), len(bank.Effects))

	return bank, nil
}

// Compile builds the bank and emits its outputs.
func Compile(ctx context.Context, root *xmltree.Node, provider waveform.Provider, options Options) (*Output, error) {
	bank, err := Build(ctx, root, provider, options)
	if err != nil {
		return nil, err
	}

	return Emit(ctx, bank)
}
