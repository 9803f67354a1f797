package soundfont

import (
	"bytes"
	"fmt"
)

// emitDeclarations renders the header with the bank id, the counts and the
// instrument, drum and effect ids. It needs NumDrums from Emit.
func emitDeclarations(bank *Bank) []byte {
	var out bytes.Buffer
	var id = bank.Info.Index

	fmt.Fprintf(&out, "#ifndef SOUNDFONT_%d_H_\n", id)
	fmt.Fprintf(&out, "#define SOUNDFONT_%d_H_\n\n", id)

	fmt.Fprintf(&out, "#ifdef _LANGUAGE_ASEQ\n")
	fmt.Fprintf(&out, ".pushsection .fonts, \"\", @note\n")
	fmt.Fprintf(&out, "    .byte %d /*sf id*/\n", id)
	fmt.Fprintf(&out, ".popsection\n")
	fmt.Fprintf(&out, "#endif\n\n")

	fmt.Fprintf(&out, "#define %s_ID %d\n\n", bank.Info.Name, id)
	fmt.Fprintf(&out, "#define SF%d_NUM_INSTRUMENTS %d\n", id, bank.NumInstruments)
	fmt.Fprintf(&out, "#define SF%d_NUM_DRUMS       %d\n", id, bank.NumDrums)
	fmt.Fprintf(&out, "#define SF%d_NUM_SFX         %d\n\n", id, bank.NumEffects)

	if len(bank.Instruments) != 0 {
		for i, instrument := range bank.Instruments {
			if instrument.Name != "" {
				fmt.Fprintf(&out, "#define %s %d\n", instrument.Name, i)
			}
		}
		fmt.Fprintf(&out, "\n")
	}

	for _, drum := range bank.Drums {
		if drum.Placeholder {
			continue
		}

		for offset := 0; offset < drum.Length(); offset++ {
			fmt.Fprintf(&out, "#define %s_%s %d\n", drum.Name, NoteName(drum.Note(offset)), drum.SemitoneStart+offset)
		}
		fmt.Fprintf(&out, "\n")
	}

	if len(bank.Effects) != 0 {
		for i, effect := range bank.Effects {
			if effect.Sample != nil {
				fmt.Fprintf(&out, "#define %s %d\n", effect.Name, i)
			}
		}
		fmt.Fprintf(&out, "\n")
	}

	fmt.Fprintf(&out, "#endif\n")

	return out.Bytes()
}
