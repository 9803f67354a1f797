package soundfont

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ossrs/go-oryx-lib/logger"
)

// Block is one structure of the definitions output with its offset in the bank.
type Block struct {
	Symbol string
	Offset int
	Size   int
}

type Output struct {
	// Definitions is the C source holding the bank data.
	Definitions []byte
	// Declarations is the C header with the bank ids and counts.
	Declarations []byte
	// Name is the bank name, a marker for the build system.
	Name   []byte
	Blocks []Block
	// Size is the bank size in bytes without the PadToSize block.
	Size int
}

// emitter writes the definitions output and tracks the bank size.
type emitter struct {
	bank    *Bank
	out     bytes.Buffer
	size    int
	symbols *Registry[string, int]
	blocks  []Block
}

func align16(n int) int {
	return (n + 0xF) &^ 0xF
}

func (e *emitter) printf(format string, args ...interface{}) {
	fmt.Fprintf(&e.out, format, args...)
}

// block records a structure of size bytes at the current offset.
func (e *emitter) block(symbol string, size int) error {
	if _, ok := e.symbols.Declare(symbol, e.size); !ok {
		return badReference(nil, "symbol %v is defined twice", symbol)
	}

	e.blocks = append(e.blocks, Block{Symbol: symbol, Offset: e.size, Size: size})
	e.size += size
	return nil
}

// pad pads a structure of pos bytes that started on a 16 byte boundary.
func (e *emitter) pad(pos int) error {
	switch align16(pos) - pos {
	case 0:
	case 4:
		e.printf("SF_PAD4();\n")
	case 8:
		e.printf("SF_PAD8();\n")
	case 0xC:
		e.printf("SF_PADC();\n")
	default:
		return internalError("bad alignment generated for a structure of %v bytes", pos)
	}

	return nil
}

func (e *emitter) id() int {
	return e.bank.Info.Index
}

// Emit renders the bank. It sets NumDrums to the drum pointer table length.
func Emit(ctx context.Context, bank *Bank) (*Output, error) {
	var e = &emitter{bank: bank, symbols: NewRegistry[string, int]()}

	e.printf("#include \"soundfont_file.h\"\n\n")

	for _, step := range []func() error{
		e.emitHeader,
		e.emitSamples,
		e.emitEnvelopes,
		e.emitInstruments,
		e.emitDrums,
		e.emitEffects,
	} {
		if err := step(); err != nil {
			return nil, err
		}
	}

	var size = e.emitMatchPadding(ctx)

	logger.Tf(ctx, "emitted soundfont %v: %v structures, 0x%X bytes", bank.Info.Name, len(e.blocks), size)

	return &Output{
		Definitions:  e.out.Bytes(),
		Declarations: emitDeclarations(bank),
		Name:         []byte(bank.Info.Name),
		Blocks:       e.blocks,
		Size:         size,
	}, nil
}

func (e *emitter) emitHeader() error {
	var bank = e.bank

	e.printf("// HEADER\n\n")

	if len(bank.Drums) != 0 {
		e.printf("extern Drum* SF%d_DRUMS_PTR_LIST[];\n\n", e.id())
	}

	if len(bank.Effects) != 0 {
		e.printf("extern SoundEffect SF%d_SFX_LIST[];\n\n", e.id())
	}

	if len(bank.Instruments) != 0 {
		for _, instrument := range bank.Instruments {
			if instrument.Name != "" {
				e.printf("extern Instrument %s;\n", instrument.Name)
			}
		}
		e.printf("\n")
	}

	var pos = 0

	if len(bank.Drums) != 0 {
		e.printf("NO_REORDER DATA Drum** SF%d_DRUMS_PTR_LIST_PTR = SF%d_DRUMS_PTR_LIST;\n", e.id(), e.id())
	} else {
		e.printf("NO_REORDER DATA Drum** SF%d_DRUMS_PTR_LIST_PTR = NULL;\n", e.id())
	}
	pos += 4

	if len(bank.Effects) != 0 {
		e.printf("NO_REORDER DATA SoundEffect* SF%d_SFX_LIST_PTR = SF%d_SFX_LIST;\n", e.id(), e.id())
	} else {
		e.printf("NO_REORDER DATA SoundEffect* SF%d_SFX_LIST_PTR = NULL;\n", e.id())
	}
	pos += 4

	if len(bank.Instruments) != 0 {
		e.printf("NO_REORDER DATA Instrument* SF%d_INSTRUMENT_PTR_LIST[] = {\n", e.id())

		for _, instrument := range bank.Instruments {
			if instrument.Unused {
				continue
			}

			if instrument.Placeholder {
				e.printf("    NULL,\n")
			} else {
				e.printf("    &%s,\n", instrument.Name)
			}
			pos += 4
		}

		e.printf("};\n")
	}

	if err := e.pad(pos); err != nil {
		return err
	}
	e.printf("\n")

	return e.block(fmt.Sprintf("SF%d_DRUMS_PTR_LIST_PTR", e.id()), align16(pos))
}

func (e *emitter) emitSamples() error {
	var bank = e.bank

	for i, sample := range bank.Samples {
		var wave = sample.Wave
		bookName, newBook := bookSymbol(bank.Samples, i)

		e.printf("// SAMPLE %d\n\n", i)

		e.printf("extern u8 %s_%s_Off[];\n", bank.SampleBankName, sample.Name)
		e.printf("extern AdpcmBook SF%d_%s_BOOK;\n", e.id(), bookName)
		e.printf("extern AdpcmLoop SF%d_%s_LOOP;\n\n", e.id(), sample.Name)

		var isDD = 0
		if sample.IsDD {
			isDD = 1
		}

		e.printf("NO_REORDER DATA Sample SF%d_%s_HEADER = {\n", e.id(), sample.Name)
		e.printf("    %d, %s, %d, %t, %t,\n", 0, wave.Codec.EnumName(), isDD, sample.Cached, false)
		e.printf("    0x%06X,\n", wave.DataSize)
		e.printf("    %s_%s_Off,\n", bank.SampleBankName, sample.Name)
		e.printf("    &SF%d_%s_LOOP,\n", e.id(), sample.Name)
		e.printf("    &SF%d_%s_BOOK,\n", e.id(), bookName)
		e.printf("};\n\n")

		if err := e.block(fmt.Sprintf("SF%d_%s_HEADER", e.id(), sample.Name), 0x10); err != nil {
			return err
		}

		if newBook {
			if err := e.emitBook(sample, bookName); err != nil {
				return err
			}
		}

		if err := e.emitLoop(sample); err != nil {
			return err
		}
	}

	return nil
}

func (e *emitter) emitBook(sample *Sample, bookName string) error {
	var book = sample.Wave.Book

	e.printf("NO_REORDER DATA ALIGNED(16) AdpcmBookHeader SF%d_%s_BOOK_HEADER = {\n", e.id(), bookName)
	e.printf("    %d, %d,\n", book.Order, book.NPredictors)
	e.printf("};\n")
	e.printf("NO_REORDER DATA AdpcmBookData SF%d_%s_BOOK_DATA = {\n", e.id(), bookName)

	for row := 0; row+8 <= len(book.Data); row += 8 {
		e.printf("   ")
		for _, value := range book.Data[row : row+8] {
			e.printf(" (s16)0x%04X,", uint16(value))
		}
		e.printf("\n")
	}

	e.printf("};\n")
	e.printf("#pragma weak SF%d_%s_BOOK = SF%d_%s_BOOK_HEADER\n", e.id(), bookName, e.id(), bookName)

	var size = book.SizeInBytes()
	if err := e.pad(size); err != nil {
		return err
	}
	e.printf("\n")

	return e.block(fmt.Sprintf("SF%d_%s_BOOK_HEADER", e.id(), bookName), align16(size))
}

func (e *emitter) emitLoop(sample *Sample) error {
	var wave = sample.Wave
	var frames = loopFrameCount(wave.DataSize, wave.Codec)

	if wave.Loop == nil || wave.Loop.Count == 0 {
		var start, end, count uint32 = 0, frames, 0

		if wave.Loop != nil {
			start, end, count = wave.Loop.Start, wave.Loop.End, wave.Loop.Count
		}

		e.printf("NO_REORDER DATA ALIGNED(16) AdpcmLoopHeader SF%d_%s_LOOP_HEADER = {\n", e.id(), sample.Name)
		e.printf("    %d, %d, %d, 0,\n", start, end, count)
		e.printf("};\n")
		e.printf("#pragma weak SF%d_%s_LOOP = SF%d_%s_LOOP_HEADER\n\n", e.id(), sample.Name, e.id(), sample.Name)

		return e.block(fmt.Sprintf("SF%d_%s_LOOP_HEADER", e.id(), sample.Name), 0x10)
	}

	if !e.bank.Info.LoopsHaveFrames {
		frames = 0
	}

	var count = fmt.Sprintf("%d", wave.Loop.Count)
	if wave.Loop.Count == 0xFFFFFFFF {
		count = fmt.Sprintf("0x%08X", wave.Loop.Count)
	}

	e.printf("NO_REORDER DATA ALIGNED(16) AdpcmLoop SF%d_%s_LOOP = {\n", e.id(), sample.Name)
	e.printf("    { %d, %d, %s, %d },\n", wave.Loop.Start, wave.Loop.End, count, frames)
	e.printf("    {\n")
	for row := 0; row < len(wave.Loop.State); row += 4 {
		var state = wave.Loop.State[row : row+4]
		e.printf("        (s16)0x%04X, (s16)0x%04X, (s16)0x%04X, (s16)0x%04X,\n",
			uint16(state[0]), uint16(state[1]), uint16(state[2]), uint16(state[3]))
	}
	e.printf("    },\n")
	e.printf("};\n\n")

	return e.block(fmt.Sprintf("SF%d_%s_LOOP", e.id(), sample.Name), 0x30)
}

func (e *emitter) emitEnvelopes() error {
	var bank = e.bank

	if len(bank.Envelopes) == 0 {
		return nil
	}

	e.printf("// ENVELOPES\n\n")

	var empty = 0

	for _, envelope := range bank.Envelopes {
		if envelope.Empty {
			if bank.Quirks.OmitEmptyEnvelopes {
				continue
			}

			e.printf("NO_REORDER DATA EnvelopePoint SF%d_ENV_EMPTY_%d[] = {\n", e.id(), empty)
			for i := 0; i < 4; i++ {
				e.printf("    { 0, 0, },\n")
			}
			e.printf("};\n\n")

			if err := e.block(fmt.Sprintf("SF%d_ENV_EMPTY_%d", e.id(), empty), 0x10); err != nil {
				return err
			}

			empty++
			continue
		}

		e.printf("NO_REORDER DATA EnvelopePoint SF%d_%s[] = {\n", e.id(), envelope.Name)

		for _, point := range envelope.Points {
			switch point.Delay {
			case EnvelopeDisable:
				e.printf("    ENVELOPE_DISABLE(),\n")
			case EnvelopeGoto:
				e.printf("    ENVELOPE_GOTO(%d),\n", point.Arg)
			case EnvelopeHang:
				e.printf("    ENVELOPE_HANG(),\n")
			case EnvelopeRestart:
				e.printf("    ENVELOPE_RESTART(),\n")
			default:
				e.printf("    ENVELOPE_POINT(%5d, %5d),\n", point.Delay, point.Arg)
			}
		}

		// every envelope ends with a hang
		e.printf("    ENVELOPE_HANG(),\n")
		e.printf("};\n")

		var size = 4 * (len(envelope.Points) + 1)
		if err := e.pad(size); err != nil {
			return err
		}
		e.printf("\n")

		if err := e.block(fmt.Sprintf("SF%d_%s", e.id(), envelope.Name), align16(size)); err != nil {
			return err
		}
	}

	return nil
}

func (e *emitter) emitInstrumentSample(slot *InstrumentSample) {
	if slot == nil {
		e.printf("    INSTR_SAMPLE_NONE,\n")
		return
	}

	e.printf("    { &SF%d_%s_HEADER, %.22ff },\n", e.id(), slot.Sample.Name, float64(slot.Tuning))
}

func (e *emitter) emitInstruments() error {
	var instruments = e.bank.StructOrder()

	if len(instruments) == 0 {
		return nil
	}

	e.printf("// INSTRUMENTS\n\n")

	var unused = 0

	for _, instrument := range instruments {
		var symbol = instrument.Name

		if instrument.Unused {
			symbol = fmt.Sprintf("_INSTR_UNUSED_%d", unused)
			unused++
		}

		e.printf("NO_REORDER DATA Instrument %s = {\n", symbol)

		var rangeLo = "INSTR_SAMPLE_LO_NONE"
		if instrument.RangeLo != RangeLoNone {
			rangeLo = fmt.Sprintf("%3d", instrument.RangeLo)
		}

		var rangeHi = "INSTR_SAMPLE_HI_NONE"
		if instrument.RangeHi != RangeHiNone {
			rangeHi = fmt.Sprintf("%3d", instrument.RangeHi)
		}

		e.printf("    false,\n")
		e.printf("    %s,\n", rangeLo)
		e.printf("    %s,\n", rangeHi)
		e.printf("    %d,\n", instrument.Release)
		e.printf("    SF%d_%s,\n", e.id(), instrument.Envelope.Name)

		e.emitInstrumentSample(instrument.Low)
		e.emitInstrumentSample(instrument.Mid)
		e.emitInstrumentSample(instrument.High)

		e.printf("};\n\n")

		if err := e.block(symbol, 0x20); err != nil {
			return err
		}
	}

	return nil
}

type drumTableEntry struct {
	drum   *Drum
	offset int
}

func (e *emitter) emitDrums() error {
	var bank = e.bank

	if len(bank.Drums) == 0 {
		return nil
	}

	e.printf("// DRUMS\n\n")

	var table [MaxDrumSemitones]drumTableEntry
	var maxSemitone = -1

	for _, drum := range bank.Drums {
		if drum.Placeholder {
			maxSemitone++
			continue
		}

		if drum.SemitoneEnd > maxSemitone {
			maxSemitone = drum.SemitoneEnd
		}

		if drum.SemitoneEnd >= MaxDrumSemitones {
			return internalError("drum %v covers semitone %v", drum.Name, drum.SemitoneEnd)
		}

		var length = drum.Length()

		e.printf("#define %s_ENTRY(tuning) \\\n", drum.Name)
		e.printf("    { \\\n")
		e.printf("        %d, \\\n", drum.Envelope.Release)
		e.printf("        %d, \\\n", drum.Pan)
		e.printf("        false, \\\n")
		e.printf("        { &SF%d_%s_HEADER, (tuning) }, \\\n", e.id(), drum.Sample.Name)
		e.printf("        SF%d_%s, \\\n", e.id(), drum.Envelope.Name)
		e.printf("    }\n")
		e.printf("NO_REORDER DATA Drum %s[%d] = {\n", drum.Name, length)

		for offset := 0; offset < length; offset++ {
			table[drum.SemitoneStart+offset] = drumTableEntry{drum: drum, offset: offset}

			var tuning = Tuning(drum.SampleRate, drum.Note(offset))
			e.printf("    %s_ENTRY(%.22ff),\n", drum.Name, float64(tuning))
		}

		e.printf("};\n\n")

		if err := e.block(drum.Name, 0x10*length); err != nil {
			return err
		}
	}

	var tableLen = maxSemitone + 1
	if tableLen > MaxDrumSemitones {
		return internalError("drum pointer table has %v entries, at most %v fit", tableLen, MaxDrumSemitones)
	}

	e.printf("NO_REORDER DATA Drum* SF%d_DRUMS_PTR_LIST[%d] = {\n", e.id(), tableLen)

	for i, entry := range table[:tableLen] {
		if entry.drum == nil {
			e.printf("    NULL,\n")
			continue
		}

		if i != 0 && entry.offset == 0 {
			e.printf("\n")
		}
		e.printf("    &%s[%d],\n", entry.drum.Name, entry.offset)
	}

	bank.NumDrums = tableLen

	e.printf("};\n")
	if err := e.pad(tableLen * 4); err != nil {
		return err
	}
	e.printf("\n")

	return e.block(fmt.Sprintf("SF%d_DRUMS_PTR_LIST", e.id()), align16(tableLen*4))
}

func (e *emitter) emitEffects() error {
	var bank = e.bank

	if len(bank.Effects) == 0 {
		return nil
	}

	e.printf("// EFFECTS\n\n")
	e.printf("NO_REORDER DATA SoundEffect SF%d_SFX_LIST[] = {\n", e.id())

	for _, effect := range bank.Effects {
		if effect.Sample != nil {
			e.printf("    { { &SF%d_%s_HEADER, %.22ff } },\n", e.id(), effect.Sample.Name, float64(effect.Tuning))
		} else {
			e.printf("    { { NULL, 0.0f } },\n")
		}
	}

	e.printf("};\n\n")

	return e.block(fmt.Sprintf("SF%d_SFX_LIST", e.id()), 8*len(bank.Effects))
}

// emitMatchPadding writes the literal trailing bytes, never past the next 16
// byte boundary, then the zero block up to PadToSize. It returns the bank size
// before the zero block.
func (e *emitter) emitMatchPadding(ctx context.Context) int {
	var bank = e.bank

	if len(bank.MatchPadding) != 0 {
		var amount = align16(e.size) - e.size
		if len(bank.MatchPadding) < amount {
			amount = len(bank.MatchPadding)
		}

		e.printf("// MATCH PADDING\n\n")
		e.printf("NO_REORDER DATA u8 SF%d_MATCH_PADDING[] = {\n", e.id())
		for _, value := range bank.MatchPadding[:amount] {
			e.printf("    0x%02X,\n", value)
		}
		e.printf("};\n\n")

		e.blocks = append(e.blocks, Block{Symbol: fmt.Sprintf("SF%d_MATCH_PADDING", e.id()), Offset: e.size, Size: amount})
		e.size += amount
	}

	var padToSize = int(bank.Info.PadToSize)

	if padToSize != 0 {
		if padToSize <= e.size {
			logger.Wf(ctx, "PadToSize directive ignored, 0x%X is not above the bank size 0x%X", padToSize, e.size)
		} else {
			e.printf("// MATCH SIZE PADDING\n\n")
			e.printf("NO_REORDER DATA u8 SF%d_MATCH_PADDING_TO_SIZE[%d] = { 0 };\n", e.id(), padToSize-e.size)

			e.blocks = append(e.blocks, Block{
				Symbol: fmt.Sprintf("SF%d_MATCH_PADDING_TO_SIZE", e.id()),
				Offset: e.size,
				Size:   padToSize - e.size,
			})
		}
	}

	return e.size
}
