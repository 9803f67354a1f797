package soundfont

import (
	"reflect"
	"regexp"
	"testing"
)

func structOrderNames(bank *Bank) []string {
	var names []string
	for _, instrument := range bank.StructOrder() {
		names = append(names, instrument.Name)
	}
	return names
}

func TestStructOrderTieBreak(t *testing.T) {
	t.Parallel()

	var bank = newBank(Info{}, testOptions(Quirks{}))

	for _, instrument := range []*Instrument{
		{Name: "FIVE", StructIndex: 5},
		{Name: "TWO_A", StructIndex: 2},
		{Name: "EIGHT", StructIndex: 8},
		{Name: "TWO_B", StructIndex: 2},
	} {
		bank.Instruments = append(bank.Instruments, instrument)
		bank.addStructOrder(len(bank.Instruments) - 1)
	}

	var want = []string{"TWO_A", "TWO_B", "FIVE", "EIGHT"}
	if got := structOrderNames(bank); !reflect.DeepEqual(got, want) {
		t.Errorf("StructOrder() = %v, want %v", got, want)
	}
}

func TestStructOrderHeadTie(t *testing.T) {
	t.Parallel()

	var bank = newBank(Info{}, testOptions(Quirks{}))

	for _, instrument := range []*Instrument{
		{Name: "A", StructIndex: 3},
		{Name: "B", StructIndex: 3},
		{Name: "C", StructIndex: 1},
	} {
		bank.Instruments = append(bank.Instruments, instrument)
		bank.addStructOrder(len(bank.Instruments) - 1)
	}

	// B becomes the head on the tie, so A is emitted before B
	var want = []string{"C", "A", "B"}
	if got := structOrderNames(bank); !reflect.DeepEqual(got, want) {
		t.Errorf("StructOrder() = %v, want %v", got, want)
	}
}

var instrumentStructPattern = regexp.MustCompile(`NO_REORDER DATA Instrument (\w+) = \{`)

func emittedInstruments(output *Output) []string {
	var names []string
	for _, match := range instrumentStructPattern.FindAllSubmatch(output.Definitions, -1) {
		names = append(names, string(match[1]))
	}
	return names
}

func TestInstrumentEmissionOrder(t *testing.T) {
	t.Parallel()

	var output = mustCompile(t, document("", commonLists+`
<Instruments>
    <Instrument Name="FIVE" MatchOrder="5" Envelope="Env0" Sample="kick"/>
    <Instrument Name="TWO_A" MatchOrder="2" Envelope="Env0" Sample="kick"/>
    <Instrument/>
    <Instrument Name="EIGHT" MatchOrder="8" Envelope="Env0" Sample="kick"/>
    <Instrument Name="TWO_B" MatchOrder="2" Envelope="Env0" Sample="kick"/>
    <InstrumentUnused MatchOrder="0" Envelope="Env0" Sample="snare"/>
</Instruments>
`))

	var want = []string{"_INSTR_UNUSED_0", "TWO_A", "TWO_B", "FIVE", "EIGHT"}
	if got := emittedInstruments(output); !reflect.DeepEqual(got, want) {
		t.Errorf("emitted instruments = %v, want %v", got, want)
	}

	assertContains(t, output.Definitions, "NO_REORDER DATA Instrument* SF3_INSTRUMENT_PTR_LIST[] = {\n"+
		"    &FIVE,\n"+
		"    &TWO_A,\n"+
		"    NULL,\n"+
		"    &EIGHT,\n"+
		"    &TWO_B,\n"+
		"};\n"+
		"SF_PAD4();\n")

	assertContains(t, output.Declarations, "#define SF3_NUM_INSTRUMENTS 5\n")
	assertContains(t, output.Declarations, "#define FIVE 0\n#define TWO_A 1\n#define EIGHT 3\n#define TWO_B 4\n\n")
}

func TestDefaultStructIndex(t *testing.T) {
	t.Parallel()

	var output = mustCompile(t, document("", commonLists+`
<Instruments>
    <Instrument Name="FIRST" Envelope="Env0" Sample="kick"/>
    <Instrument Name="SECOND" Envelope="Env0" Sample="kick"/>
    <Instrument Name="EARLY" MatchOrder="0" Envelope="Env0" Sample="kick"/>
    <Instrument Name="AFTER_EARLY" Envelope="Env0" Sample="kick"/>
</Instruments>
`))

	// FIRST=0 SECOND=1 EARLY=0 AFTER_EARLY=1
	var want = []string{"FIRST", "EARLY", "SECOND", "AFTER_EARLY"}
	if got := emittedInstruments(output); !reflect.DeepEqual(got, want) {
		t.Errorf("emitted instruments = %v, want %v", got, want)
	}
}
