package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Thar0/mm/adpcm"
	"github.com/Thar0/mm/aiff"
	"github.com/Thar0/mm/config"
	"github.com/ossrs/go-oryx-lib/logger"
)

func TestMain(m *testing.M) {
	olw := logger.Switch(io.Discard)
	var code = m.Run()
	logger.Switch(olw)
	os.Exit(code)
}

func TestArgsParse(t *testing.T) {
	t.Parallel()

	var args = newCommandArgs()

	named, positional, errs := args.Parse([]string{"a.xml", "--matching", "a.c", "--env", "x.env", "a.h", "a.name"})
	if len(errs) != 0 {
		t.Fatalf("Parse() errs = %v", errs)
	}
	if named["--matching"] != true {
		t.Errorf("--matching = %v, want true", named["--matching"])
	}
	if named["--env"] != "x.env" {
		t.Errorf("--env = %v, want x.env", named["--env"])
	}
	if strings.Join(positional, " ") != "a.xml a.c a.h a.name" {
		t.Errorf("positional = %v", positional)
	}

	named, _, errs = args.Parse([]string{"a.xml"})
	if len(errs) != 0 || named["--matching"] != false || named["--no-matching"] != false || named["--env"] != "" {
		t.Errorf("Parse() defaults = %v, %v", named, errs)
	}

	if _, _, errs = args.Parse([]string{"--bogus"}); len(errs) != 1 {
		t.Errorf("Parse(--bogus) errs = %v, want one", errs)
	}
	if _, _, errs = args.Parse([]string{"--env"}); len(errs) != 1 {
		t.Errorf("Parse(--env) errs = %v, want one", errs)
	}
}

// clearEnv unsets the variables the compiler reads for the duration of t.
func clearEnv(t *testing.T) {
	for _, key := range []string{config.EnvMatching, config.EnvNoColor, config.EnvSampleBankRoot} {
		t.Setenv(key, "")
	}
}

func TestRunUsage(t *testing.T) {
	clearEnv(t)

	for _, argv := range [][]string{
		nil,
		{"a.xml", "a.c", "a.h"},
		{"a.xml", "a.c", "a.h", "a.name", "extra"},
		{"--unknown", "a.xml", "a.c", "a.h", "a.name"},
		{"--matching", "--no-matching", "a.xml", "a.c", "a.h", "a.name"},
	} {
		var stderr bytes.Buffer

		if code := run(context.Background(), argv, &stderr); code != 1 {
			t.Errorf("run(%v) = %v, want 1", argv, code)
		}
		if !strings.Contains(stderr.String(), "Usage: sfc") {
			t.Errorf("run(%v) stderr = %q, want usage", argv, stderr.String())
		}
	}
}

func writeTestAifc(t *testing.T, path string) {
	t.Helper()

	var book = &adpcm.Book{Order: 2, NPredictors: 1, Data: make([]int16, 16)}
	for i := range book.Data {
		book.Data[i] = int16(i)
	}

	var file = &aiff.Aiff{
		Compressed: true,
		Common: &aiff.CommonChunk{
			NumChannels:     1,
			NumSampleFrames: 64,
			SampleSize:      16,
			SampleRate:      aiff.ExtendedFromF64(16000),
			CompressionType: adpcm.COMPRESSION_ADPCM,
			CompressionName: "Nintendo ADPCM 9-byte frame format",
		},
		Application: []*aiff.ApplicationChunk{
			{Signature: aiff.APPL_SIGNATURE, Data: adpcm.BookApplicationData(book)},
		},
		SoundData:  &aiff.SoundDataChunk{WaveformData: make([]byte, 36)},
		Instrument: &aiff.InstrumentChunk{BaseNote: 60, HighNote: 127, HighVelocity: 127},
	}

	var buffer bytes.Buffer
	if err := file.Serialize(&buffer); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, buffer.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

const testSampleBank = `<SampleBank Name="SampleBank_0">
    <Sample Name="kick" Path="kick.aifc"/>
</SampleBank>
`

const testSoundfont = `<Soundfont Name="Soundfont_Test" Index="3" Medium="Cart" CachePolicy="Temporary" SampleBank="samplebank.xml">
    <Envelopes>
        <Envelope/>
        <Envelope Name="Env0" Release="10">
            <Point Delay="10" Arg="5"/>
        </Envelope>
    </Envelopes>
    <Samples>
        <Sample Name="kick"/>
    </Samples>
    <Instruments>
        <Instrument Name="INST_KICK" Envelope="Env0" Sample="kick"/>
    </Instruments>
</Soundfont>
`

// setupProject lays out a sample bank with one sample and returns the
// description path and the output paths.
func setupProject(t *testing.T, description string) (string, []string) {
	t.Helper()

	var dir = t.TempDir()

	writeTestAifc(t, filepath.Join(dir, "kick.aifc"))

	if err := os.WriteFile(filepath.Join(dir, "samplebank.xml"), []byte(testSampleBank), 0644); err != nil {
		t.Fatal(err)
	}

	var input = filepath.Join(dir, "soundfont.xml")
	if err := os.WriteFile(input, []byte(description), 0644); err != nil {
		t.Fatal(err)
	}

	clearEnv(t)
	t.Setenv(config.EnvSampleBankRoot, dir)
	t.Setenv(config.EnvNoColor, "true")

	return input, []string{
		filepath.Join(dir, "out.c"),
		filepath.Join(dir, "out.h"),
		filepath.Join(dir, "out.name"),
	}
}

func readOutput(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%v) error = %v", path, err)
	}

	return string(data)
}

func TestRunCompiles(t *testing.T) {
	input, outputs := setupProject(t, testSoundfont)

	var stderr bytes.Buffer
	if code := run(context.Background(), append([]string{input}, outputs...), &stderr); code != 0 {
		t.Fatalf("run() = %v, stderr %q", code, stderr.String())
	}

	var definitions = readOutput(t, outputs[0])
	for _, want := range []string{
		"extern u8 SampleBank_0_kick_Off[];",
		"NO_REORDER DATA Sample SF3_kick_HEADER = {",
		"    0x000024,\n",
		"NO_REORDER DATA EnvelopePoint SF3_ENV_EMPTY_0[] = {",
		"{ &SF3_kick_HEADER, 0.5000000000000000000000f },",
	} {
		if !strings.Contains(definitions, want) {
			t.Errorf("definitions do not contain %q:\n%s", want, definitions)
		}
	}

	var declarations = readOutput(t, outputs[1])
	for _, want := range []string{
		"#define Soundfont_Test_ID 3\n",
		"#define SF3_NUM_INSTRUMENTS 1\n",
	} {
		if !strings.Contains(declarations, want) {
			t.Errorf("declarations do not contain %q:\n%s", want, declarations)
		}
	}

	if got := readOutput(t, outputs[2]); got != "Soundfont_Test" {
		t.Errorf("name = %q, want Soundfont_Test", got)
	}

	entries, err := os.ReadDir(filepath.Dir(input))
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") {
			t.Errorf("temporary file %v left behind", entry.Name())
		}
	}
}

func TestRunMatchingSwitch(t *testing.T) {
	input, outputs := setupProject(t, testSoundfont)

	for _, tt := range []struct {
		name      string
		env       string
		flags     []string
		wantEmpty bool
	}{
		{"default", "", nil, true},
		{"flag off", "", []string{"--no-matching"}, false},
		{"env off", "false", nil, false},
		{"flag overrides env", "false", []string{"--matching"}, true},
	} {
		t.Setenv(config.EnvMatching, tt.env)

		var stderr bytes.Buffer
		var argv = append(append(append([]string{}, tt.flags...), input), outputs...)

		if code := run(context.Background(), argv, &stderr); code != 0 {
			t.Fatalf("%v: run() = %v, stderr %q", tt.name, code, stderr.String())
		}

		var hasEmpty = strings.Contains(readOutput(t, outputs[0]), "SF3_ENV_EMPTY_0")
		if hasEmpty != tt.wantEmpty {
			t.Errorf("%v: empty envelope emitted = %v, want %v", tt.name, hasEmpty, tt.wantEmpty)
		}
	}
}

func TestRunFailureWritesNothing(t *testing.T) {
	for _, tt := range []struct {
		name       string
		instrument string
		wantText   string
	}{
		{
			"unknown sample",
			`<Instrument Name="INST_KICK" Envelope="Env0" Sample="snare"/>`,
			"unknown sample snare",
		},
		{
			"range without low sample",
			`<Instrument Name="INST_KICK" Envelope="Env0" RangeLo="30"><Sample Mid="kick"/></Instrument>`,
			"unset-but-used Low sample",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			var broken = strings.Replace(testSoundfont,
				`<Instrument Name="INST_KICK" Envelope="Env0" Sample="kick"/>`, tt.instrument, 1)
			input, outputs := setupProject(t, broken)

			var stderr bytes.Buffer
			if code := run(context.Background(), append([]string{input}, outputs...), &stderr); code != 1 {
				t.Fatalf("run() = %v, want 1", code)
			}

			if !strings.HasPrefix(stderr.String(), "Error: ") || !strings.Contains(stderr.String(), tt.wantText) {
				t.Errorf("stderr = %q, want %q", stderr.String(), tt.wantText)
			}

			for _, path := range outputs {
				if _, err := os.Stat(path); !os.IsNotExist(err) {
					t.Errorf("Stat(%v) error = %v, want not exist", path, err)
				}
			}
		})
	}
}

func TestRunMissingSampleBank(t *testing.T) {
	input, outputs := setupProject(t, testSoundfont)

	if err := os.Remove(filepath.Join(filepath.Dir(input), "samplebank.xml")); err != nil {
		t.Fatal(err)
	}

	var stderr bytes.Buffer
	if code := run(context.Background(), append([]string{input}, outputs...), &stderr); code != 1 {
		t.Fatalf("run() = %v, want 1", code)
	}
	if !strings.Contains(stderr.String(), "sample bank of Soundfont_Test") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestPublishCleansUpOnFailure(t *testing.T) {
	t.Parallel()

	var dir = t.TempDir()
	var good = filepath.Join(dir, "good.c")

	err := publish(context.Background(), []outputFile{
		{good, []byte("data")},
		{filepath.Join(dir, "missing", "bad.h"), []byte("data")},
	})
	if err == nil {
		t.Fatal("publish() error = nil, want error")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		var names []string
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		t.Errorf("directory holds %v, want nothing", names)
	}
}

func TestPublishReplaces(t *testing.T) {
	t.Parallel()

	var path = filepath.Join(t.TempDir(), "out.name")

	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := publish(context.Background(), []outputFile{{path, []byte("new")}}); err != nil {
		t.Fatalf("publish() error = %v", err)
	}

	if got := readOutput(t, path); got != "new" {
		t.Errorf("content = %q, want new", got)
	}
}
