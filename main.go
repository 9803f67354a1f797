package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Thar0/mm/config"
	"github.com/Thar0/mm/samplebank"
	"github.com/Thar0/mm/soundfont"
	"github.com/Thar0/mm/waveform"
	"github.com/Thar0/mm/xmltree"
	"github.com/ossrs/go-oryx-lib/errors"
	"github.com/ossrs/go-oryx-lib/logger"
)

const usageExample = "Usage: sfc [--matching | --no-matching] [--env file] <description.xml> <out.c> <out.h> <out.name>"

type compileRequest struct {
	Input        string
	Definitions  string
	Declarations string
	Name         string
	Matching     bool
}

func newCommandArgs() Args {
	var args = NewArgs(usageExample)
	args.AddFlagArg([]string{"--matching"}, "reproduce the historical layout exactly, including its known quirks (default)")
	args.AddFlagArg([]string{"--no-matching"}, "disable the historical layout quirks")
	args.AddStringArg([]string{"--env"}, "file of environment variables to load, .env when present otherwise", "")
	return args
}

func main() {
	ctx := logger.WithContext(context.Background())
	os.Exit(run(ctx, os.Args[1:], os.Stderr))
}

// run executes the command line and returns the process exit status.
func run(ctx context.Context, argv []string, stderr io.Writer) int {
	var args = newCommandArgs()

	named, positional, errs := args.Parse(argv)

	if named["--matching"].(bool) && named["--no-matching"].(bool) {
		errs = append(errs, errors.New("--matching and --no-matching are exclusive"))
	}

	if len(errs) != 0 || len(positional) != 4 {
		for _, err := range errs {
			fmt.Fprintln(stderr, err.Error())
		}
		fmt.Fprintln(stderr, args.CreateHelpMessage())
		return 1
	}

	conf, err := config.Load(named["--env"].(string))
	if err != nil {
		reportError(stderr, err, false)
		return 1
	}

	var request = compileRequest{
		Input:        positional[0],
		Definitions:  positional[1],
		Declarations: positional[2],
		Name:         positional[3],
		Matching:     conf.Matching,
	}

	if named["--matching"].(bool) {
		request.Matching = true
	} else if named["--no-matching"].(bool) {
		request.Matching = false
	}

	if err := doMain(ctx, conf, request); err != nil {
		reportError(stderr, err, conf.NoColor)
		return 1
	}

	return 0
}

func reportError(stderr io.Writer, err error, noColor bool) {
	if noColor {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	} else {
		fmt.Fprintf(stderr, "\x1b[91mError: \x1b[97m%v\x1b[0m\n", err)
	}
}

func loadLibrary(conf *config.Config, info soundfont.Info) (*waveform.Library, *samplebank.Bank, error) {
	bank, err := samplebank.Load(conf.SampleBankRoot, info.SampleBank)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "sample bank of %v", info.Name)
	}

	var dd *samplebank.Bank

	if info.SampleBankDD != "" {
		if dd, err = samplebank.Load(conf.SampleBankRoot, info.SampleBankDD); err != nil {
			return nil, nil, errors.Wrapf(err, "disk drive sample bank of %v", info.Name)
		}
	}

	return waveform.NewLibrary(bank, dd), bank, nil
}

func doMain(ctx context.Context, conf *config.Config, request compileRequest) error {
	root, err := xmltree.ParseFile(request.Input)
	if err != nil {
		return err
	}

	info, err := soundfont.ReadInfo(root)
	if err != nil {
		return err
	}

	library, bank, err := loadLibrary(conf, info)
	if err != nil {
		return err
	}

	var options = soundfont.Options{SampleBankName: bank.Name, Quirks: soundfont.MatchingQuirks()}
	if !request.Matching {
		options.Quirks = soundfont.NonMatchingQuirks()
	}

	output, err := soundfont.Compile(ctx, root, library, options)
	if err != nil {
		return err
	}

	err = publish(ctx, []outputFile{
		{request.Definitions, output.Definitions},
		{request.Declarations, output.Declarations},
		{request.Name, output.Name},
	})
	if err != nil {
		return err
	}

	logger.Tf(ctx, "compiled %v to %v, %v and %v, 0x%X bytes",
		request.Input, request.Definitions, request.Declarations, request.Name, output.Size)

	return nil
}
