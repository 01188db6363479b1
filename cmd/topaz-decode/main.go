// The topaz-decode command converts a Topaz page.dat or glyphs.dat stream,
// using a dict0000.dat dictionary, to its XML description.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/tpzdecode/topaz/dict"
	"github.com/tpzdecode/topaz/format"
	"github.com/tpzdecode/topaz/page"
)

const usage = `Usage:
    topaz-decode dictionary_path page_path

Options:
   -h, --help        print this usage help message
   -d, --debug       turn on debug output to check for potential errors
       --flat-xml    output the flattened xml page description only

This program converts a page*.dat file or glyphs*.dat file, using the
dict0000.dat file, to its xml description.
`

const (
	exitOK        = 0
	exitUsage     = 2
	exitDecodeErr = 1
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("topaz-decode", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }

	help := fs.BoolP("help", "h", false, "print this usage help message")
	debug := fs.BoolP("debug", "d", false, "turn on debug output")
	flatXML := fs.Bool("flat-xml", false, "output the flattened xml page description only")

	if err := fs.Parse(argv); err != nil {
		fs.Usage()
		return exitUsage
	}

	if *help {
		fs.Usage()
		return exitOK
	}

	args := fs.Args()
	if len(args) != 2 {
		fs.Usage()
		return exitUsage
	}
	dictPath, pagePath := args[0], args[1]

	logger := log.New(stderr)
	if *debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	dictFile, err := os.Open(dictPath)
	if err != nil {
		logger.Error("opening dictionary", "err", err)
		return exitDecodeErr
	}
	defer dictFile.Close()

	d, err := dict.Load(dictFile)
	if err != nil {
		logger.Error("loading dictionary", "err", err)
		return exitDecodeErr
	}

	pageFile, err := os.Open(pagePath)
	if err != nil {
		logger.Error("opening page stream", "err", err)
		return exitDecodeErr
	}
	defer pageFile.Close()

	doc, stats, err := page.Parse(pageFile, d, page.Options{Debug: *debug, Logger: logger})
	if err != nil {
		logger.Error("decoding page stream", "err", err)
		return exitDecodeErr
	}

	if *debug {
		for _, line := range stats.Warnings.Strings() {
			logger.Warn(line)
		}
	}

	var out string
	if *flatXML {
		out, err = format.Flat(doc)
	} else {
		out, err = format.Nested(doc)
	}
	if err != nil {
		logger.Error("formatting decoded page", "err", err)
		return exitDecodeErr
	}

	fmt.Fprint(stdout, out)
	return exitOK
}
