package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/codecvt"
)

func main() {
	var (
		fromName    = flag.String("from", "utf-8", "Source encoding")
		toName      = flag.String("to", "utf-8", "Target encoding")
		inFile      = flag.String("in", "", "Input file (default stdin)")
		outFile     = flag.String("out", "", "Output file (default stdout)")
		text        = flag.String("text", "", "Literal UTF-8 input instead of -in (implies -from utf-8)")
		hexDump     = flag.Bool("hex", false, "Write a hex dump instead of raw bytes")
		narrow      = flag.String("narrow", "", "Narrow encoding override (e.g. GB18030, windows-1252)")
		verbose     = flag.Bool("v", false, "Debug logging to stderr")
		showBackend = flag.Bool("backend", false, "Print the conversion backend and narrow encoding, then exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: codecvt [-from enc] [-to enc] [-in file] [-out file] [-hex]")
		fmt.Fprintln(os.Stderr, "       codecvt -text string -to enc  (text is UTF-8)")
		fmt.Fprintln(os.Stderr, "       codecvt -i  (interactive mode)")
		fmt.Fprintf(os.Stderr, "\nEncodings: %s\n\n", encodingNames())
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger = l
	}
	defer logger.Sync()

	if err := codecvt.Configure(&codecvt.Config{Logger: logger, NarrowEncoding: *narrow}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *showBackend {
		fmt.Printf("backend: %s\n", codecvt.Backend())
		fmt.Printf("narrow:  %s\n", codecvt.NarrowEncoding())
		fmt.Printf("host:    %s endian\n", hostOrder())
		return
	}

	if *interactive {
		if err := runInteractive(*text); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*fromName, *toName, *inFile, *outFile, *text, *hexDump); err != nil {
		logger.Debug("conversion failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(fromName, toName, inFile, outFile, text string, hexDump bool) error {
	from, err := lookupEncoding(fromName)
	if err != nil {
		return err
	}
	to, err := lookupEncoding(toName)
	if err != nil {
		return err
	}

	if text != "" {
		if from.kind != kindUTF8 {
			return fmt.Errorf("-text input is UTF-8, cannot combine with -from %s", from.name)
		}
		if inFile != "" {
			return fmt.Errorf("-text and -in are mutually exclusive")
		}
	}

	var raw []byte
	switch {
	case text != "":
		raw = []byte(text)
	case inFile != "":
		raw, err = os.ReadFile(inFile)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	default:
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	out, err := transcode(from, to, raw)
	if err != nil {
		return err
	}

	if outFile != "" {
		if hexDump {
			out = []byte(hex.Dump(out))
		}
		if err := os.WriteFile(outFile, out, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	// UTF-16/32 and wide output reaches a terminal as a hex dump
	if hexDump || (!to.textual() && stdoutTerminal()) {
		_, err = io.WriteString(os.Stdout, hex.Dump(out))
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

func hostOrder() string {
	if codecvt.IsBigEndian() {
		return "big"
	}
	return "little"
}
