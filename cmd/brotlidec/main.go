// Command brotlidec decodes compressed streams from the command line.
//
// Usage:
//
//	brotlidec dec [options] <input>   decode a compressed file (use "-" for stdin, -o - for stdout)
//	brotlidec info <input>            report the advertised decoded size, if any
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v2"
	"golang.org/x/crypto/ssh/terminal"

	brotli "github.com/deepteams/brotlidec"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "dec":
		err = runDec(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "brotlidec: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "brotlidec: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  brotlidec dec [options] <input>   Decode a compressed file
  brotlidec info <input>            Report the advertised decoded size

Use "-" as input to read from stdin, "-o -" to write to stdout.

Run "brotlidec <command> -h" for command-specific options.
`)
}

// openInput returns an io.ReadCloser for the given path. If path is "-",
// stdin is returned (caller should not close it).
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func runDec(args []string) error {
	fs := flag.NewFlagSet("dec", flag.ContinueOnError)
	output := fs.String("o", "", `output path (default: <input> without .br, plus .out; "-" for stdout)`)
	noProgress := fs.Bool("no-progress", false, "never display a progress bar")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("dec: missing input file\nUsage: brotlidec dec [options] <input>")
	}
	inputPath := fs.Arg(0)

	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("dec: reading input: %w", err)
	}

	outputPath := *output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, ".br") + ".out"
	}

	var out io.Writer
	var closeOut func() error
	if outputPath == "-" {
		out = os.Stdout
		closeOut = func() error { return nil }
	} else {
		f, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		out = f
		closeOut = f.Close
	}

	size, hasSize := brotli.DecompressedSize(data)
	showBar := !*noProgress && hasSize && terminal.IsTerminal(int(os.Stderr.Fd()))
	if showBar {
		bar := progressbar.NewOptions64(int64(size),
			progressbar.OptionSetBytes64(int64(size)),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetPredictTime(true))
		bar.RenderBlank()
		out = &progressWriter{w: out, bar: bar}
	}

	if err := brotli.Decompress(brotli.MemInput(data), out); err != nil {
		closeOut()
		if outputPath != "-" {
			os.Remove(outputPath)
		}
		return fmt.Errorf("dec: %w", err)
	}
	if showBar {
		fmt.Fprintln(os.Stderr)
	}
	if err := closeOut(); err != nil {
		return err
	}

	if outputPath != "-" {
		fmt.Fprintf(os.Stderr, "Decoded %s -> %s\n", inputPath, outputPath)
	}
	return nil
}

// progressWriter advances bar by the number of bytes it forwards to w,
// letting the decoder write to it exactly as it would to any Output.
type progressWriter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.bar.Add(n)
	return n, err
}

func runInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("info: missing input file\nUsage: brotlidec info <input>")
	}
	inputPath := args[0]

	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("info: reading input: %w", err)
	}

	name := inputPath
	if inputPath == "-" {
		name = "<stdin>"
	}

	size, ok := brotli.DecompressedSize(data)
	fmt.Printf("File:          %s\n", name)
	fmt.Printf("Input bytes:   %d\n", len(data))
	if ok {
		fmt.Printf("Decoded size:  %d\n", size)
	} else {
		fmt.Printf("Decoded size:  unknown (stream declares no size)\n")
	}
	return nil
}
