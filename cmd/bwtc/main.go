// Command bwtc compresses and decompresses text files using the bwtc codec:
// an online suffix tree BWT, canonical Huffman coding, and Elias omega
// integers, packed into a single self-describing stream.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"rsc.io/getopt"

	"golang.org/x/term"

	"github.com/gopherbwt/bwtc/bwtc"
)

var (
	decompress = flag.Bool("decompress", false, "specify to decompress")
	keep       = flag.Bool("keep", false, "keep (don't delete) input file")
	toStdout   = flag.Bool("stdout", false, "write to stdout; implies -k")
	force      = flag.Bool("force", false, "overwrite output")

	inPath  string
	inFile  *os.File
	outPath string
	outFile *os.File
)

const extension = ".bwtc"

// ensureSentinel appends the codec's sentinel character if the input text
// does not already end with one, so that files which merely lack a trailing
// "$" are still usable with this tool instead of rejected outright.
func ensureSentinel(text string) string {
	if strings.HasSuffix(text, string(bwtc.Sentinel)) {
		return text
	}
	return text + string(bwtc.Sentinel)
}

func doCompress() int {
	raw, err := io.ReadAll(bufio.NewReader(inFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: read: %v\n", inPath, err)
		return 5
	}

	out, err := bwtc.Encode(ensureSentinel(string(raw)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", inPath, err)
		return 6
	}

	w := bufio.NewWriter(outFile)
	if _, err := w.Write(out); err != nil {
		fmt.Fprintf(os.Stderr, "%s: write: %v\n", outPath, err)
		return 7
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: write: %v\n", outPath, err)
		return 7
	}
	return 0
}

func doDecompress() int {
	raw, err := io.ReadAll(bufio.NewReader(inFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: read: %v\n", inPath, err)
		return 8
	}

	text, err := bwtc.Decode(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", inPath, err)
		return 9
	}

	w := bufio.NewWriter(outFile)
	if _, err := io.WriteString(w, text); err != nil {
		fmt.Fprintf(os.Stderr, "%s: write: %v\n", outPath, err)
		return 10
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: write: %v\n", outPath, err)
		return 10
	}
	return 0
}

func do() int {
	var (
		err  error
		code int
	)

	if len(flag.Args()) > 1 {
		fmt.Fprintf(os.Stderr, "too many arguments\n")
		return 2
	}
	if len(flag.Args()) == 0 {
		inPath = "-"
	} else {
		inPath = flag.Args()[0]
	}

	closeInput := false
	closeOutput := false

	defer func() {
		if closeInput {
			inFile.Close()
		}
		if closeOutput {
			outFile.Close()
			if code != 0 {
				os.Remove(outPath)
			}
		}
	}()

	if inPath == "-" {
		inFile = os.Stdin
	} else {
		if _, err := os.Stat(inPath); errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "%s: %v\n", inPath, err)
			return 1
		}
		inFile, err = os.Open(inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", inPath, err)
			return 3
		}
		closeInput = true
	}

	if inPath == "-" {
		outPath = "-"
	} else if *toStdout {
		outPath = "-"
	} else if *decompress {
		if strings.HasSuffix(inPath, extension) {
			outPath = inPath[:len(inPath)-len(extension)]
		} else {
			outPath = inPath + ".out"
			fmt.Fprintf(os.Stderr, "%s: unknown extension, writing to %s\n", inPath, outPath)
		}
	} else {
		outPath = inPath + extension
	}

	if outPath == "-" {
		outFile = os.Stdout
		if term.IsTerminal(int(os.Stdout.Fd())) && !*decompress {
			fmt.Fprintf(os.Stderr, "bwtc: I'm not writing compressed data to stdout\n")
			return 13
		}
	} else {
		if _, err := os.Stat(outPath); !*force && err == nil {
			fmt.Fprintf(os.Stderr, "%s: already exists\n", outPath)
			return 11
		}
		outFile, err = os.Create(outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: create: %v\n", outPath, err)
			return 4
		}
		closeOutput = true
	}

	if *decompress {
		code = doDecompress()
	} else {
		code = doCompress()
	}

	if closeInput {
		closeInput = false
		inFile.Close()
		if !*keep && !*toStdout && code == 0 {
			if err := os.Remove(inPath); err != nil {
				fmt.Fprintf(os.Stderr, "%s: unlink: %v\n", inPath, err)
				return 2
			}
		}
	}

	return code
}

func main() {
	getopt.Alias("d", "decompress")
	getopt.Alias("k", "keep")
	getopt.Alias("c", "stdout")
	getopt.Alias("f", "force")

	if err := getopt.CommandLine.Parse(os.Args[1:]); err != nil {
		os.Exit(12)
	}

	os.Exit(do())
}
