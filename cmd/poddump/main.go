package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/FossoresLP/podwire/builder"
	"github.com/FossoresLP/podwire/decoder"
)

func main() {
	var (
		file        = flag.String("file", "", "Path to a POD binary file (default: stdin)")
		hexIn       = flag.Bool("hex", false, "Treat input as hex text instead of raw bytes")
		all         = flag.Bool("all", false, "Decode a sequence of concatenated pods")
		validate    = flag.Bool("validate", false, "Validate structure only, print nothing on success")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *interactive {
		if *file == "" {
			fmt.Fprintln(os.Stderr, "Usage: poddump -file <pods.bin> -i  (interactive mode)")
			os.Exit(1)
		}
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*file); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *file == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "Usage: poddump -file <pods.bin> [-all] [-hex] [-validate]")
		fmt.Fprintln(os.Stderr, "       poddump -file <pods.bin> -i  (interactive mode)")
		fmt.Fprintln(os.Stderr, "       <producer> | poddump [-all] [-hex]")
		os.Exit(1)
	}

	if err := run(*file, *hexIn, *all, *validate, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(file string, hexIn, all, validateOnly, verbose bool) error {
	if verbose {
		zl, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		defer zl.Sync()
		decoder.SetLogger(zl)
		builder.SetLogger(zl)
	}

	data, err := readInput(file)
	if err != nil {
		return err
	}
	if hexIn {
		data, err = decodeHex(data)
		if err != nil {
			return fmt.Errorf("hex input: %w", err)
		}
	}

	if validateOnly {
		consumed := uint32(0)
		for consumed < uint32(len(data)) {
			n, err := decoder.Validate(data[consumed:])
			if err != nil {
				return err
			}
			consumed += n
			if !all {
				break
			}
		}
		fmt.Printf("ok: %d of %d bytes\n", consumed, len(data))
		return nil
	}

	if all {
		vals, err := decoder.DecodeAll(data)
		if err != nil {
			return err
		}
		for i, v := range vals {
			if i > 0 {
				fmt.Println()
			}
			if err := decoder.Print(os.Stdout, v); err != nil {
				return err
			}
		}
		return nil
	}

	v, err := decoder.Decode(data)
	if err != nil {
		return err
	}
	return decoder.Print(os.Stdout, v)
}

func readInput(file string) ([]byte, error) {
	if file == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

// decodeHex accepts hex text with any interleaved whitespace.
func decodeHex(in []byte) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, string(in))
	return hex.DecodeString(cleaned)
}
