package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	wgsl_pp "github.com/fwessels/wgsl-pp"
)

// defines collects repeated -D flags.
type defines map[string]any

func (d defines) String() string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	return strings.Join(keys, ",")
}

func (d defines) Set(s string) error {
	name, value, err := parseDefine(s)
	if err != nil {
		return err
	}
	d[name] = value
	return nil
}

// parseDefine turns NAME or NAME=VALUE into a binding. A bare NAME is true;
// a VALUE that parses as a number or a bool is bound as one, else as text.
func parseDefine(s string) (string, any, error) {
	name, value, hasValue := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, fmt.Errorf("bad define %q", s)
	}
	if !hasValue {
		return name, true, nil
	}
	if i, err := strconv.ParseInt(value, 0, 64); err == nil {
		return name, i, nil
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return name, f, nil
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return name, b, nil
	}
	return name, value, nil
}

func preprocess(r io.Reader, defs defines) (string, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return wgsl_pp.Expand(string(buf), defs)
}

// preprocessFile reads fname, or stdin for "-", and expands it. The file
// is closed before returning.
func preprocessFile(fname string, defs defines) (string, error) {
	if fname == "-" {
		return preprocess(os.Stdin, defs)
	}
	f, err := os.Open(fname)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return preprocess(f, defs)
}

func printUsage() {
	fmt.Println("Usage: wgsl-pp [-D NAME[=VALUE]]... [-o out.wgsl] [-c] <filename.wgsl|->")
	flag.PrintDefaults()
}

func main() {
	defs := defines{}
	flag.Var(defs, "D", "define placeholder `NAME[=VALUE]` (repeatable)")
	outPtr := flag.String("o", "", "write output to file instead of stdout")
	clipPtr := flag.Bool("c", false, "also copy output to the clipboard")
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() != 1 {
		printUsage()
		os.Exit(1)
	}

	fname := flag.Arg(0)
	processed, err := preprocessFile(fname, defs)
	if err != nil {
		fmt.Printf("%s: %v\n", fname, err)
		os.Exit(1)
	}

	if *outPtr == "" {
		fmt.Print(processed)
	} else if err := os.WriteFile(*outPtr, []byte(processed), 0644); err != nil {
		fmt.Println("Error writing file: ", err)
		os.Exit(1)
	}

	if *clipPtr {
		if err := clipboard.WriteAll(processed); err != nil {
			log.Fatal(err)
		}
	}
}
