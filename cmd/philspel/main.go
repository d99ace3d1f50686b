// Command philspel reads text from stdin and writes it to stdout with
// " [sic]" after every word missing from the dictionary.
//
//	philspel <dictionary> < input > output
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/katalvlaran/numc/spell"
)

// exitFailure is the status for a missing argument or an unreadable dictionary.
const exitFailure = 61

var size = flag.Int("size", spell.DefaultSize, "dictionary hash table buckets")

func main() {
	log.SetFlags(0)
	log.SetPrefix("philspel: ")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-size n] <dictionary>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(flag.Args()); err != nil {
		log.Println(err)
		os.Exit(exitFailure)
	}
}

func run(args []string) error {
	if len(args) != 1 {
		return errors.New("specify a dictionary")
	}
	if *size <= 0 {
		return fmt.Errorf("invalid -size %d", *size)
	}
	d, err := spell.NewDictionary(spell.WithSize(*size))
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := d.Load(f)
	if err != nil {
		return err
	}
	log.Printf("loaded %d words from %s", n, args[0])

	return d.Process(os.Stdin, os.Stdout)
}
