// Command numcbench times the matrix operations on random square matrices.
//
//	numcbench -sizes 64,256,512 -workers 4 -pow 8
//
// One line is printed per operation and size. With -gonum the product is
// also timed with gonum and the two results are compared.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/numc/matrix"
)

type Config struct {
	Sizes    []int
	Workers  int
	Seed     uint64
	Pow      int
	Gonum    bool
	Validate bool
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := run(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	var (
		config Config
		sizes  string
	)
	flag.StringVar(&sizes, "sizes", "64,128,256", "comma separated matrix sizes")
	flag.IntVar(&config.Workers, "workers", 0, "goroutines for Mul/Pow (0 = GOMAXPROCS)")
	flag.Uint64Var(&config.Seed, "seed", 1, "random seed")
	flag.IntVar(&config.Pow, "pow", 4, "exponent for Pow")
	flag.BoolVar(&config.Gonum, "gonum", false, "also time gonum Mul and compare")
	flag.BoolVar(&config.Validate, "validate", false, "reject NaN/Inf in results")
	flag.Parse()

	var err error
	if config.Sizes, err = parseSizes(sizes); err != nil {
		return err
	}
	if config.Workers < 0 || config.Pow < 0 {
		return fmt.Errorf("workers and pow must be >= 0")
	}
	log.Printf("%+v", config)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "op\tsize\telapsed")
	for _, n := range config.Sizes {
		if err = bench(w, n, config); err != nil {
			return err
		}
	}

	return w.Flush()
}

func parseSizes(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid size %q", f)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no sizes given")
	}

	return out, nil
}

func bench(w *tabwriter.Writer, n int, config Config) error {
	var alloc []matrix.Option
	if config.Validate {
		alloc = append(alloc, matrix.WithValidateNaNInf())
	}
	kernel := []matrix.Option{matrix.WithWorkers(config.Workers)}

	a, err := matrix.NewRandom(n, n, config.Seed, -1, 1, alloc...)
	if err != nil {
		return err
	}
	defer a.Release()
	b, err := matrix.NewRandom(n, n, config.Seed+1, -1, 1, alloc...)
	if err != nil {
		return err
	}
	defer b.Release()
	out, err := matrix.Allocate(n, n, alloc...)
	if err != nil {
		return err
	}
	defer out.Release()

	ops := []struct {
		name string
		run  func() error
	}{
		{"add", func() error { return matrix.Add(out, a, b) }},
		{"sub", func() error { return matrix.Sub(out, a, b) }},
		{"neg", func() error { return matrix.Neg(out, a) }},
		{"abs", func() error { return matrix.Abs(out, a) }},
		{"mul", func() error { return matrix.Mul(out, a, b, kernel...) }},
		{fmt.Sprintf("pow^%d", config.Pow), func() error { return matrix.Pow(out, a, config.Pow, kernel...) }},
	}
	for _, op := range ops {
		start := time.Now()
		if err = op.run(); err != nil {
			return fmt.Errorf("%s %d: %w", op.name, n, err)
		}
		fmt.Fprintf(w, "%s\t%d\t%v\n", op.name, n, time.Since(start))
	}

	if config.Gonum {
		return benchGonum(w, n, a, b, out, kernel)
	}

	return nil
}

// benchGonum times gonum's product of the same operands and checks it
// against ours.
func benchGonum(w *tabwriter.Writer, n int, a, b, out *matrix.Dense, kernel []matrix.Option) error {
	ga, err := matrix.ToGonum(a)
	if err != nil {
		return err
	}
	gb, err := matrix.ToGonum(b)
	if err != nil {
		return err
	}
	var ref mat.Dense
	start := time.Now()
	ref.Mul(ga, gb)
	fmt.Fprintf(w, "gonum-mul\t%d\t%v\n", n, time.Since(start))

	if err = matrix.Mul(out, a, b, kernel...); err != nil {
		return err
	}
	if !mat.EqualApprox(out.Gonum(), &ref, 1e-9) {
		return fmt.Errorf("mul %d: result differs from gonum", n)
	}

	return nil
}
