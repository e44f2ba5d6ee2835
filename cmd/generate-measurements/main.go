// Command generate-measurements writes a deterministic measurements file for
// the obrc workload. Values carry one decimal digit, as in the original
// challenge data.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	apperrors "github.com/agbru/chunkbench/internal/errors"
	"github.com/agbru/chunkbench/internal/stations"
)

// stationNames is the pool measurement lines draw from.
var stationNames = []string{
	"Abidjan", "Bergen", "Cairo", "Dakar", "Edmonton", "Fukuoka", "Galway",
	"Hanoi", "Istanbul", "Jakarta", "Kyiv", "Lima", "Montreal", "Nairobi",
	"Oslo", "Perth", "Quito", "Reykjavik", "Santiago", "Tunis", "Ulaanbaatar",
	"Valletta", "Wellington", "Yerevan", "Zagreb",
}

// minTenths and maxTenths bound temperatures, in 0.1 degree steps.
const (
	minTenths stations.Tenths = -999
	maxTenths stations.Tenths = 999
)

func main() {
	lines := flag.Int("n", 1_000_000, "number of measurement lines")
	numStations := flag.Int("stations", len(stationNames), "number of distinct stations (at most 25)")
	seed := flag.Uint64("seed", 1, "random seed")
	output := flag.String("o", stations.DefaultInput, "output file ('-' for stdout)")
	flag.Parse()

	if err := run(*output, *lines, *numStations, *seed); err != nil {
		os.Exit(apperrors.HandleRunError(err, os.Stderr))
	}
}

func run(output string, lines, numStations int, seed uint64) (err error) {
	if output == "-" {
		return generate(os.Stdout, lines, numStations, seed)
	}
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return generate(f, lines, numStations, seed)
}

// generate writes lines "<station>;<value>" records drawn from the first
// numStations station names.
func generate(w io.Writer, lines, numStations int, seed uint64) error {
	if lines < 0 {
		return apperrors.ValidationError{Field: "n", Message: fmt.Sprintf("must be non-negative, got %d", lines)}
	}
	if numStations < 1 || numStations > len(stationNames) {
		return apperrors.ValidationError{Field: "stations", Message: fmt.Sprintf("must be in [1, %d], got %d", len(stationNames), numStations)}
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	bw := bufio.NewWriter(w)
	for range lines {
		name := stationNames[rng.IntN(numStations)]
		value := minTenths + stations.Tenths(rng.IntN(int(maxTenths-minTenths)+1))
		if _, err := fmt.Fprintf(bw, "%s%s%s\n", name, stations.Separator, value); err != nil {
			return err
		}
	}
	return bw.Flush()
}
