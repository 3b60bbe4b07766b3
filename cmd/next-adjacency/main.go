package main

import (
	"flag"
	"fmt"
	"log"

	"mutadjacency/internal/model"
)

func main() {
	var (
		n      = flag.Int("n", 105, "Sequence length (number of positions)")
		k      = flag.Int("k", 11, "Number of existing mutations")
		trials = flag.Int("trials", 100000, "Number of Monte Carlo trials")
		seed   = flag.Int64("seed", 0, "Random seed (0 uses a fixed default)")
	)
	flag.Parse()

	p, err := model.NextAdjacency(model.NewStream(*seed), *n, *k, *trials)
	if err != nil {
		log.Fatalf("next-adjacency failed: %v", err)
	}

	fmt.Printf("%.5g\n", p)
}
