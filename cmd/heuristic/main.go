package main

import (
	"flag"
	"fmt"
	"log"

	"mutadjacency/internal/model"
)

func main() {
	var (
		n = flag.Int("n", 105, "Sequence length (number of positions)")
		k = flag.Int("k", 11, "Number of existing mutations")
	)
	flag.Parse()

	bound, err := model.HeuristicBound(*n, *k)
	if err != nil {
		log.Fatalf("heuristic failed: %v", err)
	}

	fmt.Printf("%.5g\n", bound)
}
