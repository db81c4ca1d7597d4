// Command dbg is a scratch debugging tool: it triangulates a heightmap with
// the bounds given on the command line, runs the full invariant check and
// prints refinement statistics.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/natanalt/hmm/heightmap"
	"github.com/natanalt/hmm/triangulator"
)

func check(err error) {
	if err != nil {
		log.Fatalln(err)
	}
}

func main() {
	maxError := flag.Float64("e", 0.001, "maximum vertical error")
	maxTriangles := flag.Int("t", 0, "maximum triangle count (0 = unbounded)")
	maxPoints := flag.Int("p", 0, "maximum vertex count (0 = unbounded)")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalln("usage: dbg [-e error] [-t triangles] [-p points] HEIGHTMAP")
	}

	hm, err := heightmap.Load(flag.Arg(0))
	check(err)
	fmt.Printf("heightmap %v: %d x %d samples\n", flag.Arg(0), hm.Width(), hm.Height())

	tri, err := triangulator.New(hm)
	check(err)
	tri.Run(*maxError, *maxTriangles, *maxPoints)

	fmt.Printf("points:    %d\n", tri.NumPoints())
	fmt.Printf("triangles: %d\n", tri.NumTriangles())
	fmt.Printf("error:     %g\n", tri.Error())

	check(tri.Validate())
	fmt.Println("triangulation invariants hold")
}
