// Stress test timing the collision broadphase and the integrator at
// growing object counts, checked against a naive O(n²) pair count.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"skyring/internal/collision"
	"skyring/internal/geom"
	"skyring/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	iters := flag.Int("iterations", physics.DefaultIterations, "solver iterations")
	steps := flag.Int("steps", 10, "steps timed per object count")
	flag.Parse()

	testCounts := []int{100, 500, 1000, 2000, 5000, 10000}
	for _, count := range testCounts {
		run(count, *iters, *steps)
	}
}

type sphere struct {
	pos    rl.Vector3
	radius float32
}

func run(count, iters, steps int) {
	rng := rand.New(rand.NewSource(42))

	// spawn volume grows with count to keep density reasonable
	spawnSize := float32(50.0) + float32(count)/100.0

	world := physics.NewWorld(iters)
	bp := collision.NewBroadphase(collision.DefaultCellSize)
	spheres := make([]sphere, count)
	for i := range spheres {
		s := sphere{
			pos: rl.Vector3{
				X: rng.Float32()*spawnSize - spawnSize/2,
				Y: rng.Float32()*spawnSize - spawnSize/2,
				Z: rng.Float32()*spawnSize - spawnSize/2,
			},
			radius: 0.5 + rng.Float32()*0.5,
		}
		spheres[i] = s

		b := world.CreateBody()
		b.Position = s.pos
		b.SetMass(1, s.radius)
		g := bp.NewSphere(s.radius)
		g.Body = b
		if err := bp.AddDynamic(g); err != nil {
			fmt.Printf("%5d objects: %v\n", count, err)
			return
		}
	}

	naiveStart := time.Now()
	naivePairs := 0
	for i := 0; i < len(spheres); i++ {
		for j := i + 1; j < len(spheres); j++ {
			r := spheres[i].radius + spheres[j].radius
			if geom.DistSq(spheres[i].pos, spheres[j].pos) < r*r {
				naivePairs++
			}
		}
	}
	naiveTime := time.Since(naiveStart)

	cs := physics.NewContactSet()
	var collideTime, integrateTime time.Duration
	var firstPairs int
	for s := 0; s < steps; s++ {
		t0 := time.Now()
		pairs := bp.Collide(cs)
		t1 := time.Now()
		if s == 0 {
			firstPairs = pairs.Count()
		}
		world.Integrate(1.0/60, cs)
		collideTime += t1.Sub(t0)
		integrateTime += time.Since(t1)
	}

	match := "ok"
	if firstPairs != naivePairs {
		match = "MISMATCH"
	}
	fmt.Printf("%5d objects: pairs %5d (naive %5d, %s) | naive %8v | collide %8v | integrate %8v\n",
		count, firstPairs, naivePairs, match, naiveTime,
		collideTime/time.Duration(steps), integrateTime/time.Duration(steps))
}
