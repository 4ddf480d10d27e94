// Command bvhdemo drives a bvh.Tree under synthetic random load and prints
// a periodic summary. It is a headless console driver; it does not attempt
// any windowed rendering of the tree.
package main

import (
	"flag"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/bit-hack/bvh"
)

var log = logrus.New()

func randAABB(rnd *rand.Rand) bvh.AABB {
	minX := rnd.Float64() * 1024
	minY := rnd.Float64() * 1024
	return bvh.AABB{
		MinX: minX,
		MinY: minY,
		MaxX: minX + rnd.Float64()*256,
		MaxY: minY + rnd.Float64()*256,
	}
}

func jitter(rnd *rand.Rand, box bvh.AABB) bvh.AABB {
	dx := rnd.Float64()*64 - 32
	dy := rnd.Float64()*64 - 32
	return bvh.AABB{
		MinX: box.MinX + dx,
		MinY: box.MinY + dy,
		MaxX: box.MaxX + dx,
		MaxY: box.MaxY + dy,
	}
}

func main() {
	var (
		capacity   = flag.Int("capacity", 1024, "arena capacity")
		iterations = flag.Int("iterations", 1_000_000, "number of simulated ticks")
		seed       = flag.Int64("seed", 1, "random seed")
		reportRate = flag.Int("report-every", 100_000, "ticks between summary logs")
	)
	flag.Parse()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := bvh.NewConfig(*capacity)
	tree, err := bvh.New(cfg)
	if err != nil {
		log.Fatalf("bvhdemo: %v", err)
	}

	rnd := rand.New(rand.NewSource(*seed))
	var live []bvh.Handle

	for i := 0; i < *iterations; i++ {
		switch rnd.Intn(4) {
		case 0:
			if len(live) < *capacity/4 {
				box := randAABB(rnd)
				h, err := tree.Insert(box, nil)
				if err != nil {
					log.WithError(err).Warn("bvhdemo: insert skipped, arena full")
					continue
				}
				live = append(live, h)
			}
		case 1:
			if len(live) > (*capacity)/16 {
				idx := rnd.Intn(len(live))
				if err := tree.Remove(live[idx]); err != nil {
					log.WithError(err).Warn("bvhdemo: remove failed")
				}
				live[idx] = live[len(live)-1]
				live = live[:len(live)-1]
			}
		default:
			if len(live) > 0 {
				idx := rnd.Intn(len(live))
				view, err := tree.Get(live[idx])
				if err != nil {
					continue
				}
				if err := tree.Move(live[idx], jitter(rnd, view.AABB)); err != nil {
					log.WithError(err).Warn("bvhdemo: move failed")
				}
			}
		}

		if i%2048 == 0 {
			tree.Optimize()
		}
		if *reportRate > 0 && i%*reportRate == 0 {
			stats := tree.Stats()
			log.WithFields(logrus.Fields{
				"tick":     i,
				"live":     len(live),
				"nodes":    stats.NodeCount,
				"height":   stats.Height,
				"quality":  tree.Quality(),
				"freeSlot": stats.FreeCount,
			}).Info("bvhdemo: tick summary")
		}
	}

	log.Infof("bvhdemo: finished %d ticks with %d live entities", *iterations, len(live))
}
