package utils

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	{ // Test PartitionMap
		getHisto := func(K, Np int) (histo map[int]int) {
			pm := NewPartitionMap(Np, K)
			histo = make(map[int]int)
			for np := 0; np < pm.ParallelDegree; np++ {
				maxK := pm.GetBucketDimension(np)
				histo[maxK]++
			}
			return
		}
		getTotal := func(histo map[int]int) (total int) {
			for key, count := range histo {
				total += key * count
			}
			return
		}
		assert.Equal(t, map[int]int{0: 30, 1: 2}, getHisto(2, 32))
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		assert.Equal(t, 287, getTotal(getHisto(287, 32)))
		for n := 64; n < 2000; n++ {
			var (
				keys   [2]float64
				keyNum int
			)
			histo := getHisto(n, 32)
			for key := range histo {
				keys[keyNum] = float64(key)
				keyNum++
			}
			if keyNum == 2 {
				assert.Equal(t, 1., math.Abs(keys[0]-keys[1])) // Maximum imbalance of 1
			}
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // Test ParallelFor visits every index exactly once, skipping empty buckets
		for _, NP := range []int{1, 3, 8} {
			pm := NewPartitionMap(NP, 101)
			visits := make([]int32, 101)
			pm.ParallelFor(func(np, kMin, kMax int) {
				for k := kMin; k < kMax; k++ {
					atomic.AddInt32(&visits[k], 1)
				}
			})
			for k := range visits {
				assert.Equal(t, int32(1), visits[k])
			}
		}
		var calls int32
		NewPartitionMap(8, 3).ParallelFor(func(np, kMin, kMax int) {
			atomic.AddInt32(&calls, 1)
		})
		assert.Equal(t, int32(3), calls)
	}
	{ // Test ParallelForErr reports the lowest failing bucket
		pm := NewPartitionMap(4, 40)
		err := pm.ParallelForErr(func(np, kMin, kMax int) error {
			if np >= 2 {
				return errors.New([]string{"b0", "b1", "b2", "b3"}[np])
			}
			return nil
		})
		assert.EqualError(t, err, "b2")
	}
	{ // Test parallel degree selection
		assert.Equal(t, 4, ParallelDegree(4, 100))
		assert.Equal(t, 1, ParallelDegree(4, 2))
		assert.True(t, ParallelDegree(0, 1000000) >= 1)
	}
}
