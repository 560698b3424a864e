//go:build test

package suggest

import (
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

// keystroke sequences of one typing session each
var typingPatterns = [][]string{
	{"a", "ab", "abc", "abcd", "abcde"},
	{"h", "he", "hel", "hell", "hello"},
	{"p", "pr", "pro", "prog", "progr", "progra", "program"},
	{"c", "co", "com", "comp", "compu", "comput", "computer"},
	{"i", "in", "int", "inte", "inter", "intern", "interna", "internat", "internati", "internatio", "internation", "internationa", "international"},
}

func leakEngine() *Engine {
	e := NewEngine(DefaultOptions())
	for _, pattern := range typingPatterns {
		for _, w := range pattern {
			e.AddWord(w)
			for i := 0; i < 20; i++ {
				e.AddWord(fmt.Sprintf("%s%02d", w, i))
			}
		}
	}
	return e
}

type memSample struct {
	alloc      int64
	goroutines int
}

func sample() memSample {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	return memSample{alloc: int64(m.Alloc), goroutines: runtime.NumGoroutine()}
}

func checkGrowth(t *testing.T, baseline memSample, ops int, maxPerOp float64, maxGoroutines int) {
	t.Helper()
	final := sample()
	memDelta := final.alloc - baseline.alloc
	goroutineDelta := final.goroutines - baseline.goroutines
	memPerOp := float64(memDelta) / float64(ops)

	t.Logf("ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d", ops, memDelta, memPerOp, goroutineDelta)

	if memPerOp > maxPerOp {
		t.Errorf("excessive memory retained per operation: %.2f bytes", memPerOp)
	}
	if goroutineDelta > maxGoroutines {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}

func TestMemoryLeakSessions(t *testing.T) {
	for _, iterations := range []int{100, 1000, 5000} {
		t.Run(fmt.Sprintf("iterations_%d", iterations), func(t *testing.T) {
			e := leakEngine()
			baseline := sample()

			ops := 0
			for i := 0; i < iterations; i++ {
				mem := e.NewMemory()
				for _, pattern := range typingPatterns {
					e.UpdateAndResetWord(mem, "")
					for _, prefix := range pattern {
						e.UpdateWord(mem, prefix)
						_ = e.SuggestedWords(mem, 10)
						ops++
					}
				}
			}
			checkGrowth(t, baseline, ops, 100, 2)
		})
	}
}

func TestMemoryLeakConcurrent(t *testing.T) {
	for _, workers := range []int{1, 2, 4, 8} {
		t.Run(fmt.Sprintf("workers_%d", workers), func(t *testing.T) {
			e := leakEngine()
			baseline := sample()

			const iterationsPerWorker = 250
			var wg sync.WaitGroup
			for w := 0; w < workers; w++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					mem := e.NewMemory()
					for i := 0; i < iterationsPerWorker; i++ {
						for _, pattern := range typingPatterns {
							for _, prefix := range pattern {
								e.UpdateWord(mem, prefix)
								_ = e.SuggestedWords(mem, 10)
							}
						}
					}
				}()
			}
			wg.Wait()

			ops := 0
			for _, p := range typingPatterns {
				ops += len(p)
			}
			checkGrowth(t, baseline, ops*workers*iterationsPerWorker, 100, 3)
		})
	}
}
