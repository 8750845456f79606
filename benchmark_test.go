package regena

import "testing"

// Benchmarks across the four engine tiers on the same pattern, the way
// the corpus benchmarks one workload across its several backends
// rather than against an external baseline (this engine's algebra —
// &, ! — has no stdlib equivalent to compare against).

var benchPattern = `(ab|ba){2,6}&!.*aa.*`

func benchLevel(b *testing.B, level Level, input string) {
	cfg := DefaultConfig()
	cfg.MaxOptimise = level
	re, err := CompileWithConfig(benchPattern, cfg)
	if err != nil {
		b.Fatalf("CompileWithConfig: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.Match(input)
	}
}

func BenchmarkMatch_Onone(b *testing.B) { benchLevel(b, LevelOnone, "abbaab") }
func BenchmarkMatch_O0(b *testing.B)    { benchLevel(b, LevelO0, "abbaab") }
func BenchmarkMatch_O1(b *testing.B)    { benchLevel(b, LevelO1, "abbaab") }
func BenchmarkMatch_O2(b *testing.B)    { benchLevel(b, LevelO2, "abbaab") }
func BenchmarkMatch_O3(b *testing.B)    { benchLevel(b, LevelO3, "abbaab") }

func BenchmarkCompile_O3(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Compile(benchPattern); err != nil {
			b.Fatalf("Compile: %v", err)
		}
	}
}
