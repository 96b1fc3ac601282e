package pipeline

import (
	"testing"

	"infla/internal/generate"
)

func BenchmarkSummarize(b *testing.B) {
	records := generate.Inflation(generate.NewRand(generate.DefaultSeed))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Summarize(records)
	}
}

func BenchmarkCategoryCountryHeat(b *testing.B) {
	records := generate.Inflation(generate.NewRand(generate.DefaultSeed))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = CategoryCountryHeat(records)
	}
}

func BenchmarkCombineEconomic(b *testing.B) {
	indicators := generate.Economic(generate.NewRand(generate.DefaultSeed))
	inflation := generate.Inflation(generate.NewRand(generate.DefaultSeed))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = CombineEconomic(indicators, inflation)
	}
}

func BenchmarkPriceSeries(b *testing.B) {
	records := generate.Prices(generate.NewRand(generate.DefaultSeed))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = PriceSeries(records)
	}
}
