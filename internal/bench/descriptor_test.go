package bench_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dynbench/internal/bench"
)

var _ = Describe("Descriptor", func() {
	walker := bench.Box("walker", 4, -1.8, 0.9, bench.Continuous)

	It("reports the first coordinate outside the box", func() {
		Expect(walker.Contains([]float64{0, 0, 0, 0})).To(Equal(-1))
		Expect(walker.Contains([]float64{0, 1, 0, 2})).To(Equal(1))
		Expect(walker.Contains([]float64{-1.8, 0.9, 0, 0})).To(Equal(-1))
	})

	It("computes the centre of the box", func() {
		for _, c := range walker.Center() {
			Expect(c).To(BeNumerically("~", -0.45, 1e-12))
		}
	})

	It("clones bounds deeply", func() {
		c := walker.Clone()
		c.Lower[0] = 100
		Expect(walker.Lower[0]).To(Equal(-1.8))
	})

	It("samples inside the box", func() {
		rows := walker.Sample(rand.New(rand.NewSource(3)), 50)
		Expect(rows).To(HaveLen(50))
		for _, row := range rows {
			Expect(row).To(HaveLen(4))
			Expect(walker.Contains(row)).To(Equal(-1))
		}
	})

	It("samples binary coordinates at the bounds", func() {
		flags := bench.Box("flags", 8, 0, 1, bench.Binary)
		for _, row := range flags.Sample(rand.New(rand.NewSource(5)), 10) {
			for _, v := range row {
				Expect(v).To(Or(Equal(0.0), Equal(1.0)))
			}
		}
	})

	It("round-trips kinds as text", func() {
		var k bench.Kind
		Expect(k.UnmarshalText([]byte("binary"))).To(Succeed())
		Expect(k).To(Equal(bench.Binary))
		b, err := bench.Continuous.MarshalText()
		Expect(err).NotTo(HaveOccurred())
		Expect(string(b)).To(Equal("continuous"))
		Expect(k.UnmarshalText([]byte("ternary"))).NotTo(Succeed())
	})
})
