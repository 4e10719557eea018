package bench_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dynbench/internal/bench"
)

var _ = Describe("Parsing", func() {
	DescribeTable("ParseMatrix accepts",
		func(literal string, want [][]float64) {
			m, err := bench.ParseMatrix(literal)
			Expect(err).NotTo(HaveOccurred())
			Expect(m).To(Equal(want))
		},
		Entry("a batch", "[[0.1, 0.2], [0.3, 0.4]]", [][]float64{{0.1, 0.2}, {0.3, 0.4}}),
		Entry("integers", "[[1, -2, 3]]", [][]float64{{1, -2, 3}}),
		Entry("a flat list as one row", "[0.5, -0.5]", [][]float64{{0.5, -0.5}}),
		Entry("exponents and bare decimals", "[[1e-3, .5, -2.]]", [][]float64{{0.001, 0.5, -2}}),
		Entry("ragged rows", "[[1], [1, 2]]", [][]float64{{1}, {1, 2}}),
	)

	DescribeTable("ParseMatrix rejects",
		func(literal string) {
			_, err := bench.ParseMatrix(literal)
			Expect(errors.Is(err, bench.ErrInvalidInput)).To(BeTrue())
		},
		Entry("a scalar", "3.0"),
		Entry("an empty list", "[]"),
		Entry("strings", `[["a", 1]]`),
		Entry("mixed nesting", "[[1, 2], 3]"),
		Entry("unbalanced brackets", "[[1, 2]"),
		Entry("infinity", "[[.inf, 0]]"),
	)

	It("parses one float per argument", func() {
		x, err := bench.ParseVector([]string{"0.5", " -1 ", "2e1"})
		Expect(err).NotTo(HaveOccurred())
		Expect(x).To(Equal([]float64{0.5, -1, 20}))
	})

	It("reports bad arguments as invalid input", func() {
		_, err := bench.ParseVector([]string{"0.5", "abc"})
		Expect(bench.KindOf(err)).To(Equal(bench.KindInvalidInput))
		_, err = bench.ParseVector(nil)
		Expect(bench.KindOf(err)).To(Equal(bench.KindInvalidInput))
	})
})

var _ = Describe("Error kinds", func() {
	DescribeTable("round trip through ErrorFromKind",
		func(err error, sentinel error) {
			kind := bench.KindOf(err)
			rebuilt := bench.ErrorFromKind(kind, err.Error())
			Expect(errors.Is(rebuilt, sentinel)).To(BeTrue())
			Expect(bench.KindOf(rebuilt)).To(Equal(kind))
			Expect(rebuilt.Error()).To(Equal(err.Error()))
		},
		Entry("unknown benchmark", &bench.UnknownBenchmarkError{Name: "x"}, bench.ErrUnknownBenchmark),
		Entry("invalid input", &bench.InvalidInputFormatError{Reason: "bad"}, bench.ErrInvalidInput),
		Entry("dimension mismatch", &bench.DimensionMismatchError{Benchmark: "s", Want: 16, Got: 3}, bench.ErrDimensionMismatch),
		Entry("out of bounds", &bench.OutOfBoundsError{Benchmark: "s", Value: 2, Lower: -1, Upper: 1}, bench.ErrOutOfBounds),
	)

	It("treats foreign errors as internal", func() {
		Expect(bench.KindOf(errors.New("boom"))).To(Equal(bench.KindInternal))
		Expect(bench.ErrorFromKind(bench.KindInternal, "boom")).To(MatchError("boom"))
	})
})
