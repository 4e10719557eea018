package bench_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dynbench/internal/bench"
)

var _ = Describe("Registry", func() {
	Describe("Register", func() {
		var reg *bench.Registry
		toy := bench.Box("toy", 2, -1, 1, bench.Continuous)
		factory := func() (*bench.Facade, error) {
			return bench.NewFacade(toy, sumFactory(&sumSim{}), bench.Options{})
		}

		BeforeEach(func() {
			reg = bench.NewRegistry()
		})

		It("creates a new facade per call", func() {
			Expect(reg.Register(toy, factory)).To(Succeed())
			a, err := reg.Create("toy")
			Expect(err).NotTo(HaveOccurred())
			b, err := reg.Create("toy")
			Expect(err).NotTo(HaveOccurred())
			Expect(a).NotTo(BeIdenticalTo(b))
		})

		It("rejects duplicates", func() {
			Expect(reg.Register(toy, factory)).To(Succeed())
			Expect(reg.Register(toy, factory)).NotTo(Succeed())
		})

		It("rejects a nil factory", func() {
			Expect(reg.Register(toy, nil)).NotTo(Succeed())
		})

		It("describes without building", func() {
			built := 0
			Expect(reg.Register(toy, func() (*bench.Facade, error) {
				built++
				return factory()
			})).To(Succeed())
			d, err := reg.Descriptor("toy")
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Dim).To(Equal(2))
			Expect(built).To(BeZero())
		})
	})

	Describe("Default", func() {
		reg := bench.Default(bench.Options{}, nil)

		expected := map[string]struct {
			dim          int
			lower, upper float64
		}{
			"swimmer":  {16, -1, 1},
			"ant":      {888, -1, 1},
			"hopper":   {33, -1.4, 1.4},
			"walker":   {102, -1.8, 0.9},
			"cheetah":  {102, -1, 1},
			"humanoid": {6392, -1, 1},
		}

		It("holds exactly the catalog", func() {
			Expect(reg.Names()).To(Equal([]string{"ant", "cheetah", "hopper", "humanoid", "swimmer", "walker"}))
		})

		for name, want := range expected {
			name, want := name, want
			It("builds "+name+" with its fixed metadata", func() {
				f, err := reg.Create(name)
				Expect(err).NotTo(HaveOccurred())
				d := f.Descriptor()
				Expect(d.Dim).To(Equal(want.dim))
				Expect(d.Lower).To(HaveLen(d.Dim))
				Expect(d.Upper).To(HaveLen(d.Dim))
				Expect(d.Kind).To(Equal(bench.Continuous))
				for i := range d.Lower {
					Expect(d.Lower[i]).To(Equal(want.lower))
					Expect(d.Upper[i]).To(Equal(want.upper))
					Expect(d.Lower[i]).To(BeNumerically("<=", d.Upper[i]))
				}
			})
		}

		It("fails on an unknown name", func() {
			_, err := reg.Create("not_a_real_benchmark")
			var ub *bench.UnknownBenchmarkError
			Expect(errors.As(err, &ub)).To(BeTrue())
			Expect(ub.Name).To(Equal("not_a_real_benchmark"))
			Expect(errors.Is(err, bench.ErrUnknownBenchmark)).To(BeTrue())
		})

		It("evaluates zeros on swimmer", func() {
			f, err := reg.Create("swimmer")
			Expect(err).NotTo(HaveOccurred())
			y, err := f.Evaluate(zeros(1, 16))
			Expect(err).NotTo(HaveOccurred())
			Expect(y).To(HaveLen(1))
		})

		It("rewards a standing hopper for staying alive", func() {
			f, _ := reg.Create("hopper")
			y, err := f.EvaluateOne(make([]float64, 33))
			Expect(err).NotTo(HaveOccurred())
			Expect(y).To(BeNumerically("~", 1000, 5))
		})

		It("rejects a swimmer batch of the wrong width", func() {
			f, _ := reg.Create("swimmer")
			_, err := f.Evaluate(zeros(2, 15))
			Expect(errors.Is(err, bench.ErrDimensionMismatch)).To(BeTrue())
		})
	})

	Describe("CatalogEntry", func() {
		It("finds built-in benchmarks without a registry", func() {
			d, err := bench.CatalogEntry("ant")
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Dim).To(Equal(888))
		})

		It("reports unknown names", func() {
			_, err := bench.CatalogEntry("pendulum")
			Expect(errors.Is(err, bench.ErrUnknownBenchmark)).To(BeTrue())
		})
	})
})
