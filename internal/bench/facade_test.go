package bench_test

import (
	"bytes"
	"errors"
	"log/slog"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dynbench/internal/bench"
	"github.com/san-kum/dynbench/internal/diag"
)

var _ = Describe("Facade", func() {
	var (
		desc   bench.Descriptor
		sim    *sumSim
		buf    *bytes.Buffer
		h      *diag.Handler
		facade *bench.Facade
	)

	BeforeEach(func() {
		desc = bench.Box("toy", 3, -1, 1, bench.Continuous)
		sim = &sumSim{}
		buf = &bytes.Buffer{}
		h = diag.NewHandler(slog.NewTextHandler(buf, nil))

		var err error
		facade, err = bench.NewFacade(desc, sumFactory(sim), bench.Options{Diagnostics: h})
		Expect(err).NotTo(HaveOccurred())
	})

	It("negates the simulator cost", func() {
		y, err := facade.Evaluate([][]float64{{0.25, 0.5, 0.125}})
		Expect(err).NotTo(HaveOccurred())
		Expect(y).To(Equal([]float64{-0.875}))
	})

	It("preserves row order", func() {
		x := [][]float64{{1, 0, 0}, {0, 0, 0}, {-1, -1, 0}, {0.5, 0.5, 0.5}}
		y, err := facade.Evaluate(x)
		Expect(err).NotTo(HaveOccurred())
		Expect(y).To(Equal([]float64{-1, 0, 2, -1.5}))
	})

	It("calls the simulator once per batch", func() {
		_, err := facade.Evaluate(zeros(5, 3))
		Expect(err).NotTo(HaveOccurred())
		Expect(sim.calls).To(Equal(1))
		Expect(sim.seen).To(HaveLen(5))
	})

	It("downcasts inputs to float32", func() {
		_, err := facade.Evaluate([][]float64{{0.1, 1.0 / 3.0, 0}})
		Expect(err).NotTo(HaveOccurred())
		Expect(sim.seen[0][0]).To(Equal(float32(0.1)))
		Expect(sim.seen[0][1]).To(Equal(float32(1.0 / 3.0)))
	})

	It("gives the same value for a point and its one-row batch", func() {
		x := []float64{0.3, -0.2, 0.9}
		one, err := facade.EvaluateOne(x)
		Expect(err).NotTo(HaveOccurred())
		batch, err := facade.Evaluate([][]float64{x})
		Expect(err).NotTo(HaveOccurred())
		Expect(one).To(Equal(batch[0]))
	})

	It("is repeatable for a deterministic simulator", func() {
		x := [][]float64{{0.3, -0.2, 0.9}}
		a, _ := facade.Evaluate(x)
		b, _ := facade.Evaluate(x)
		Expect(a).To(Equal(b))
	})

	Describe("input validation", func() {
		It("rejects a row of the wrong width", func() {
			_, err := facade.Evaluate([][]float64{{0, 0, 0}, {0, 0}})
			var dm *bench.DimensionMismatchError
			Expect(errors.As(err, &dm)).To(BeTrue())
			Expect(dm.Row).To(Equal(1))
			Expect(dm.Want).To(Equal(3))
			Expect(dm.Got).To(Equal(2))
			Expect(errors.Is(err, bench.ErrDimensionMismatch)).To(BeTrue())
			Expect(sim.calls).To(BeZero())
		})

		It("rejects an empty batch", func() {
			_, err := facade.Evaluate(nil)
			Expect(errors.Is(err, bench.ErrInvalidInput)).To(BeTrue())
		})

		It("rejects non-finite values", func() {
			_, err := facade.Evaluate([][]float64{{0, math.NaN(), 0}})
			Expect(errors.Is(err, bench.ErrInvalidInput)).To(BeTrue())
			_, err = facade.Evaluate([][]float64{{math.Inf(-1), 0, 0}})
			Expect(errors.Is(err, bench.ErrInvalidInput)).To(BeTrue())
		})

		It("rejects values that overflow float32", func() {
			for _, v := range []float64{1e39, -1e39} {
				_, err := facade.Evaluate([][]float64{{0, v, 0}})
				var bad *bench.InvalidInputFormatError
				Expect(errors.As(err, &bad)).To(BeTrue())
				Expect(bad.Reason).To(ContainSubstring("overflows float32"))
			}
			Expect(sim.calls).To(BeZero())
		})

		It("accepts the largest float32", func() {
			_, err := facade.Evaluate([][]float64{{math.MaxFloat32, 0, 0}})
			Expect(err).NotTo(HaveOccurred())
		})

		It("passes out-of-bounds values through by default", func() {
			y, err := facade.Evaluate([][]float64{{5, 0, 0}})
			Expect(err).NotTo(HaveOccurred())
			Expect(y).To(Equal([]float64{-5}))
		})

		It("rejects out-of-bounds values with StrictBounds", func() {
			strict, err := bench.NewFacade(desc, sumFactory(&sumSim{}), bench.Options{StrictBounds: true})
			Expect(err).NotTo(HaveOccurred())

			_, err = strict.Evaluate([][]float64{{0, 0, 0}, {0, 1.5, 0}})
			var oob *bench.OutOfBoundsError
			Expect(errors.As(err, &oob)).To(BeTrue())
			Expect(oob.Row).To(Equal(1))
			Expect(oob.Col).To(Equal(1))
			Expect(bench.KindOf(err)).To(Equal(bench.KindOutOfBounds))
		})
	})

	It("fails when the simulator drops rows", func() {
		sim.short = true
		_, err := facade.Evaluate(zeros(2, 3))
		Expect(err).To(HaveOccurred())
		Expect(bench.KindOf(err)).To(Equal(bench.KindInternal))
	})

	Describe("diagnostics", func() {
		It("mutes the simulator during construction and evaluation", func() {
			_, err := facade.Evaluate(zeros(1, 3))
			Expect(err).NotTo(HaveOccurred())
			Expect(buf.String()).To(BeEmpty())
		})

		It("restores diagnostics afterwards", func() {
			_, _ = facade.Evaluate(zeros(1, 3))
			Expect(h.Muted()).To(BeFalse())
			slog.New(h).Warn("after")
			Expect(buf.String()).To(ContainSubstring("after"))
		})

		It("restores diagnostics after a panic", func() {
			sim.panic = true
			Expect(func() { _, _ = facade.Evaluate(zeros(1, 3)) }).To(Panic())
			Expect(h.Muted()).To(BeFalse())
		})

		It("restores diagnostics after a failed construction", func() {
			failing := func(*slog.Logger) (bench.Simulator, error) {
				return nil, errors.New("model file missing")
			}
			_, err := bench.NewFacade(desc, failing, bench.Options{Diagnostics: h})
			Expect(err).To(MatchError(ContainSubstring("model file missing")))
			Expect(h.Muted()).To(BeFalse())
		})
	})

	It("hands out copies of the descriptor", func() {
		d := facade.Descriptor()
		d.Lower[0] = 99
		Expect(facade.Descriptor().Lower[0]).To(Equal(-1.0))
	})

	It("rejects an invalid descriptor", func() {
		bad := bench.Box("bad", 2, 1, -1, bench.Continuous)
		_, err := bench.NewFacade(bad, sumFactory(&sumSim{}), bench.Options{})
		Expect(err).To(HaveOccurred())
	})
})
