package bench_test

import (
	"errors"
	"log/slog"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dynbench/internal/bench"
)

var _ = Describe("Pool", func() {
	var (
		reg   *bench.Registry
		sim   *slowSim
		built int
	)

	BeforeEach(func() {
		reg = bench.NewRegistry()
		sim = &slowSim{}
		built = 0
		desc := bench.Box("slow", 2, -1, 1, bench.Continuous)
		Expect(reg.Register(desc, func() (*bench.Facade, error) {
			built++
			return bench.NewFacade(desc, func(*slog.Logger) (bench.Simulator, error) {
				return sim, nil
			}, bench.Options{})
		})).To(Succeed())
	})

	It("reuses one facade per name", func() {
		pool := bench.NewPool(reg)
		for i := 0; i < 3; i++ {
			_, err := pool.Evaluate("slow", zeros(1, 2))
			Expect(err).NotTo(HaveOccurred())
		}
		Expect(built).To(Equal(1))
		Expect(pool.Len()).To(Equal(1))
	})

	It("serializes concurrent evaluation", func() {
		pool := bench.NewPool(reg)
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				_, err := pool.Evaluate("slow", zeros(2, 2))
				Expect(err).NotTo(HaveOccurred())
			}()
		}
		wg.Wait()
		Expect(sim.Peak()).To(Equal(int32(1)))
	})

	It("surfaces unknown names without caching them", func() {
		pool := bench.NewPool(reg)
		_, err := pool.Evaluate("missing", zeros(1, 2))
		Expect(errors.Is(err, bench.ErrUnknownBenchmark)).To(BeTrue())
		Expect(pool.Len()).To(BeZero())
	})

	It("builds a new facade per call when fresh", func() {
		fresh := bench.Fresh{Registry: reg}
		for i := 0; i < 3; i++ {
			_, err := fresh.Evaluate("slow", zeros(1, 2))
			Expect(err).NotTo(HaveOccurred())
		}
		Expect(built).To(Equal(3))
	})
})
