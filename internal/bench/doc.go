// Package bench exposes continuous-control benchmarks behind one evaluation
// contract.
//
// A [Registry] maps benchmark names to factories producing a [Facade]. The
// facade owns one [Simulator], checks the batch shape against the
// benchmark's [Descriptor], downcasts inputs to float32 and negates the
// simulator's cost into a reward:
//
//	reg := bench.Default(bench.Options{}, nil)
//	f, err := reg.Create("swimmer")
//	if err != nil {
//		return err
//	}
//	rewards, err := f.Evaluate([][]float64{make([]float64, 16)})
//
// Simulator diagnostics are muted while the facade constructs or calls the
// simulator.
package bench
