// Package optim explores a benchmark's input box with batched evaluations:
// a line sweep through the box centre and a grid search over a few
// coordinates. Each search sends all of its points to the benchmark as one
// batch.
package optim
