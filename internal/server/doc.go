// Package server exposes the benchmark registry over HTTP (gin) and gRPC.
//
// Both transports offer the same two calls: ping, answered with "PONG", and
// eval, which runs a batch against a named benchmark and returns one reward
// per row. Errors keep their kind (see bench.KindOf) across the wire so a
// client can match them with errors.Is against the bench sentinels.
package server
