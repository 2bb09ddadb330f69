// Package analysis offers post-hoc diagnostics over simulated trajectories:
// oscillation period estimation, peak envelopes, phase portraits, and a
// largest-Lyapunov-exponent estimate for chaos detection.
package analysis
