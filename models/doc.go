// Package models holds the hand-derived equations of motion for the two
// supported mechanical configurations: a simple pendulum with movable pivot
// and viscous damping, and an undamped double pendulum sharing the same
// movable pivot. Both are stateless dynamo.System implementations; all the
// numerical work happens in the solver.
package models
