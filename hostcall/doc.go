// Package hostcall provides the standard host syscall catalogue for the
// CVERE machine: console and timing services at the user ring, the world
// scripting layer at the supervisor ring, and the reality operations at the
// kernel ring. Each device is a value with a Bind method installing its
// handlers on a machine.
//
// The catalogue is host policy, not architecture: embedders may bind any
// subset, rebind numbers, or add their own handlers, including handlers
// scripted in Starlark via LoadScript.
package hostcall
