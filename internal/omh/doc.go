// Package omh scans OMhelp documentation sources.
//
// OMhelp is the lightweight markup used by the CppAD sources. A command is
// introduced by the marker character '$' and most commands carry an
// argument terminated by "$$":
//
//	$begin optimize$$
//	$section Optimize an ADFun Object Tape$$
//	$mindex sequence operations speed memory$$
//	$head Syntax$$
//	...
//	$end
//
// The package only understands the handful of forms needed to split a
// document into begin/end sections and to find heading and index commands
// inside a section. Everything is expressed as structured Token values with
// byte spans so callers never do offset arithmetic on raw regexp results.
package omh
