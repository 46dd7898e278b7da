// Package toolchain locates the local Node.js tools an App Builder project
// depends on and checks their versions against semver constraints.
package toolchain
