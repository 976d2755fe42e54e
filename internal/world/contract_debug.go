//go:build debug

package world

const strictContracts = true
