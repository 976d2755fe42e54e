//go:build !debug

package world

const strictContracts = false
