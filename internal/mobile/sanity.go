//go:build !sanity

package mobile

const sanityChecks = false
