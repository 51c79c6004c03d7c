// Package ports defines the interfaces between the warden core and its
// adapters, plus reusable contract suites that verify implementations.
package ports
