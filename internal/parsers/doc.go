// Package parsers turns raw directives into prompt specifications. Each prompt
// kind owns a small grammar of option keys; unknown keys, missing values and
// values of the wrong literal kind are reported as positioned diagnostics.
package parsers
