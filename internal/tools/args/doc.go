// Package args decodes the loosely typed keyword arguments the model sends
// with a function call. JSON decoding yields map[string]any with float64
// numbers; the helpers here coerce those values into the types the service
// clients expect and produce uniform error messages for missing or malformed
// parameters.
package args
