// Package llms provides the provider neutral types used by chat model nodes:
// messages and content parts, call options, responses, and the callback and
// failed attempt hooks a host can plug into a model.
//
// Provider implementations live in subpackages, e.g. `bedrock`.
package llms
