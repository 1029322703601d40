// Package types defines the Joke and Step record schema, the Store contract,
// filter parameters, configuration, and standard errors for the jokebox
// service.
package types
