// Package check runs availability checks for vanity identifiers.
// It filters the candidate list, fans checks out over a bounded number of
// workers, retries throttled and failed lookups with exponential backoff,
// and persists the results once every check has finished.
package check
