// Package workflow defines the contract between the workflow host and the
// nodes it loads: node descriptors and parameter schemas, the SupplyData
// entry point of sub-nodes, the host functions available to them, and the
// error types the host reports to users.
package workflow
