// Package testutil provides test helpers shared across packages:
//   - temporary workspaces with input files (fixtures.go)
//   - schema, defaults and validator construction (validator.go)
package testutil
