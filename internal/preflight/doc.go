// Package preflight provides readiness checks for the external services
// and filesystem paths that mixport depends on.
//
// The CLI "mixport status" command runs RunAll and renders the results as a
// table. The transfer command runs the directory checks before listing so a
// run never matches hundreds of tracks only to fail writing its report.
package preflight
