// Package provisioning contains the machine-creation orchestrator.
//
// The orchestrator resolves the cluster resource configuration, then runs an
// ordered sequence of provisioning steps (external commands such as the
// lifecycle-script handoff or container-runtime installation), teeing all
// step output into the durable log sink and short-circuiting on the first
// failure. Exit statuses are propagated unchanged so the platform can act on
// the real result of a failed step.
package provisioning
