// Package procsup provides child process management for language server and
// analysis subprocesses spawned by the refactor engine.
//
// The procsup package implements a supervisor pattern for managing the
// language server processes started by the lsp package, plus any other
// external tool invocations (formatters, linters) the planner shells out to.
// Every Process gets its own wait goroutine from the moment it starts, so
// exited children are reaped immediately and never accumulate as zombies
// even when a caller forgets to read a Process's exit status.
//
// # Features
//
//   - Process lifecycle management (start, stop, kill)
//   - Signal forwarding to child processes
//   - Graceful shutdown with configurable timeout
//   - Resource tracking and cleanup
//   - Exit code and status tracking
//
// # Supervisor
//
// The Supervisor manages multiple child processes:
//
//	supervisor := procsup.NewSupervisor()
//	defer supervisor.Shutdown(5 * time.Second)
//
//	// Start a process
//	cmd := exec.Command("gopls", "serve")
//	proc, err := supervisor.Start("gopls", cmd)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Wait for completion
//	<-proc.Done()
//	fmt.Printf("Exit code: %d\n", proc.ExitCode())
//
// # Process
//
// Each Process wraps an exec.Cmd with additional tracking:
//
//   - Unique ID for identification
//   - Start time tracking
//   - Exit code retrieval
//   - Done channel for completion notification
//   - Standard I/O access
//
// # Graceful Shutdown
//
// The supervisor supports graceful shutdown:
//
//	// Send SIGTERM, wait up to 5 seconds, then SIGKILL
//	supervisor.Shutdown(5 * time.Second)
//
// # Thread Safety
//
// Both Supervisor and Process are safe for concurrent use.
package procsup
