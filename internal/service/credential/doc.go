// Package credential implements the credential store of the lock.
//
// Store keeps the active credential in memory for the poll loop, loads it
// from a repository at startup with factory-default fallback, and persists
// updates through a bounded queue drained by a writer goroutine so storage
// latency never reaches the loop. Reloads detected off-loop are handed over
// through a one-slot mailbox that the loop drains in Refresh.
package credential
