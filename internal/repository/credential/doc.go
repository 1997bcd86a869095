// Package credential persists the lock credential under a namespaced key.
//
// FileRepository keeps a JSON document with one object per namespace,
// SQLiteRepository keeps a row in the kv_store table and MemoryRepository
// keeps nothing across restarts. All of them implement Repository, which the
// credential store depends on.
package credential
