// Package logger wraps zap for the lock daemon.
//
// A sugared logger travels in the context (ToContext/FromContext/WithName/
// WithKV); package functions such as InfoKV or WarnKV log through whichever
// logger the context carries and fall back to the global one.
package logger
