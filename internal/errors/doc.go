// Package errors documents the bridge's error classification scheme.
//
// # Overview
//
// Errors are classified into three classes so transport, engine, and RPC
// code can make retry/escalate decisions without string-matching messages:
// Transient (temporary, retryable), Invalid (bad input or config, not
// retryable), and Fatal (unrecoverable, stop processing).
//
// # Error Classification
//
//   - Transient: socket/serial connection loss, read/write timeouts
//   - Invalid: malformed connection URLs, unsupported baud rates, frames
//     that fail CRC or carry an unknown message id
//   - Fatal: termios configuration failures, an engine send with no
//     underlying connection
//
// # Quick Start
//
//	if err := transport.Open(); err != nil {
//	    return errors.WrapTransient(err, "transport.udp", "Open", "bind socket")
//	}
//
//	if errors.IsTransient(err) {
//	    // retry with internal/retry
//	} else if errors.IsFatal(err) {
//	    logger.Error("unrecoverable", "error", err)
//	}
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// Three wrapper functions apply this pattern while setting classification:
//
//	errors.WrapTransient(err, "transport.udp", "Open", "bind socket")
//	errors.WrapInvalid(err, "bridge", "New", "parse connection url")
//	errors.WrapFatal(err, "transport.serial", "Open", "configure termios")
//
// The generic Wrap() applies the same message format without setting a
// classification, for call sites that aren't making a retry decision.
//
// # GRPCCode
//
// internal/rpcservice converts a classified error straight into a grpc
// status code via GRPCCode, so the wire code a client sees always agrees
// with how the service classified the failure: Invalid maps to
// InvalidArgument, Transient to Unavailable, everything else to Internal.
//
// # Integration with errors.As/Is
//
//	var ce *errors.ClassifiedError
//	if errors.As(err, &ce) {
//	    log.Printf("%s.%s: %s", ce.Component, ce.Operation, ce.Class)
//	}
//
//	if errors.Is(err, errors.ErrConnectionTimeout) {
//	    // handle timeout specifically
//	}
//
// Classification survives wrapping: wrapping an already-classified error
// with Wrap (not WrapTransient/WrapInvalid/WrapFatal) preserves its class.
package errors
