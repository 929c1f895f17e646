// Package logging provides a minimal logging facade for the fips203 library.
//
// The Logger interface wraps the context-aware subset of log/slog:
//
//	type Logger interface {
//	    Debug(ctx context.Context, msg string, args ...any)
//	    Info(ctx context.Context, msg string, args ...any)
//	    Warn(ctx context.Context, msg string, args ...any)
//	    Error(ctx context.Context, msg string, args ...any)
//	    With(args ...any) Logger
//	}
//
// # Default Implementation
//
//	// Use slog.Default()
//	logger := logging.New(nil)
//
//	// Use a custom handler
//	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})
//	logger = logging.New(slog.New(handler))
//
//	// Silence the library
//	logger = logging.Discard()
//
// Pass the logger through fips203.Config. The library logs binding
// resolution at debug level, resolution failures at error level, and
// non-zero backend status codes at warn level.
//
// # Redaction
//
// Key material never reaches a log record. Decapsulation keys implement
// slog.LogValuer and emit their bytes as Redacted("bytes"):
//
//	logger.Info(ctx, "key loaded", "dk", dk)
//	// dk.parameter_set=ML-KEM-768 dk.bytes=[redacted]
package logging
