// Package errx provides structured, code-based errors for the eksprom CLI.
//
// The package implements a code-based error system where each error has:
//   - A stable 5-digit error code (e.g., "63000" for deploy errors)
//   - A category description (e.g., "Deploy error")
//   - A user-facing message
//   - Optional structured context (key-value pairs)
//   - Optional cause and base sentinel errors
//
// Error codes follow a scheme where the first two digits represent the domain:
//   - 60xxx: CLI/argument validation errors
//   - 61xxx: Cluster connection errors
//   - 62xxx: Namespace errors
//   - 63xxx: Deploy errors
//   - 64xxx: Status/inspection errors
//   - 65xxx: Configuration errors
//
// The last three digits are reserved for subcodes (future use).
//
// Example usage:
//
//	err := errx.Deploy("helm upgrade failed").
//		WithContext("namespace", "azni-prom").
//		WithBase(sentinelErr)
//
//	if errors.Is(err, sentinelErr) {
//		// Handle specific error
//	}
//
//	fmt.Println(errx.UserString(err))  // User-friendly message
//	fmt.Println(errx.DebugString(err)) // Full debug details
package errx
