// Package cmd provides command implementations for the rxmvvm CLI.
package cmd

// Exit codes.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitPreconditionError indicates the request was rejected before any
	// file was touched (bad name, missing directory, invalid config).
	ExitPreconditionError = 2

	// ExitCollision indicates output names already exist.
	ExitCollision = 3

	// ExitPermissionDenied indicates a file or directory could not be written.
	ExitPermissionDenied = 4

	// ExitNotFound indicates a template, snapshot or file was not found.
	ExitNotFound = 5
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitPreconditionError:
		return "Precondition Failed"
	case ExitCollision:
		return "Name Collision"
	case ExitPermissionDenied:
		return "Permission Denied"
	case ExitNotFound:
		return "Not Found"
	default:
		return "Unknown"
	}
}
