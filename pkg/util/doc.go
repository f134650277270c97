// Package util provides small formatting helpers shared across apputil
// packages.
//
//   - FullName: join the non-empty parts of a person's name
//   - FormatDuration: render a duration as HH:MM:SS
//   - TruncateBody: cap stored values for safe logging
package util
