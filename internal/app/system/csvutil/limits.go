// internal/app/system/csvutil/limits.go
package csvutil

// Seed file size and row limits.
const (
	MaxFileSize = 5 << 20 // 5 MB
	MaxRows     = 20000
)
