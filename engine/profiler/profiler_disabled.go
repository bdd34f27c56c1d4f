//go:build !profile

package profiler

// No-op versions when the "profile" build tag is not set.

const Enabled = false

func Init(capacity int) {}

func Start(name string) func() { return func() {} }

func Stats() []Scope { return nil }

func Reset() {}

func WriteSpeedscope(path string) error { return nil }
