package storage

// Backend is an optional StorageProvider. The zero value is an
// unconfigured backend; callers check Provider before every use.
type Backend struct {
	provider StorageProvider
}

func NewBackend(provider StorageProvider) Backend {
	return Backend{provider: provider}
}

// Disabled returns a backend that reports no provider.
func Disabled() Backend {
	return Backend{}
}

func (b Backend) Provider() (StorageProvider, bool) {
	return b.provider, b.provider != nil
}
