//go:build !windows

package capture

func openPlatform() (GDI, func(), error) {
	return nil, nil, ErrUnsupportedPlatform
}
