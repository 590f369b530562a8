package capture

import (
	"github.com/kbinani/screenshot"
	"github.com/pkg/errors"
)

// Displays はアクティブなディスプレイの範囲をインデックス順に返します。
func Displays() []Region {
	n := screenshot.NumActiveDisplays()
	regions := make([]Region, 0, n)
	for i := 0; i < n; i++ {
		regions = append(regions, RegionOf(screenshot.GetDisplayBounds(i)))
	}
	return regions
}

// DisplayBounds は index 番目のディスプレイの範囲を返します。
func DisplayBounds(index int) (Region, error) {
	displays := Displays()
	if index < 0 || index >= len(displays) {
		return Region{}, errors.Wrapf(ErrTargetNotFound, "display %d (active: %d)", index, len(displays))
	}
	return displays[index], nil
}

// VirtualScreen は全ディスプレイを包含する仮想スクリーンの範囲を返します。
func VirtualScreen() (Region, error) {
	return Union(Displays())
}

// Union は regions をすべて包含する最小の範囲を返します。
func Union(regions []Region) (Region, error) {
	if len(regions) == 0 {
		return Region{}, errors.Wrap(ErrTargetNotFound, "no active display")
	}
	u := regions[0].Bounds()
	for _, r := range regions[1:] {
		u = u.Union(r.Bounds())
	}
	return RegionOf(u), nil
}
