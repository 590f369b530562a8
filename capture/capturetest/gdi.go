// Package capturetest はメモリ上で動く capture.GDI の偽実装を提供します。
package capturetest

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"RegionCapture/capture"
)

// GDI は払い出したハンドルを追跡する capture.GDI の偽実装です。
// FailOn にメソッド名を入れるとそのメソッドが失敗します。FailNth が正なら
// その回目の呼び出しだけが失敗します。
// 実際の GDI と同じく、DC に選択中のビットマップは DeleteObject しても解放されません。
type GDI struct {
	FailOn  string
	FailNth int
	// Fill は (x, y) の画素の BGRA を返します。nil なら座標から決まる模様を使います。
	Fill func(x, y int) [4]byte

	Calls    []string
	live     map[capture.Handle]string
	sizes    map[capture.Handle][2]int
	selected map[capture.Handle]capture.Handle
	counts   map[string]int
	next     capture.Handle
}

// stockBitmap は新しい DC に最初から選択されているビットマップです。
const stockBitmap capture.Handle = 1

func New() *GDI {
	return &GDI{
		live:     map[capture.Handle]string{},
		sizes:    map[capture.Handle][2]int{},
		selected: map[capture.Handle]capture.Handle{},
		counts:   map[string]int{},
		next:     0x100,
	}
}

func (g *GDI) call(name string) error {
	g.Calls = append(g.Calls, name)
	g.counts[name]++
	if g.FailOn == name && (g.FailNth <= 0 || g.counts[name] == g.FailNth) {
		return errors.Errorf("%s failed", name)
	}
	return nil
}

func (g *GDI) acquire(kind string) capture.Handle {
	g.next++
	g.live[g.next] = kind
	return g.next
}

func (g *GDI) free(h capture.Handle, kind string) {
	if g.live[h] != kind {
		panic(fmt.Sprintf("capturetest: release of %s handle %#x which is %q", kind, h, g.live[h]))
	}
	delete(g.live, h)
}

// Live は解放されていないハンドルの種類を返します。
func (g *GDI) Live() []string {
	var kinds []string
	for _, k := range g.live {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

func (g *GDI) GetScreenDC() (capture.Handle, error) {
	if err := g.call("GetScreenDC"); err != nil {
		return 0, err
	}
	return g.acquire("screen"), nil
}

func (g *GDI) ReleaseScreenDC(dc capture.Handle) {
	g.Calls = append(g.Calls, "ReleaseScreenDC")
	g.free(dc, "screen")
}

func (g *GDI) CreateCompatibleDC(dc capture.Handle) (capture.Handle, error) {
	if err := g.call("CreateCompatibleDC"); err != nil {
		return 0, err
	}
	return g.acquire("memdc"), nil
}

func (g *GDI) DeleteDC(dc capture.Handle) {
	g.Calls = append(g.Calls, "DeleteDC")
	g.free(dc, "memdc")
	delete(g.selected, dc)
}

func (g *GDI) CreateCompatibleBitmap(dc capture.Handle, width, height int) (capture.Handle, error) {
	if err := g.call("CreateCompatibleBitmap"); err != nil {
		return 0, err
	}
	h := g.acquire("bitmap")
	g.sizes[h] = [2]int{width, height}
	return h, nil
}

func (g *GDI) SelectObject(dc, obj capture.Handle) (capture.Handle, error) {
	if err := g.call("SelectObject"); err != nil {
		return 0, err
	}
	old, ok := g.selected[dc]
	if !ok {
		old = stockBitmap
	}
	g.selected[dc] = obj
	return old, nil
}

func (g *GDI) DeleteObject(obj capture.Handle) {
	g.Calls = append(g.Calls, "DeleteObject")
	for _, sel := range g.selected {
		if sel == obj {
			return
		}
	}
	g.free(obj, "bitmap")
	delete(g.sizes, obj)
}

func (g *GDI) BitBlt(dst capture.Handle, width, height int, src capture.Handle, x, y int) error {
	return g.call("BitBlt")
}

func (g *GDI) ReadBitmap(bmp capture.Handle, width, height int) ([]byte, error) {
	if err := g.call("ReadBitmap"); err != nil {
		return nil, err
	}
	if size, ok := g.sizes[bmp]; !ok || size != [2]int{width, height} {
		return nil, errors.Errorf("bitmap %#x is not %dx%d", bmp, width, height)
	}
	fill := g.Fill
	if fill == nil {
		fill = Pattern
	}
	buf := make([]byte, 0, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := fill(x, y)
			buf = append(buf, px[:]...)
		}
	}
	return buf, nil
}

// Pattern は座標から決まる BGRA 値を返します。
func Pattern(x, y int) [4]byte {
	return [4]byte{byte(x), byte(y), byte(x + y), 0}
}
