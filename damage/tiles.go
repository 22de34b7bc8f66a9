package damage

import (
	"math/bits"
	"sync/atomic"

	"github.com/gogpu/region"
)

// TileMap tracks which fixed-size tiles of a screen are dirty using an
// atomic bitmap, one bit per tile packed into uint64 words.
//
// Marking is lock-free and safe for concurrent use, so several producers
// can report damage while one consumer collects it.
type TileMap struct {
	// words holds the bitmap. Bit index = ty * tilesX + tx.
	words []atomic.Uint64

	tilesX, tilesY int
	tileSize       int32
	screen         region.Box
}

// NewTileMap returns a clean tile map covering a width by height screen
// with square tiles. Edge tiles are clipped to the screen. It returns nil
// if any dimension is not positive.
func NewTileMap(width, height, tileSize int32) *TileMap {
	if width <= 0 || height <= 0 || tileSize <= 0 {
		return nil
	}
	tx := int((width + tileSize - 1) / tileSize)
	ty := int((height + tileSize - 1) / tileSize)
	return &TileMap{
		words:    make([]atomic.Uint64, (tx*ty+63)/64),
		tilesX:   tx,
		tilesY:   ty,
		tileSize: tileSize,
		screen:   region.Rect(0, 0, width, height),
	}
}

// TilesX returns the number of tile columns.
func (m *TileMap) TilesX() int { return m.tilesX }

// TilesY returns the number of tile rows.
func (m *TileMap) TilesY() int { return m.tilesY }

// Mark marks tile (tx, ty) dirty. Out-of-range tiles are ignored.
func (m *TileMap) Mark(tx, ty int) {
	if tx < 0 || tx >= m.tilesX || ty < 0 || ty >= m.tilesY {
		return
	}
	idx := ty*m.tilesX + tx
	m.words[idx/64].Or(1 << (idx & 63))
}

// IsDirty reports whether tile (tx, ty) is dirty.
func (m *TileMap) IsDirty(tx, ty int) bool {
	if tx < 0 || tx >= m.tilesX || ty < 0 || ty >= m.tilesY {
		return false
	}
	idx := ty*m.tilesX + tx
	return m.words[idx/64].Load()&(1<<(idx&63)) != 0
}

// MarkBox marks every tile that b touches.
func (m *TileMap) MarkBox(b region.Box) {
	b = b.Intersect(m.screen)
	if b.Empty() {
		return
	}
	tx1, ty1 := int(b.X1/m.tileSize), int(b.Y1/m.tileSize)
	tx2, ty2 := int((b.X2-1)/m.tileSize), int((b.Y2-1)/m.tileSize)
	for ty := ty1; ty <= ty2; ty++ {
		for tx := tx1; tx <= tx2; tx++ {
			m.Mark(tx, ty)
		}
	}
}

// MarkRegion marks every tile that r touches.
func (m *TileMap) MarkRegion(r *region.Region) {
	for _, b := range r.Rects() {
		m.MarkBox(b)
	}
}

// Count returns the number of dirty tiles.
func (m *TileMap) Count() int {
	n := 0
	for i := range m.words {
		n += bits.OnesCount64(m.words[i].Load())
	}
	return n
}

// IsEmpty reports whether no tile is dirty.
func (m *TileMap) IsEmpty() bool {
	for i := range m.words {
		if m.words[i].Load() != 0 {
			return false
		}
	}
	return true
}

// Clear marks every tile clean.
func (m *TileMap) Clear() {
	for i := range m.words {
		m.words[i].Store(0)
	}
}

// Region returns the screen area covered by dirty tiles, clipped to the
// screen.
func (m *TileMap) Region(opts ...region.Option) (*region.Region, error) {
	return m.collect(false, opts)
}

// TakeRegion is Region followed by Clear, atomically per bitmap word.
func (m *TileMap) TakeRegion(opts ...region.Option) (*region.Region, error) {
	return m.collect(true, opts)
}

func (m *TileMap) collect(clear bool, opts []region.Option) (*region.Region, error) {
	total := m.tilesX * m.tilesY
	var boxes []region.Box
	for wi := range m.words {
		var word uint64
		if clear {
			word = m.words[wi].Swap(0)
		} else {
			word = m.words[wi].Load()
		}
		for word != 0 {
			idx := wi*64 + bits.TrailingZeros64(word)
			word &= word - 1
			if idx >= total {
				break
			}
			boxes = append(boxes, m.tileBox(idx%m.tilesX, idx/m.tilesX))
		}
	}
	// Tiles come out row by row; validation merges them into bands.
	return region.NewRects(boxes, false, opts...)
}

func (m *TileMap) tileBox(tx, ty int) region.Box {
	x, y := int32(tx)*m.tileSize, int32(ty)*m.tileSize
	return region.Rect(x, y, x+m.tileSize, y+m.tileSize).Intersect(m.screen)
}
