package texture

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/shadecore"
)

// Handle identifies a texture inside a Bank. Material parameter blocks
// store handles instead of pointers so they stay plain value records.
type Handle uint32

const InvalidHandle = Handle(math.MaxUint32)

func (h Handle) Valid() bool { return h != InvalidHandle }

// Bank owns the textures referenced during shading. It is append-only;
// handles stay valid for the bank's lifetime. Reads are race-free,
// loading must be done before shading starts.
type Bank struct {
	log      shadecore.Logger
	textures []*Texture
}

func NewBank(log shadecore.Logger) *Bank {
	return &Bank{log: shadecore.OrNop(log)}
}

func (b *Bank) Add(t *Texture) Handle {
	b.textures = append(b.textures, t)
	return Handle(len(b.textures) - 1)
}

// Get returns nil for InvalidHandle or an out-of-range handle.
func (b *Bank) Get(h Handle) *Texture {
	if !h.Valid() || int(h) >= len(b.textures) {
		return nil
	}
	return b.textures[h]
}

func (b *Bank) Len() int { return len(b.textures) }

// LoadFile decodes an image file and registers it with a full mip chain.
func (b *Bank) LoadFile(path string) (Handle, error) {
	t, err := Load(path)
	if err != nil {
		return InvalidHandle, err
	}
	h := b.Add(t)
	b.log.Infof("loaded texture %s (%dx%d, %d mips)", path, t.Width(), t.Height(), t.Levels())
	return h, nil
}

// Sample fetches through the given strategy. Unresolvable handles
// return opaque white and ok=false so callers can substitute their
// constant fallback.
func (b *Bank) Sample(s Sampler, h Handle, uv mgl32.Vec2) (mgl32.Vec4, bool) {
	t := b.Get(h)
	if t == nil {
		return mgl32.Vec4{1, 1, 1, 1}, false
	}
	return s.Sample(t, uv), true
}
