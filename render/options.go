package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Flags toggle per-node render behavior. Flags combine across the
// node → layer → root chain: a flag set anywhere applies.
type Flags uint32

const (
	// FlagInvisible hides the node.
	FlagInvisible Flags = 1 << iota
	// FlagNoParallax disables parallax even if a factor is inherited.
	FlagNoParallax
	// FlagScaleParallax scales the node around the view center in addition
	// to translating it.
	FlagScaleParallax
)

var flagNames = [...]string{"invisible", "no_parallax", "scale_parallax"}

// ParseFlags resolves flag names such as "invisible" into a mask.
func ParseFlags(names ...string) (Flags, error) {
	var f Flags
next:
	for _, n := range names {
		for i, name := range flagNames {
			if strings.EqualFold(n, name) {
				f |= 1 << i
				continue next
			}
		}
		return 0, fmt.Errorf("unknown render flag %q", n)
	}
	return f, nil
}

// Names returns the names of the known bits set in f.
func (f Flags) Names() []string {
	var out []string
	for i, name := range flagNames {
		if f&(1<<i) != 0 {
			out = append(out, name)
		}
	}
	return out
}

// BlendMode selects a compositing operation. BlendDefault inherits the
// parent's mode and resolves to BlendNormal at the root.
type BlendMode uint8

const (
	BlendDefault  BlendMode = iota
	BlendNormal             // source-over (standard alpha blending)
	BlendAdd                // additive / lighter
	BlendMultiply           // multiply (source * destination; only darkens)
	BlendScreen             // screen (1 - (1-src)*(1-dst); only brightens)
	BlendErase              // destination-out (punch transparent holes)
	BlendMask               // clip destination to source alpha
	BlendBelow              // destination-over (draw behind existing content)
	BlendNone               // opaque copy (skip blending)
)

var blendNames = [...]string{"default", "normal", "add", "multiply", "screen", "erase", "mask", "below", "none"}

func (b BlendMode) String() string {
	if int(b) < len(blendNames) {
		return blendNames[b]
	}
	return "unknown"
}

// ParseBlendMode returns the mode with the given name, or false.
func ParseBlendMode(name string) (BlendMode, bool) {
	for i, n := range blendNames {
		if n == name {
			return BlendMode(i), true
		}
	}
	return BlendDefault, false
}

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendErase:
		return ebiten.BlendDestinationOut
	case BlendMask:
		return ebiten.BlendDestinationIn
	case BlendBelow:
		return ebiten.BlendDestinationOver
	case BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}

// Options is a set of visual overrides. Zero-valued fields are unset and
// inherit from the parent.
type Options struct {
	Flags    Flags
	Parallax float64
	Blend    BlendMode
	Texture  *ebiten.Image
	Shader   *ebiten.Shader
}

// Inherit returns o with every unset field taken from parent. Flags are
// combined.
func (o Options) Inherit(parent Options) Options {
	o.Flags |= parent.Flags
	if o.Parallax == 0 {
		o.Parallax = parent.Parallax
	}
	if o.Blend == BlendDefault {
		o.Blend = parent.Blend
	}
	if o.Texture == nil {
		o.Texture = parent.Texture
	}
	if o.Shader == nil {
		o.Shader = parent.Shader
	}
	return o
}

// IsVisible reports whether FlagInvisible is unset.
func (o Options) IsVisible() bool { return o.Flags&FlagInvisible == 0 }

// ParallaxFactor returns the parallax factor, treating unset as 1.
func (o Options) ParallaxFactor() float64 {
	if o.Parallax == 0 {
		return 1
	}
	return o.Parallax
}

// HasParallax reports whether drawing applies a parallax offset.
func (o Options) HasParallax() bool {
	return o.Flags&FlagNoParallax == 0 && math.Abs(o.ParallaxFactor()-1) > 1e-6
}

// OptionsPatch is a sparse update to an Options value. Nil fields leave the
// target unchanged.
type OptionsPatch struct {
	Flags    *Flags
	Parallax *float64
	Blend    *BlendMode
	Texture  **ebiten.Image
	Shader   **ebiten.Shader
}

// Apply returns o with the non-nil fields of p written over it.
func (p OptionsPatch) Apply(o Options) Options {
	if p.Flags != nil {
		o.Flags = *p.Flags
	}
	if p.Parallax != nil {
		o.Parallax = *p.Parallax
	}
	if p.Blend != nil {
		o.Blend = *p.Blend
	}
	if p.Texture != nil {
		o.Texture = *p.Texture
	}
	if p.Shader != nil {
		o.Shader = *p.Shader
	}
	return o
}
