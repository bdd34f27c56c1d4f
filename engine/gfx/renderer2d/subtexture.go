package renderer2d

// SubTexture describes a UV sub-rect of a full texture.
type SubTexture struct {
	Texture TextureID
	U0, V0  float32 // top-left
	U1, V1  float32 // bottom-right
}

// Full covers the whole of tex.
func Full(tex TextureID) SubTexture {
	return SubTexture{Texture: tex, U0: 0, V0: 0, U1: 1, V1: 1}
}

// FromPixels builds a subtexture from pixel coordinates within an atlas.
func FromPixels(tex TextureID, x, y, w, h, atlasW, atlasH int) SubTexture {
	if atlasW <= 0 || atlasH <= 0 {
		return SubTexture{Texture: tex}
	}
	u0 := float32(x) / float32(atlasW)
	v0 := float32(y) / float32(atlasH)
	u1 := float32(x+w) / float32(atlasW)
	v1 := float32(y+h) / float32(atlasH)
	return SubTexture{Texture: tex, U0: u0, V0: v0, U1: u1, V1: v1}
}

// FromGrid builds a subtexture from tile grid coordinates (cx,cy) of cell size (cw,ch).
func FromGrid(tex TextureID, cx, cy, cw, ch, atlasW, atlasH int) SubTexture {
	return FromPixels(tex, cx*cw, cy*ch, cw, ch, atlasW, atlasH)
}
