package vox

// Options configures Decode.
type Options struct {
	// YUp converts MagicaVoxel's Z-up coordinates to Y-up by swapping the
	// second and third component of every size and voxel position.
	YUp bool
}

// DefaultOptions converts to Y-up.
func DefaultOptions() Options {
	return Options{YUp: true}
}

func (o Options) size(x, y, z int32) (int32, int32, int32) {
	if o.YUp {
		return x, z, y
	}
	return x, y, z
}

func (o Options) voxel(v Voxel) Voxel {
	if o.YUp {
		v.Y, v.Z = v.Z, v.Y
	}
	return v
}
