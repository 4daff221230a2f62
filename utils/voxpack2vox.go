package utils

// RunVOXPACK2VOX extracts all .vox files from a .voxpack into the given output directory.
// It preserves the original entry names inside the pack.
func RunVOXPACK2VOX(inPackPath, outDir string) error {
	return UnpackToDir(inPackPath, outDir)
}
