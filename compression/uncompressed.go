package compression

type Uncompressed struct {
}

func (c Uncompressed) CompressBlock(block []byte) ([]byte, error) {
	return block, nil
}

func (c Uncompressed) DecompressBlock(dst, block []byte) (int, error) {
	if len(block) > len(dst) {
		return 0, overflowError(len(dst))
	}

	return copy(dst, block), nil
}
