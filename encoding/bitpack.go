package encoding

type unpack8int32Func func([]byte) [8]int32

type pack8int32Func func([8]int32) []byte

var (
	unpack8Int32FuncByWidth [maxBitWidth + 1]unpack8int32Func
	pack8Int32FuncByWidth   [maxBitWidth + 1]pack8int32Func
)

func init() {
	for bw := 0; bw <= maxBitWidth; bw++ {
		unpack8Int32FuncByWidth[bw] = unpack8Int32(bw)
		pack8Int32FuncByWidth[bw] = pack8Int32(bw)
	}
}

// unpack8Int32 returns a function reading 8 values of bw bits, packed from the
// least significant bit of the first byte.
func unpack8Int32(bw int) unpack8int32Func {
	mask := uint64(1)<<uint(bw) - 1

	return func(data []byte) [8]int32 {
		var (
			out  [8]int32
			acc  uint64
			bits uint
			pos  int
		)

		if bw == 0 {
			return out
		}

		for i := range out {
			for bits < uint(bw) {
				acc |= uint64(data[pos]) << bits
				pos++
				bits += 8
			}

			out[i] = int32(uint32(acc & mask))
			acc >>= uint(bw)
			bits -= uint(bw)
		}

		return out
	}
}

func pack8Int32(bw int) pack8int32Func {
	mask := uint64(1)<<uint(bw) - 1

	return func(in [8]int32) []byte {
		var (
			acc  uint64
			bits uint
		)

		out := make([]byte, 0, bw)

		for _, v := range in {
			acc |= (uint64(uint32(v)) & mask) << bits
			bits += uint(bw)

			for bits >= 8 {
				out = append(out, byte(acc))
				acc >>= 8
				bits -= 8
			}
		}

		return out
	}
}

// unpack8Uint64 reads 8 values of bw bits from data, bw up to 64.
func unpack8Uint64(data []byte, bw int) [8]uint64 {
	var (
		out [8]uint64
		pos int
	)

	for i := range out {
		var v uint64

		for b := 0; b < bw; {
			off := pos % 8

			n := 8 - off
			if n > bw-b {
				n = bw - b
			}

			v |= (uint64(data[pos/8]>>off) & (1<<n - 1)) << b
			b += n
			pos += n
		}

		out[i] = v
	}

	return out
}

// pack8Uint64 writes the bw low bits of 8 values, bw up to 64.
func pack8Uint64(in [8]uint64, bw int) []byte {
	out := make([]byte, bw)
	pos := 0

	for _, v := range in {
		for b := 0; b < bw; {
			off := pos % 8

			n := 8 - off
			if n > bw-b {
				n = bw - b
			}

			out[pos/8] |= byte((v>>b)&(1<<n-1)) << off
			b += n
			pos += n
		}
	}

	return out
}
