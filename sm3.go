package sm

// SM3 implements the SM3 cryptographic hash (GB/T 32905-2016), a
// Merkle-Damgard construction over a 256-bit state. The zero value has no
// IV loaded; obtain a context from NewSM3 (or call Reset) before use.
type SM3 struct {
	v            [8]uint32
	buf          [64]byte
	bufLen       int
	dataBitsLen  uint64
	hashBytes    [32]byte
	hashHexUpper string
}

var sm3IV = [8]uint32{
	0x7380166F, 0x4914B2B9, 0x172442D7, 0xDA8A0600,
	0xA96F30BC, 0x163138AA, 0xE38DEE4D, 0xB0FB0E4E,
}

func rotl32(x uint32, n uint) uint32 {
	return (x << n) | (x >> (32 - n))
}

func sm3FF1(x, y, z uint32) uint32 { return (x & y) | (x & z) | (y & z) }
func sm3GG1(x, y, z uint32) uint32 { return (x & y) | (^x & z) }
func sm3P0(x uint32) uint32        { return x ^ rotl32(x, 9) ^ rotl32(x, 17) }
func sm3P1(x uint32) uint32        { return x ^ rotl32(x, 15) ^ rotl32(x, 23) }

// NewSM3 returns an SM3 context initialized to the standard IV.
func NewSM3() *SM3 {
	ctx := &SM3{}
	ctx.Reset()
	return ctx
}

// Reset reinitializes the context to the initial state, discarding any
// buffered input.
func (ctx *SM3) Reset() {
	ctx.v = sm3IV
	ctx.bufLen = 0
	ctx.dataBitsLen = 0
	ctx.hashBytes = [32]byte{}
	ctx.hashHexUpper = ""
}

func (ctx *SM3) processBlock(block []byte) {
	var w [68]uint32
	var w2 [64]uint32

	for j := 0; j < 16; j++ {
		off := j * 4
		w[j] = uint32(block[off])<<24 | uint32(block[off+1])<<16 |
			uint32(block[off+2])<<8 | uint32(block[off+3])
	}
	for j := 16; j < 68; j++ {
		r15 := rotl32(w[j-3], 15)
		r7 := rotl32(w[j-13], 7)
		w[j] = sm3P1(w[j-16]^w[j-9]^r15) ^ r7 ^ w[j-6]
	}
	for j := 0; j < 64; j++ {
		w2[j] = w[j] ^ w[j+4]
	}

	a, b, c, d := ctx.v[0], ctx.v[1], ctx.v[2], ctx.v[3]
	e, f, g, h := ctx.v[4], ctx.v[5], ctx.v[6], ctx.v[7]

	for j := 0; j < 64; j++ {
		a12 := rotl32(a, 12)
		var tj uint32
		if j < 16 {
			tj = rotl32(0x79CC4519, uint(j))
		} else {
			tj = rotl32(0x7A879D8A, uint(j%32))
		}
		ss := a12 + e + tj
		ss1 := rotl32(ss, 7)
		ss2 := ss1 ^ a12

		var tt1, tt2 uint32
		if j < 16 {
			tt1 = (a ^ b ^ c) + d + ss2 + w2[j]
			tt2 = (e ^ f ^ g) + h + ss1 + w[j]
		} else {
			tt1 = sm3FF1(a, b, c) + d + ss2 + w2[j]
			tt2 = sm3GG1(e, f, g) + h + ss1 + w[j]
		}
		d = c
		c = rotl32(b, 9)
		b = a
		a = tt1
		h = g
		g = rotl32(f, 19)
		f = e
		e = sm3P0(tt2)
	}

	ctx.v[0] ^= a
	ctx.v[1] ^= b
	ctx.v[2] ^= c
	ctx.v[3] ^= d
	ctx.v[4] ^= e
	ctx.v[5] ^= f
	ctx.v[6] ^= g
	ctx.v[7] ^= h
}

// Update feeds data into the hash, one byte at a time, matching the
// reference buffering discipline (a block is processed the instant the
// 64-byte buffer fills).
func (ctx *SM3) Update(data []byte) {
	for _, b := range data {
		ctx.buf[ctx.bufLen] = b
		ctx.bufLen++
		ctx.dataBitsLen += 8
		if ctx.bufLen == 64 {
			ctx.processBlock(ctx.buf[:])
			ctx.bufLen = 0
		}
	}
}

func (ctx *SM3) generateHash() {
	var out [32]byte
	off := 0
	for i := 0; i < 8; i++ {
		v := ctx.v[i]
		out[off] = byte(v >> 24)
		out[off+1] = byte(v >> 16)
		out[off+2] = byte(v >> 8)
		out[off+3] = byte(v)
		off += 4
	}
	ctx.hashBytes = out
	hexBuf := make([]byte, 64)
	for i, b := range out {
		hexBuf[i*2] = hexUpper[b>>4]
		hexBuf[i*2+1] = hexUpper[b&0x0F]
	}
	ctx.hashHexUpper = string(hexBuf)
}

// Finish pads and processes the remaining buffered input, returning the
// 32-byte digest. The context is reset to its initial state afterwards so it
// can be reused for a new message.
func (ctx *SM3) Finish() [32]byte {
	totalBits := ctx.dataBitsLen
	pos := ctx.bufLen

	ctx.buf[pos] = 0x80
	pos++

	if pos > 56 {
		for pos < 64 {
			ctx.buf[pos] = 0
			pos++
		}
		ctx.processBlock(ctx.buf[:])
		pos = 0
	}

	for pos < 56 {
		ctx.buf[pos] = 0
		pos++
	}

	for i := 0; i < 8; i++ {
		ctx.buf[56+i] = byte(totalBits >> uint(56-i*8))
	}

	ctx.processBlock(ctx.buf[:])
	ctx.generateHash()
	digest := ctx.hashBytes

	ctx.v = sm3IV
	ctx.bufLen = 0
	ctx.dataBitsLen = 0
	return digest
}

// HexDigest returns the uppercase hex digest computed by the most recent
// Finish call.
func (ctx *SM3) HexDigest() string {
	return ctx.hashHexUpper
}

// Sum3 is a convenience one-shot SM3 digest of data.
func Sum3(data []byte) [32]byte {
	ctx := NewSM3()
	ctx.Update(data)
	return ctx.Finish()
}
