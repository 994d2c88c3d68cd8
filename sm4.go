package sm

import "errors"

var sm4SBox = [256]byte{
	0xd6, 0x90, 0xe9, 0xfe, 0xcc, 0xe1, 0x3d, 0xb7, 0x16, 0xb6, 0x14, 0xc2, 0x28, 0xfb, 0x2c, 0x05,
	0x2b, 0x67, 0x9a, 0x76, 0x2a, 0xbe, 0x04, 0xc3, 0xaa, 0x44, 0x13, 0x26, 0x49, 0x86, 0x06, 0x99,
	0x9c, 0x42, 0x50, 0xf4, 0x91, 0xef, 0x98, 0x7a, 0x33, 0x54, 0x0b, 0x43, 0xed, 0xcf, 0xac, 0x62,
	0xe4, 0xb3, 0x1c, 0xa9, 0xc9, 0x08, 0xe8, 0x95, 0x80, 0xdf, 0x94, 0xfa, 0x75, 0x8f, 0x3f, 0xa6,
	0x47, 0x07, 0xa7, 0xfc, 0xf3, 0x73, 0x17, 0xba, 0x83, 0x59, 0x3c, 0x19, 0xe6, 0x85, 0x4f, 0xa8,
	0x68, 0x6b, 0x81, 0xb2, 0x71, 0x64, 0xda, 0x8b, 0xf8, 0xeb, 0x0f, 0x4b, 0x70, 0x56, 0x9d, 0x35,
	0x1e, 0x24, 0x0e, 0x5e, 0x63, 0x58, 0xd1, 0xa2, 0x25, 0x22, 0x7c, 0x3b, 0x01, 0x21, 0x78, 0x87,
	0xd4, 0x00, 0x46, 0x57, 0x9f, 0xd3, 0x27, 0x52, 0x4c, 0x36, 0x02, 0xe7, 0xa0, 0xc4, 0xc8, 0x9e,
	0xea, 0xbf, 0x8a, 0xd2, 0x40, 0xc7, 0x38, 0xb5, 0xa3, 0xf7, 0xf2, 0xce, 0xf9, 0x61, 0x15, 0xa1,
	0xe0, 0xae, 0x5d, 0xa4, 0x9b, 0x34, 0x1a, 0x55, 0xad, 0x93, 0x32, 0x30, 0xf5, 0x8c, 0xb1, 0xe3,
	0x1d, 0xf6, 0xe2, 0x2e, 0x82, 0x66, 0xca, 0x60, 0xc0, 0x29, 0x23, 0xab, 0x0d, 0x53, 0x4e, 0x6f,
	0xd5, 0xdb, 0x37, 0x45, 0xde, 0xfd, 0x8e, 0x2f, 0x03, 0xff, 0x6a, 0x72, 0x6d, 0x6c, 0x5b, 0x51,
	0x8d, 0x1b, 0xaf, 0x92, 0xbb, 0xdd, 0xbc, 0x7f, 0x11, 0xd9, 0x5c, 0x41, 0x1f, 0x10, 0x5a, 0xd8,
	0x0a, 0xc1, 0x31, 0x88, 0xa5, 0xcd, 0x7b, 0xbd, 0x2d, 0x74, 0xd0, 0x12, 0xb8, 0xe5, 0xb4, 0xb0,
	0x89, 0x69, 0x97, 0x4a, 0x0c, 0x96, 0x77, 0x7e, 0x65, 0xb9, 0xf1, 0x09, 0xc5, 0x6e, 0xc6, 0x84,
	0x18, 0xf0, 0x7d, 0xec, 0x3a, 0xdc, 0x4d, 0x20, 0x79, 0xee, 0x5f, 0x3e, 0xd7, 0xcb, 0x39, 0x48,
}

var sm4FK = [4]uint32{0xa3b1bac6, 0x56aa3350, 0x677d9197, 0xb27022dc}

var sm4CK = [32]uint32{
	0x00070e15, 0x1c232a31, 0x383f464d, 0x545b6269,
	0x70777e85, 0x8c939aa1, 0xa8afb6bd, 0xc4cbd2d9,
	0xe0e7eef5, 0xfc030a11, 0x181f262d, 0x343b4249,
	0x50575e65, 0x6c737a81, 0x888f969d, 0xa4abb2b9,
	0xc0c7ced5, 0xdce3eaf1, 0xf8ff060d, 0x141b2229,
	0x30373e45, 0x4c535a61, 0x686f767d, 0x848b9299,
	0xa0a7aeb5, 0xbcc3cad1, 0xd8dfe6ed, 0xf4fb0209,
	0x10171e25, 0x2c333a41, 0x484f565d, 0x646b7279,
}

func sm4Tau(a uint32) uint32 {
	return uint32(sm4SBox[byte(a>>24)])<<24 |
		uint32(sm4SBox[byte(a>>16)])<<16 |
		uint32(sm4SBox[byte(a>>8)])<<8 |
		uint32(sm4SBox[byte(a)])
}

func sm4L(b uint32) uint32 {
	return b ^ rotl32(b, 2) ^ rotl32(b, 10) ^ rotl32(b, 18) ^ rotl32(b, 24)
}

func sm4T(a uint32) uint32 { return sm4L(sm4Tau(a)) }

func sm4TPrime(a uint32) uint32 {
	b := sm4Tau(a)
	return b ^ rotl32(b, 13) ^ rotl32(b, 23)
}

func sm4F(x0, x1, x2, x3, rk uint32) uint32 {
	return x0 ^ sm4T(x1^x2^x3^rk)
}

// sm4PrepareKey implements the reference key/IV preparation rule: a 16-byte
// buffer is used as-is; any other length is SM3-hashed and the first 16
// *characters* of the uppercase hex digest are reinterpreted as 16 raw
// bytes (not hex-decoded). This is an idiosyncrasy of the reference
// implementation, preserved exactly for wire compatibility (see SPEC_FULL.md
// §4.5 and §9).
func sm4PrepareKey(input []byte) [16]byte {
	var out [16]byte
	if len(input) == 16 {
		copy(out[:], input)
		return out
	}
	ctx := NewSM3()
	ctx.Update(input)
	ctx.Finish()
	copy(out[:], ctx.HexDigest()[:16])
	return out
}

// SM4 holds the expanded round-key schedule and CBC chaining IV.
type SM4 struct {
	rk [32]uint32
	iv [16]byte
}

// NewSM4 prepares key and iv per sm4PrepareKey and derives the round-key
// schedule.
func NewSM4(key, iv []byte) *SM4 {
	keyBytes := sm4PrepareKey(key)
	ivBytes := sm4PrepareKey(iv)

	ctx := &SM4{}
	var mk [4]uint32
	for i := 0; i < 4; i++ {
		mk[i] = uint32(keyBytes[i*4])<<24 | uint32(keyBytes[i*4+1])<<16 |
			uint32(keyBytes[i*4+2])<<8 | uint32(keyBytes[i*4+3])
	}

	var k [36]uint32
	k[0] = mk[0] ^ sm4FK[0]
	k[1] = mk[1] ^ sm4FK[1]
	k[2] = mk[2] ^ sm4FK[2]
	k[3] = mk[3] ^ sm4FK[3]

	for i := 0; i < 32; i++ {
		input := k[i+1] ^ k[i+2] ^ k[i+3] ^ sm4CK[i]
		k[i+4] = k[i] ^ sm4TPrime(input)
		ctx.rk[i] = k[i+4]
	}

	ctx.iv = ivBytes
	return ctx
}

func beWords(block []byte) [4]uint32 {
	var x [4]uint32
	for i := 0; i < 4; i++ {
		x[i] = uint32(block[i*4])<<24 | uint32(block[i*4+1])<<16 |
			uint32(block[i*4+2])<<8 | uint32(block[i*4+3])
	}
	return x
}

func wordsToBE(x [4]uint32) [16]byte {
	var out [16]byte
	for i := 0; i < 4; i++ {
		out[i*4] = byte(x[i] >> 24)
		out[i*4+1] = byte(x[i] >> 16)
		out[i*4+2] = byte(x[i] >> 8)
		out[i*4+3] = byte(x[i])
	}
	return out
}

func (ctx *SM4) cbcEncryptBlock(block, iv []byte) [16]byte {
	bw := beWords(block)
	iw := beWords(iv)

	var xn [36]uint32
	for i := 0; i < 4; i++ {
		xn[i] = bw[i] ^ iw[i]
	}
	for i := 0; i < 32; i++ {
		xn[i+4] = sm4F(xn[i], xn[i+1], xn[i+2], xn[i+3], ctx.rk[i])
	}

	return wordsToBE([4]uint32{xn[35], xn[34], xn[33], xn[32]})
}

func (ctx *SM4) cbcDecryptBlock(block, iv []byte) [16]byte {
	x := beWords(block)

	var xn [36]uint32
	copy(xn[:4], x[:])
	for i := 0; i < 32; i++ {
		xn[i+4] = sm4F(xn[i], xn[i+1], xn[i+2], xn[i+3], ctx.rk[31-i])
	}

	xo := wordsToBE([4]uint32{xn[35], xn[34], xn[33], xn[32]})
	var out [16]byte
	for i := 0; i < 16; i++ {
		out[i] = xo[i] ^ iv[i]
	}
	return out
}

func pkcs7Pad(input []byte) []byte {
	padLen := 16 - (len(input) % 16)
	if padLen == 0 {
		padLen = 16
	}
	out := make([]byte, len(input)+padLen)
	copy(out, input)
	for i := len(input); i < len(out); i++ {
		out[i] = byte(padLen)
	}
	return out
}

func pkcs7Unpad(input []byte) ([]byte, error) {
	if len(input) == 0 {
		return nil, nil
	}
	padLen := int(input[len(input)-1])
	if padLen == 0 || padLen > 16 || padLen > len(input) {
		return nil, errors.New("sm: invalid pkcs7 padding")
	}
	for i := len(input) - padLen; i < len(input); i++ {
		if int(input[i]) != padLen {
			return nil, errors.New("sm: invalid pkcs7 padding")
		}
	}
	return input[:len(input)-padLen], nil
}

// EncryptCBC PKCS7-pads plaintext, encrypts it in CBC mode and returns
// lowercase hex ciphertext. Operates on the full buffer; there is no
// streaming variant (see SPEC_FULL.md §4.5).
func (ctx *SM4) EncryptCBC(plaintext []byte) string {
	padded := pkcs7Pad(plaintext)
	output := make([]byte, len(padded))
	curIV := ctx.iv

	for i := 0; i < len(padded); i += 16 {
		block := ctx.cbcEncryptBlock(padded[i:i+16], curIV[:])
		copy(output[i:i+16], block[:])
		curIV = block
	}
	return BytesToHex(output)
}

// DecryptCBC decodes lowercase hex ciphertext, decrypts it in CBC mode and
// removes PKCS7 padding.
func (ctx *SM4) DecryptCBC(ciphertextHex string) ([]byte, error) {
	input := HexToBytes(ciphertextHex)
	if len(input)%16 != 0 {
		return nil, errors.New("sm: ciphertext length not a multiple of the block size")
	}

	output := make([]byte, len(input))
	var curIV [16]byte
	copy(curIV[:], ctx.iv[:])

	for i := 0; i < len(input); i += 16 {
		block := ctx.cbcDecryptBlock(input[i:i+16], curIV[:])
		copy(output[i:i+16], block[:])
		copy(curIV[:], input[i:i+16])
	}

	return pkcs7Unpad(output)
}
